package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/storefront/pkg/service"
)

func (s *Server) listAddresses(c *gin.Context) {
	addresses, err := s.addresses.List(c.Request.Context(), principalFrom(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

func (s *Server) createAddress(c *gin.Context) {
	var req service.AddressInput
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	address, err := s.addresses.Create(c.Request.Context(), principalFrom(c), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, address)
}

func (s *Server) updateAddress(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateAddressInput
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	address, err := s.addresses.Update(c.Request.Context(), principalFrom(c), id, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

func (s *Server) deleteAddress(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.addresses.Delete(c.Request.Context(), principalFrom(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "address deleted successfully"})
}

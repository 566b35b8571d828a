package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/storefront/pkg/service"
)

func (s *Server) register(c *gin.Context) {
	var req service.Credentials
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	result, err := s.accounts.Register(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	result, err := s.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getProfile(c *gin.Context) {
	user, err := s.accounts.Profile(c.Request.Context(), principalFrom(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) updateProfile(c *gin.Context) {
	var req service.UpdateProfileInput
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	user, err := s.accounts.UpdateProfile(c.Request.Context(), principalFrom(c), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

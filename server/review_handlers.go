package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/storefront/pkg/service"
)

func (s *Server) listProductReviews(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := s.reviews.ListForProduct(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (s *Server) createReview(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ReviewInput
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	review, err := s.reviews.Create(c.Request.Context(), principalFrom(c), id, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (s *Server) updateReview(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ReviewInput
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	review, err := s.reviews.Update(c.Request.Context(), principalFrom(c), id, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (s *Server) deleteReview(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.reviews.Delete(c.Request.Context(), principalFrom(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

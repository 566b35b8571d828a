package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Server) listWishlist(c *gin.Context) {
	items, err := s.wishlist.List(c.Request.Context(), principalFrom(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) addToWishlist(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		s.badRequest(c, "invalid product id")
		return
	}

	item, err := s.wishlist.Add(c.Request.Context(), principalFrom(c), productID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) removeFromWishlist(c *gin.Context) {
	productID, ok := s.objectIDParam(c, "productId")
	if !ok {
		return
	}

	if err := s.wishlist.Remove(c.Request.Context(), principalFrom(c), productID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product removed from wishlist"})
}

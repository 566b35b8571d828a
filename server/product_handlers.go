package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/service"
)

func (s *Server) listProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

	query := models.ProductQuery{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
		SaleOnly: c.Query("sale") == "true",
		Page:     page,
		Limit:    limit,
	}

	result, err := s.products.List(c.Request.Context(), query)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	product, err := s.products.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) createProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	product, err := s.products.Create(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateProductInput
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	product, err := s.products.Update(c.Request.Context(), id, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.products.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product removed"})
}

func (s *Server) applySale(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		SalePercentage float64 `json:"sale_percentage"`
	}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	product, err := s.products.ApplySale(c.Request.Context(), id, req.SalePercentage)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) removeSale(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	product, err := s.products.RemoveSale(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) applyBulkSale(c *gin.Context) {
	var req struct {
		ProductIDs     []string `json:"product_ids"`
		SalePercentage float64  `json:"sale_percentage"`
	}
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			s.badRequest(c, "invalid product id: "+raw)
			return
		}
		ids = append(ids, id)
	}

	updated, err := s.products.BulkSale(c.Request.Context(), ids, req.SalePercentage)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "sale applied",
		"count":    len(updated),
		"products": updated,
	})
}

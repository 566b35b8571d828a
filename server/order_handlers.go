package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/storefront/pkg/service"
)

func (s *Server) createOrder(c *gin.Context) {
	var req service.CreateOrderInput
	if err := c.BindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	order, err := s.orders.Create(c.Request.Context(), principalFrom(c), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) listMyOrders(c *gin.Context) {
	orders, err := s.orders.ListMine(c.Request.Context(), principalFrom(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) listAllOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := s.orders.AdminList(c.Request.Context(), page, limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	order, err := s.orders.Get(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) cancelOrder(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	order, err := s.orders.Cancel(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BindJSON(&req); err != nil || req.Status == "" {
		s.badRequest(c, "status is required")
		return
	}

	order, err := s.orders.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) updatePaymentStatus(c *gin.Context) {
	id, ok := s.objectIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := c.BindJSON(&req); err != nil || req.PaymentStatus == "" {
		s.badRequest(c, "payment status is required")
		return
	}

	order, err := s.orders.SetPaymentStatus(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

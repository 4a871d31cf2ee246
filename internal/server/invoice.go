package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/smallbiznis/invoicely/internal/invoice/domain"
)

func (s *Server) ListInvoices(c *gin.Context) {
	var req invoicedomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if req.Status != nil {
		parsed, err := invoicedomain.ParseStatus(string(*req.Status))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		req.Status = &parsed
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":            resp.Invoices,
		"next_page_token": resp.NextPageToken,
		"has_more":        resp.HasMore,
	})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	inv, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": inv})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	inv, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoicedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	inv, err := s.invoiceSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) SetInvoiceStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	status, err := invoicedomain.ParseStatus(req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	inv, err := s.invoiceSvc.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) AddInvoiceItem(c *gin.Context) {
	inv, err := s.invoiceSvc.AddItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) RemoveInvoiceItem(c *gin.Context) {
	index, ok := itemIndex(c)
	if !ok {
		return
	}

	inv, err := s.invoiceSvc.RemoveItem(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) MoveInvoiceItem(c *gin.Context) {
	index, ok := itemIndex(c)
	if !ok {
		return
	}
	var req struct {
		To int `json:"to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	inv, err := s.invoiceSvc.MoveItem(c.Request.Context(), c.Param("id"), index, req.To)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) DuplicateInvoiceItem(c *gin.Context) {
	index, ok := itemIndex(c)
	if !ok {
		return
	}

	inv, err := s.invoiceSvc.DuplicateItem(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) UpdateInvoiceItem(c *gin.Context) {
	index, ok := itemIndex(c)
	if !ok {
		return
	}
	var req struct {
		Field string `json:"field"`
		Value any    `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	inv, err := s.invoiceSvc.UpdateItem(c.Request.Context(), c.Param("id"), index, req.Field, req.Value)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) UpdateInvoiceModifier(c *gin.Context) {
	var patch invoicedomain.ModifierPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	inv, err := s.invoiceSvc.UpdateModifier(c.Request.Context(), c.Param("id"), c.Param("kind"), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) RenderInvoice(c *gin.Context) {
	templateID := 0
	if raw := strings.TrimSpace(c.Query("template")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		templateID = parsed
	}

	html, err := s.invoiceSvc.Render(c.Request.Context(), c.Param("id"), templateID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func itemIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(strings.TrimSpace(c.Param("index")))
	if err != nil {
		AbortWithError(c, invoicedomain.ErrIndexOutOfRange)
		return 0, false
	}
	return index, true
}

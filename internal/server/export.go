package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/smallbiznis/invoicely/internal/invoice/domain"
)

func (s *Server) ExportInvoice(c *gin.Context) {
	result, err := s.invoiceSvc.ExportPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.obsMetrics.IncExport("error")
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.IncExport("success")
	writePDF(c, result)
}

// ExportPayload prints an invoice straight from the request body without
// touching storage. The payload is recomputed and validated exactly like a
// stored invoice.
func (s *Server) ExportPayload(c *gin.Context) {
	var inv invoicedomain.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.invoiceSvc.ExportPayload(c.Request.Context(), inv)
	if err != nil {
		s.obsMetrics.IncExport("error")
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.IncExport("success")
	writePDF(c, result)
}

func writePDF(c *gin.Context, result invoicedomain.ExportResult) {
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

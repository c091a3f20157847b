package server

import (
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	breakdowndomain "github.com/smallbiznis/storefront/internal/breakdown/domain"
	"github.com/smallbiznis/storefront/internal/breakdown/render"
	lineitemdomain "github.com/smallbiznis/storefront/internal/lineitem/domain"
	obscontext "github.com/smallbiznis/storefront/internal/observability/context"
	obstracing "github.com/smallbiznis/storefront/internal/observability/tracing"
	"github.com/smallbiznis/storefront/internal/transaction"
)

const headerReceiptID = "X-Receipt-Id"

type breakdownResponse struct {
	ReceiptID string                    `json:"receipt_id"`
	Data      breakdowndomain.Breakdown `json:"data"`
}

func (s *Server) BuildBreakdown(c *gin.Context) {
	receiptID, out, ok := s.buildBreakdown(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, breakdownResponse{ReceiptID: receiptID, Data: out})
}

func (s *Server) RenderBreakdownHTML(c *gin.Context) {
	receiptID, out, ok := s.buildBreakdown(c)
	if !ok {
		return
	}

	html, err := s.renderer.RenderHTML(out, s.receiptView(c, receiptID))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordReceiptRendered(c.Request.Context(), "html")

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) RenderBreakdownPDF(c *gin.Context) {
	receiptID, out, ok := s.buildBreakdown(c)
	if !ok {
		return
	}

	reader, err := s.pdfRenderer.RenderPDF(c.Request.Context(), out, s.receiptView(c, receiptID))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordReceiptRendered(c.Request.Context(), "pdf")

	c.Header("Content-Disposition", `inline; filename="receipt-`+receiptID+`.pdf"`)
	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, nil)
}

func (s *Server) ListLineItemCodes(c *gin.Context) {
	set := make(map[string]struct{}, len(lineitemdomain.KnownCodes))
	for code := range lineitemdomain.KnownCodes {
		set[string(code)] = struct{}{}
	}
	if s.marketplace != nil {
		for _, code := range s.marketplace.Get().KnownCodes {
			set[code] = struct{}{}
		}
	}
	codes := make([]string, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	c.JSON(http.StatusOK, gin.H{"data": codes})
}

// buildBreakdown decodes the snapshot body and builds the receipt for the
// role in the query string. On failure the error is already recorded on c.
func (s *Server) buildBreakdown(c *gin.Context) (string, breakdowndomain.Breakdown, bool) {
	role := strings.TrimSpace(c.Query("role"))
	if role == "" {
		AbortWithError(c, newValidationError("role", "required", "role is required"))
		return "", breakdowndomain.Breakdown{}, false
	}
	c.Set(obstracing.RoleKey, role)

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxSnapshotBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			AbortWithError(c, ErrTooLarge)
			return "", breakdowndomain.Breakdown{}, false
		}
		AbortWithError(c, invalidRequestError())
		return "", breakdowndomain.Breakdown{}, false
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		AbortWithError(c, newValidationError("body", "required", "transaction snapshot is required"))
		return "", breakdowndomain.Breakdown{}, false
	}

	tx, err := transaction.Decode(body)
	if err != nil {
		AbortWithError(c, err)
		return "", breakdowndomain.Breakdown{}, false
	}

	receiptID := s.genID.Generate().String()
	ctx := obscontext.WithReceiptID(c.Request.Context(), receiptID)
	c.Request = c.Request.WithContext(ctx)
	c.Header(headerReceiptID, receiptID)

	out, err := s.breakdownSvc.Build(ctx, breakdowndomain.BuildRequest{
		Transaction:     tx,
		Role:            role,
		MarketplaceName: c.Query("marketplace_name"),
		Currency:        c.Query("currency"),
		Locale:          c.Query("locale"),
	})
	if err != nil {
		AbortWithError(c, err)
		return "", breakdowndomain.Breakdown{}, false
	}
	return receiptID, out, true
}

func (s *Server) receiptView(c *gin.Context, receiptID string) render.View {
	view := render.View{
		Title:     c.DefaultQuery("title", "Receipt"),
		ReceiptID: receiptID,
		IssuedAt:  render.IssuedAt(time.Now()),
		Locale:    c.Query("locale"),
	}
	view.MarketplaceName = c.Query("marketplace_name")
	if view.MarketplaceName == "" && s.marketplace != nil {
		view.MarketplaceName = s.marketplace.Get().Name
	}
	if view.Locale == "" && s.marketplace != nil {
		view.Locale = s.marketplace.Get().Locale
	}
	return view
}

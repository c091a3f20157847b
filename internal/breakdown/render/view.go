package render

import (
	"context"
	"io"
	"strings"
	"time"

	breakdowndomain "github.com/smallbiznis/storefront/internal/breakdown/domain"
)

// View carries the receipt chrome around the breakdown rows.
type View struct {
	Title           string
	MarketplaceName string
	ReceiptID       string
	IssuedAt        string
	Locale          string
	PrimaryColor    string
}

type Renderer interface {
	RenderHTML(b breakdowndomain.Breakdown, view View) (string, error)
}

type PDFRenderer interface {
	RenderPDF(ctx context.Context, b breakdowndomain.Breakdown, view View) (io.Reader, error)
}

// IssuedAt formats t for the receipt header.
func IssuedAt(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006 15:04 MST")
}

func (v View) normalized() View {
	v.Title = strings.TrimSpace(v.Title)
	if v.Title == "" {
		v.Title = "Receipt"
	}
	v.MarketplaceName = strings.TrimSpace(v.MarketplaceName)
	if v.MarketplaceName == "" {
		v.MarketplaceName = "Marketplace"
	}
	v.Locale = strings.TrimSpace(v.Locale)
	if v.Locale == "" {
		v.Locale = "en"
	}
	v.PrimaryColor = sanitizeColor(v.PrimaryColor)
	return v
}

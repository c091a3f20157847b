package render

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	breakdowndomain "github.com/smallbiznis/storefront/internal/breakdown/domain"
)

type MarotoRenderer struct{}

func NewPDFRenderer() PDFRenderer {
	return &MarotoRenderer{}
}

func (r *MarotoRenderer) RenderPDF(ctx context.Context, b breakdowndomain.Breakdown, view View) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	view = view.normalized()

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(8, view.MarketplaceName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		col.New(4).Add(
			text.New(view.Title, props.Text{Align: align.Right, Style: fontstyle.Bold}),
			text.New(receiptMeta(view), props.Text{Top: 5, Size: 8, Align: align.Right}),
		),
	)

	for _, row := range b.Rows {
		switch row.Kind {
		case breakdowndomain.RowBookingPeriod:
			if row.Period == nil {
				continue
			}
			m.AddRow(14,
				col.New(6).Add(
					text.New(row.Period.StartLabel, props.Text{Size: 8, Style: fontstyle.Bold}),
					text.New(row.Period.Start, props.Text{Top: 4, Size: 10}),
				),
				col.New(6).Add(
					text.New(row.Period.EndLabel, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
					text.New(row.Period.End, props.Text{Top: 4, Size: 10, Align: align.Right}),
				),
			)
		case breakdowndomain.RowUnknownItems:
			m.AddRow(8, text.NewCol(12, row.Label, props.Text{Size: 9, Style: fontstyle.Bold}))
			for _, child := range row.Items {
				m.AddRow(8,
					col.New(1),
					text.NewCol(7, child.Label, props.Text{Size: 9}),
					text.NewCol(4, child.FormattedValue, props.Text{Size: 9, Align: align.Right}),
				)
			}
		case breakdowndomain.RowTotal:
			m.AddRow(12,
				text.NewCol(8, row.Label, props.Text{Size: 11, Style: fontstyle.Bold, Top: 3}),
				text.NewCol(4, row.FormattedValue, props.Text{Size: 11, Style: fontstyle.Bold, Top: 3, Align: align.Right}),
			)
		default:
			m.AddRow(8,
				text.NewCol(8, row.Label, props.Text{Size: 9}),
				text.NewCol(4, row.FormattedValue, props.Text{Size: 9, Align: align.Right}),
			)
		}
	}

	if b.CommissionNote {
		m.AddRow(16, text.NewCol(12, b.NoteText, props.Text{Size: 8, Top: 6}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func receiptMeta(view View) string {
	switch {
	case view.ReceiptID != "" && view.IssuedAt != "":
		return "#" + view.ReceiptID + " · " + view.IssuedAt
	case view.ReceiptID != "":
		return "#" + view.ReceiptID
	default:
		return view.IssuedAt
	}
}

// Package services holds background work and document rendering that sits
// behind the HTTP controllers.
package services

import (
	"fmt"
	"strings"

	"freelanceflow-backend/models"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfColorPrimary = &props.Color{Red: 30, Green: 64, Blue: 120}
	pdfColorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
	pdfColorWarn    = &props.Color{Red: 200, Green: 60, Blue: 60}
)

// GenerateInvoicePDF renders an invoice as an A4 PDF and returns its bytes.
// Draft invoices carry a visible DRAFT marker.
func GenerateInvoicePDF(invoice models.Invoice, user models.User, client models.Client) ([]byte, error) {
	businessName := user.BusinessName
	if businessName == "" {
		businessName = user.Name
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+invoice.InvoiceNumber, true).
		WithAuthor(businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(invoiceHeaderRow(invoice, businessName))
	m.AddRows(line.NewRow(1, props.Line{Color: pdfColorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(user, client))
	m.AddRows(line.NewRow(1, props.Line{Color: pdfColorPrimary, Thickness: 0.3}))

	m.AddRows(itemHeaderRow())
	for _, r := range itemRows(invoice.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: pdfColorPrimary, Thickness: 0.3}))
	m.AddRows(invoiceTotalRow(invoice))

	if notes := strings.TrimSpace(invoice.Notes); notes != "" {
		m.AddRows(notesRows(notes)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// invoiceHeaderRow: business name on the left, invoice number and dates on
// the right. Drafts get a red marker under the number.
func invoiceHeaderRow(invoice models.Invoice, businessName string) core.Row {
	right := []core.Component{
		text.New("INVOICE", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right,
			Color: pdfColorPrimary, Top: 1,
		}),
		text.New(invoice.InvoiceNumber, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
		}),
		text.New("Issued: "+invoice.IssueDate.Format("Jan 2, 2006"), props.Text{
			Size: 8, Align: align.Right, Top: 13, Color: pdfColorGray,
		}),
		text.New("Due: "+invoice.DueDate.Format("Jan 2, 2006"), props.Text{
			Size: 8, Align: align.Right, Top: 18, Color: pdfColorGray,
		}),
	}
	if invoice.Status == models.InvoiceStatusDraft {
		right = append(right, text.New("DRAFT", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Top: 23, Color: pdfColorWarn,
		}))
	}

	return row.New(30).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: pdfColorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(right...),
	)
}

// billToRow: sender contact on the left, client block on the right.
func billToRow(user models.User, client models.Client) core.Row {
	return row.New(22).Add(
		col.New(6).Add(
			text.New("FROM", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: pdfColorPrimary, Top: 1,
			}),
			text.New(user.Name, props.Text{Size: 9, Top: 6}),
			text.New(nonEmpty(user.BusinessAddress, ""), props.Text{Size: 8, Top: 11, Color: pdfColorGray}),
			text.New(user.Email, props.Text{Size: 8, Top: 16, Color: pdfColorGray}),
		),
		col.New(6).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: pdfColorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(nonEmpty(client.Address, ""), props.Text{Size: 8, Top: 12, Color: pdfColorGray}),
			text.New(nonEmpty(client.Email, ""), props.Text{Size: 8, Top: 17, Color: pdfColorGray}),
		),
	)
}

func itemHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: pdfColorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 6, align.Left),
		h("Qty", 2, align.Right),
		h("Rate", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

func itemRows(items []models.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, item := range items {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				item.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%.2f", item.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%.2f", item.Rate),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%.2f", item.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func invoiceTotalRow(invoice models.Invoice) core.Row {
	return row.New(12).Add(
		col.New(8),
		col.New(2).Add(
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: pdfColorPrimary, Top: 2, Right: 2,
			}),
		),
		col.New(2).Add(
			text.New(fmt.Sprintf("%.2f", invoice.Amount), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: pdfColorPrimary, Top: 2, Right: 1,
			}),
		),
	)
}

func notesRows(notes string) []core.Row {
	rows := []core.Row{
		row.New(4),
		row.New(6).Add(col.New(12).Add(
			text.New("NOTES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: pdfColorPrimary, Top: 1,
			}),
		)),
	}
	for _, paragraph := range strings.Split(notes, "\n") {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(paragraph, props.Text{Size: 8, Color: pdfColorGray, Top: 1}),
		)))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// Package pdf renders the customer-facing estimate document with Maroto v2.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Company name          │  ESTIMATE + date            │
//	│  ───────────────────────────────────────────────────────── │
//	│  PREPARED FOR: customer + job site address                  │
//	│  ───────────────────────────────────────────────────────── │
//	│  LABOR table: Qty | Description | Rate | Amount             │
//	│  MATERIALS table: Qty | Item | Unit cost | Amount           │
//	│  ───────────────────────────────────────────────────────── │
//	│  TOTALS: Labor / Materials / TOTAL                          │
//	│  NOTES                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appestimate "github.com/brushly/brushly-api/internal/application/estimate"
	"github.com/brushly/brushly-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 64, Blue: 175}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var usd = message.NewPrinter(language.AmericanEnglish)

// money formats a decimal as a grouped USD amount ("$1,234.50").
func money(d decimal.Decimal) string {
	f, _ := d.Float64()
	return usd.Sprintf("$%.2f", f)
}

var _ appestimate.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implements estimate.PDFGenerator using Maroto v2.
type MarotoPDFGenerator struct{}

func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateEstimatePDF renders the estimate and returns its bytes.
func (g *MarotoPDFGenerator) GenerateEstimatePDF(
	_ context.Context,
	est *entity.Estimate,
	company *entity.Company,
	customer *entity.Customer,
	job *entity.Job,
	items []*entity.EstimateLineItem,
	materials []*entity.EstimateMaterial,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estimate", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(est, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(preparedForRow(customer, job))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(items) > 0 {
		m.AddRows(sectionRow("LABOR"))
		m.AddRows(laborHeaderRow())
		for _, it := range items {
			m.AddRows(laborRow(it))
		}
	}
	if len(materials) > 0 {
		m.AddRows(sectionRow("MATERIALS"))
		m.AddRows(materialsHeaderRow())
		for _, mat := range materials {
			m.AddRows(materialRow(mat))
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(est))

	if est.Notes != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(notesRows(est.Notes)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: company name (left), ESTIMATE + date (right).
func headerRow(est *entity.Estimate, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("ESTIMATE", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Date: "+est.CreatedAt.Format("01/02/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// preparedForRow: customer (when the job has one) and the job site address.
func preparedForRow(customer *entity.Customer, job *entity.Job) core.Row {
	name := "—"
	contact := ""
	if customer != nil {
		name = customer.Name
		contact = fmt.Sprintf("Email: %s   |   Phone: %s",
			nonEmpty(customer.Email, "—"), nonEmpty(customer.Phone, "—"))
	}
	site := fmt.Sprintf("%s, %s, %s %s", job.Street, job.City, job.State, job.Zip)
	return row.New(16).Add(
		col.New(12).Add(
			text.New("PREPARED FOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(nonEmpty(contact, job.Title), props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New("Job site: "+site, props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func laborHeaderRow() core.Row {
	return tableHeader("Qty", "Description", "Rate", "Amount")
}

func materialsHeaderRow() core.Row {
	return tableHeader("Qty", "Item", "Unit cost", "Amount")
}

func tableHeader(qty, desc, unit, amount string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(6).Add(
		h(qty, 1, align.Center),
		h(desc, 6, align.Left),
		h(unit, 2, align.Right),
		h(amount, 3, align.Right),
	)
}

func laborRow(it *entity.EstimateLineItem) core.Row {
	return tableRow(it.Quantity, it.Description, it.UnitPrice, it.Amount)
}

func materialRow(mat *entity.EstimateMaterial) core.Row {
	return tableRow(mat.Quantity, mat.Name, mat.UnitCost, mat.Amount)
}

func tableRow(qty decimal.Decimal, desc string, unit, amount decimal.Decimal) core.Row {
	return row.New(6).Add(
		col.New(1).Add(text.New(qty.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(desc, props.Text{Size: 8, Align: align.Left, Top: 1})),
		col.New(2).Add(text.New(money(unit), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(money(amount), props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

// totalsRow: labor / materials / total block, right aligned.
func totalsRow(est *entity.Estimate) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(22).Add(
		col.New(4),
		col.New(4).Add(
			label("Labor:"),
			label("Materials:"),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2,
			}),
		),
		col.New(4).Add(
			value(money(est.LaborTotal)),
			value(money(est.MaterialsTotal)),
			text.New(money(est.GrandTotal()), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1,
			}),
		),
	)
}

func notesRows(notes string) []core.Row {
	return []core.Row{
		row.New(5).Add(col.New(12).Add(
			text.New("NOTES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New(notes, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

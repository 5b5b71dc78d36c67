// Package receipt renders order receipts as PDF documents.
package receipt

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type Renderer interface {
	Render(ctx context.Context, data Data) (io.Reader, error)
}

// Data is the printable view of an order. Amounts are preformatted.
type Data struct {
	StoreName    string
	OrderID      string
	ExternalID   string
	SaleDate     string
	Status       string
	CustomerName string

	Lines []Line

	Subtotal string
	Discount string
	Total    string
}

type Line struct {
	Description string
	Qty         int64
	UnitPrice   string
	Amount      string
}

type pdfRenderer struct {
	storeName string
}

func New(storeName string) Renderer {
	return &pdfRenderer{storeName: storeName}
}

func (r *pdfRenderer) Render(ctx context.Context, data Data) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if data.StoreName == "" {
		data.StoreName = r.storeName
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(8, "Recibo", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, data.StoreName, props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	m.AddRow(25,
		col.New(6).Add(
			text.New("Pedido: "+data.ExternalID, props.Text{Top: 0}),
			text.New("Data da venda: "+data.SaleDate, props.Text{Top: 5}),
			text.New("Status: "+data.Status, props.Text{Top: 10}),
		),
		col.New(6).Add(
			text.New("Cliente", props.Text{Style: fontstyle.Bold, Align: align.Right}),
			text.New(customerOrDefault(data.CustomerName), props.Text{Top: 5, Align: align.Right}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Produto", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qtd", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Preço", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range data.Lines {
		m.AddRow(8,
			text.NewCol(6, line.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", line.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, data.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Desconto", props.Text{Size: 9}),
		text.NewCol(2, data.Discount, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, data.Total, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func customerOrDefault(name string) string {
	if name == "" {
		return "Consumidor não identificado"
	}
	return name
}

// Package pdf implementa la generación de la etiqueta imprimible de un
// artículo (100x60 mm): nombre, referencias y código de barras Code-128 de
// la referencia escaneable, listo para la pistola lectora.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stock-atelier/internal/domain/entity"
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// LabelGenerator genera etiquetas de artículo en PDF usando Maroto v2.
type LabelGenerator struct{}

// NewLabelGenerator construye el generador.
func NewLabelGenerator() *LabelGenerator {
	return &LabelGenerator{}
}

// GenerateArticleLabel genera la etiqueta y devuelve sus bytes.
// El código de barras usa la referencia interfas si existe; si no, la del
// proveedor (mismo orden de prioridad que la búsqueda del escáner).
func (g *LabelGenerator) GenerateArticleLabel(article *entity.Article) ([]byte, error) {
	barcodeRef := article.InterfasRef
	if barcodeRef == "" {
		barcodeRef = article.SupplierRef
	}
	if barcodeRef == "" {
		return nil, fmt.Errorf("pdf: el artículo %s no tiene referencia para etiquetar", article.ID)
	}

	cfg := config.NewBuilder().
		WithDimensions(100, 60).
		WithLeftMargin(6).WithRightMargin(6).
		WithTopMargin(5).WithBottomMargin(5).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(10).Add(
		col.New(12).Add(
			text.New(article.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 1,
			}),
		),
	))

	subtitle := article.Supplier
	if article.Unit != "" {
		subtitle += " · " + article.Unit
	}
	m.AddRows(row.New(6).Add(
		col.New(12).Add(
			text.New(subtitle, props.Text{Size: 8, Align: align.Center, Color: colorGray}),
		),
	))

	// Code-128: acepta referencias alfanuméricas de longitud libre.
	m.AddRows(row.New(22).Add(
		col.New(12).Add(
			code.NewBar(barcodeRef, props.Barcode{
				Percent: 90,
				Center:  true,
			}),
		),
	))

	m.AddRows(row.New(6).Add(
		col.New(12).Add(
			text.New(barcodeRef, props.Text{
				Size: 9, Align: align.Center, Style: fontstyle.Bold, Top: 1,
			}),
		),
	))

	if article.SupplierRef != "" && article.SupplierRef != barcodeRef {
		m.AddRows(row.New(5).Add(
			col.New(12).Add(
				text.New("Réf. fournisseur: "+article.SupplierRef, props.Text{
					Size: 7, Align: align.Center, Color: colorGray,
				}),
			),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// Package stock contiene los servicios de dominio puros del agregador de
// stock: totales por artículo y bandera de stock bajo. Sin I/O; las lecturas
// se recalculan en cada consulta, así que siempre son consistentes con lo que
// escribió el libro de movimientos.
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-atelier/internal/domain/entity"
)

// TotalStock suma las cantidades de todos los lotes de un artículo.
func TotalStock(lots []*entity.Lot) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lots {
		total = total.Add(l.Quantity)
	}
	return total
}

// IsLowStock indica si el total está en o por debajo del umbral de seguridad.
func IsLowStock(total, safetyStock decimal.Decimal) bool {
	return total.LessThanOrEqual(safetyStock)
}

// SumSignedDeltas suma el efecto con signo de una lista de movimientos
// (+cantidad ENTREE, -cantidad SORTIE). Para cada lote debe cumplirse
// lot.Quantity == SumSignedDeltas(sus movimientos).
func SumSignedDeltas(movements []*entity.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.SignedDelta())
	}
	return total
}

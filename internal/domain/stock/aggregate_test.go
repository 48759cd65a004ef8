package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-atelier/internal/domain/entity"
	"github.com/jhoicas/stock-atelier/internal/domain/stock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotalStock_SumaLotes(t *testing.T) {
	lots := []*entity.Lot{
		{ID: "l1", Quantity: dec("10.5")},
		{ID: "l2", Quantity: dec("4.25")},
		{ID: "l3", Quantity: dec("0")},
	}
	assert.True(t, stock.TotalStock(lots).Equal(dec("14.75")))
}

func TestTotalStock_SinLotes(t *testing.T) {
	assert.True(t, stock.TotalStock(nil).IsZero())
}

// Escenario de referencia: umbral 10, ENTREE de 15 → stock ok;
// SORTIE de 10 → quedan 5, stock bajo.
func TestIsLowStock_Escenario(t *testing.T) {
	safety := dec("10")

	lots := []*entity.Lot{{ID: "l1", Quantity: dec("15")}}
	total := stock.TotalStock(lots)
	assert.True(t, total.Equal(dec("15")))
	assert.False(t, stock.IsLowStock(total, safety))

	lots[0].Quantity = lots[0].Quantity.Sub(dec("10"))
	total = stock.TotalStock(lots)
	assert.True(t, total.Equal(dec("5")))
	assert.True(t, stock.IsLowStock(total, safety))
}

// El umbral es inclusivo: total == umbral ya es stock bajo.
func TestIsLowStock_UmbralInclusivo(t *testing.T) {
	assert.True(t, stock.IsLowStock(dec("10"), dec("10")))
	assert.False(t, stock.IsLowStock(dec("10.001"), dec("10")))
}

// La suma con signo es exacta con decimales (sin error binario de flotantes).
func TestSumSignedDeltas_ExactitudDecimal(t *testing.T) {
	movs := []*entity.Movement{
		{Type: entity.MovementTypeEntree, Quantity: dec("0.1")},
		{Type: entity.MovementTypeEntree, Quantity: dec("0.2")},
		{Type: entity.MovementTypeSortie, Quantity: dec("0.3")},
	}
	// Con float64 esto daría 5.55e-17; con decimal es exactamente cero.
	assert.True(t, stock.SumSignedDeltas(movs).IsZero())
}

func TestSignedDelta_DireccionPorTipo(t *testing.T) {
	in := &entity.Movement{Type: entity.MovementTypeEntree, Quantity: dec("3")}
	out := &entity.Movement{Type: entity.MovementTypeSortie, Quantity: dec("3")}
	assert.True(t, in.SignedDelta().Equal(dec("3")))
	assert.True(t, out.SignedDelta().Equal(dec("-3")))
}

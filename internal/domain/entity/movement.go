package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento. El cliente usa los términos franceses originales.
const (
	MovementTypeEntree = "ENTREE" // entrada de stock
	MovementTypeSortie = "SORTIE" // salida de stock
)

// Movement es un registro inmutable y append-only del libro de movimientos.
// Quantity siempre se guarda positiva; la dirección la da el tipo. El efecto
// sobre el lote es +Quantity para ENTREE y -Quantity para SORTIE.
type Movement struct {
	ID        string
	LotID     string
	Type      string // ENTREE | SORTIE
	Quantity  decimal.Decimal
	Date      time.Time
	CreatedBy string // UserID; vacío solo en datos legacy sin autenticar
}

// SignedDelta devuelve el efecto del movimiento sobre la cantidad del lote.
func (m *Movement) SignedDelta() decimal.Decimal {
	if m.Type == MovementTypeSortie {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot representa un lote físico de stock de un artículo.
// Quantity es una caché materializada de la suma de sus movimientos; solo se
// muta dentro de la transacción del libro de movimientos, nunca directamente.
// Los lotes se crean únicamente como efecto de una ENTREE "nuevo lote" y no
// se borran jamás.
type Lot struct {
	ID         string
	ArticleID  string
	Quantity   decimal.Decimal
	ReceivedAt time.Time // fecha de reaprovisionamiento, ordena la vista FIFO
}

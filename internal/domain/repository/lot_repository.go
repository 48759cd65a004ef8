package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-atelier/internal/domain/entity"
)

// LotRepository puerto de persistencia para lotes.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	// GetForUpdate obtiene el lote bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Lot, error)
	// AddQuantity aplica el delta como incremento atómico en BD
	// (UPDATE ... SET quantity = quantity + $delta) y devuelve la cantidad
	// resultante. Evita lost updates entre movimientos concurrentes.
	AddQuantity(id string, delta decimal.Decimal) (decimal.Decimal, error)
	// ListByArticle lista los lotes del artículo por fecha de recepción
	// descendente. onlyWithStock true filtra los lotes ya vacíos.
	ListByArticle(articleID string, onlyWithStock bool) ([]*entity.Lot, error)
	// SumByArticle devuelve el stock total del artículo (SUM sobre lotes).
	SumByArticle(articleID string) (decimal.Decimal, error)
}

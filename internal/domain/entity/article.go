package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article representa una referencia del catálogo (unidad de gestión de stock).
// InterfasRef y SupplierRef son claves alternas de identificación: el escáner
// busca por cualquiera de las dos, así que ambas llevan índice único en BD.
type Article struct {
	ID          string
	Name        string
	Supplier    string
	InterfasRef string          // referencia interna "interfas" (puede estar vacía)
	SupplierRef string          // referencia del proveedor
	Category    string
	Color       string
	Description string
	SafetyStock decimal.Decimal // umbral de stock de seguridad (>= 0)
	Unit        string          // unidad de gestión: "kg", "L", "unité"...
	Active      bool            // false = archivado; solo permitido con stock total 0
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticleRequest body para POST /api/articles.
// InterfasRef puede llegar pre-rellenada desde el flujo de escaneo.
type CreateArticleRequest struct {
	Name        string          `json:"name"`
	Supplier    string          `json:"supplier"`
	InterfasRef string          `json:"interfas_ref,omitempty"`
	SupplierRef string          `json:"supplier_ref"`
	Category    string          `json:"category,omitempty"`
	Color       string          `json:"color,omitempty"`
	Description string          `json:"description,omitempty"`
	SafetyStock decimal.Decimal `json:"safety_stock"`
	Unit        string          `json:"unit,omitempty"`
}

// UpdateArticleRequest body para PUT /api/articles/:id.
type UpdateArticleRequest struct {
	Name        string          `json:"name"`
	Supplier    string          `json:"supplier"`
	InterfasRef string          `json:"interfas_ref,omitempty"`
	SupplierRef string          `json:"supplier_ref"`
	Category    string          `json:"category,omitempty"`
	Color       string          `json:"color,omitempty"`
	Description string          `json:"description,omitempty"`
	SafetyStock decimal.Decimal `json:"safety_stock"`
	Unit        string          `json:"unit,omitempty"`
}

// SetActiveRequest body para PATCH /api/articles/:id/active.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// ArticleResponse representación HTTP de un artículo.
type ArticleResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Supplier    string          `json:"supplier"`
	InterfasRef string          `json:"interfas_ref,omitempty"`
	SupplierRef string          `json:"supplier_ref"`
	Category    string          `json:"category,omitempty"`
	Color       string          `json:"color,omitempty"`
	Description string          `json:"description,omitempty"`
	SafetyStock decimal.Decimal `json:"safety_stock"`
	Unit        string          `json:"unit,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LotResponse lote con su cantidad actual.
type LotResponse struct {
	ID         string          `json:"id"`
	Quantity   decimal.Decimal `json:"quantity"`
	ReceivedAt time.Time       `json:"received_at"`
}

// ArticleDetailResponse artículo + lotes + agregados de stock.
type ArticleDetailResponse struct {
	Article    ArticleResponse `json:"article"`
	Lots       []LotResponse   `json:"lots"`
	TotalStock decimal.Decimal `json:"total_stock"`
	LowStock   bool            `json:"low_stock"`
}

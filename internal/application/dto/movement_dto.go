package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyMovementRequest body para POST /api/articles/:id/movements.
// LotID vacío = centinela "nuevo lote" (solo válido para ENTREE).
type ApplyMovementRequest struct {
	LotID    string          `json:"lot_id,omitempty"`
	Type     string          `json:"type"` // ENTREE | SORTIE
	Quantity decimal.Decimal `json:"quantity"`
}

// MovementResponse entrada del historial de movimientos.
type MovementResponse struct {
	ID          string          `json:"id"`
	LotID       string          `json:"lot_id"`
	ArticleID   string          `json:"article_id,omitempty"`
	ArticleName string          `json:"article_name,omitempty"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Date        time.Time       `json:"date"`
	UserName    string          `json:"user_name,omitempty"`
}

// ScanRequest body para POST /api/scan.
type ScanRequest struct {
	Code string `json:"code"`
}

// ScanResponse resultado del escaneo: el artículo identificado.
type ScanResponse struct {
	Article    ArticleResponse `json:"article"`
	TotalStock decimal.Decimal `json:"total_stock"`
	LowStock   bool            `json:"low_stock"`
}

// ScanNotFoundResponse se devuelve con 404: el código limpio para
// pre-rellenar el formulario de creación de artículo.
type ScanNotFoundResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

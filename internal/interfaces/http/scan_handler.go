package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-atelier/internal/application/catalogue"
	"github.com/jhoicas/stock-atelier/internal/application/dto"
	"github.com/jhoicas/stock-atelier/internal/domain"
)

// ScanHandler resuelve códigos escaneados a artículos (protegido).
type ScanHandler struct {
	uc *catalogue.CatalogueUseCase
}

// NewScanHandler construye el handler.
func NewScanHandler(uc *catalogue.CatalogueUseCase) *ScanHandler {
	return &ScanHandler{uc: uc}
}

// Scan godoc
// @Summary      Identificar artículo por código escaneado
// @Description  Recorta espacios y busca coincidencia exacta en las dos referencias.
//
//	El 404 devuelve el código limpio para pre-rellenar el alta del artículo.
//
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "code"
// @Success      200   {object}  dto.ScanResponse
// @Failure      404   {object}  dto.ScanNotFoundResponse
// @Router       /api/scan [post]
func (h *ScanHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, code, err := h.uc.ResolveByCode(c.Context(), in.Code)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code es requerido"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ScanNotFoundResponse{
				Code:    code,
				Message: "el código no corresponde a ningún artículo",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-atelier/internal/application/dto"
	"github.com/jhoicas/stock-atelier/internal/application/stock"
	"github.com/jhoicas/stock-atelier/internal/domain"
)

// MovementHandler maneja el libro de movimientos por HTTP (protegido).
type MovementHandler struct {
	apply   *stock.ApplyMovementUseCase
	journal *stock.JournalUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(apply *stock.ApplyMovementUseCase, journal *stock.JournalUseCase) *MovementHandler {
	return &MovementHandler{apply: apply, journal: journal}
}

// Apply godoc
// @Summary      Registrar movimiento de stock (ENTREE/SORTIE)
// @Description  lot_id vacío crea un lote nuevo (solo ENTREE). Transaccional: o se aplica todo o nada.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.ApplyMovementRequest  true  "lot_id, type, quantity"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/movements [post]
func (h *MovementHandler) Apply(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.apply.ApplyMovement(c.Context(), stock.ApplyMovementInput{
		ArticleID: c.Params("id"),
		LotID:     in.LotID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UserID:    userID,
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser estrictamente positiva"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos (type ENTREE|SORTIE; lote nuevo solo con ENTREE)"})
		case domain.ErrUnauthorized:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "se requiere usuario autenticado"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo o lote no encontrado"})
		case domain.ErrArticleArchived:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ARTICLE_ARCHIVED", Message: "el artículo está archivado"})
		case domain.ErrLotMismatch:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOT_MISMATCH", Message: "el lote no pertenece al artículo"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en el lote"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"movement_id":  result.MovementID,
		"lot_id":       result.LotID,
		"lot_quantity": result.LotQuantity,
	})
}

// ListByArticle godoc
// @Summary      Historial de movimientos de un artículo
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/articles/{id}/movements [get]
func (h *MovementHandler) ListByArticle(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.journal.ListByArticle(c.Context(), c.Params("id"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// ListRecent godoc
// @Summary      Historial global de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *MovementHandler) ListRecent(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.journal.ListRecent(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

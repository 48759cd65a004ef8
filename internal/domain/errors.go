package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida: debe ser positiva y finita")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrLotMismatch        = errors.New("el lote no pertenece al artículo indicado")
	ErrArticleArchived    = errors.New("el artículo está archivado")
	ErrArticleHasStock    = errors.New("no se puede archivar un artículo con stock")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

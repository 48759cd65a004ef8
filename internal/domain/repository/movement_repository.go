package repository

import "github.com/jhoicas/stock-atelier/internal/domain/entity"

// MovementJournalEntry es un movimiento enriquecido para el historial
// (incluye a qué artículo pertenece el lote y quién lo registró).
type MovementJournalEntry struct {
	Movement    entity.Movement
	ArticleID   string
	ArticleName string
	UserName    string
}

// MovementRepository puerto de persistencia del libro de movimientos.
// Solo inserta y lee: los movimientos nunca se editan ni se borran.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListByLot(lotID string) ([]*entity.Movement, error)
	// ListByArticle lista los movimientos de todos los lotes del artículo,
	// del más reciente al más antiguo.
	ListByArticle(articleID string, limit, offset int) ([]*MovementJournalEntry, error)
	// ListRecent lista el historial global paginado.
	ListRecent(limit, offset int) ([]*MovementJournalEntry, error)
}

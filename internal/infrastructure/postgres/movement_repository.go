package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-atelier/internal/domain/entity"
	"github.com/jhoicas/stock-atelier/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo INSERT y SELECT: sin UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. created_by queda NULL si no hay usuario
// (solo rutas legacy; el caso de uso lo exige siempre).
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, lot_id, type, quantity, date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.LotID, movement.Type, movement.Quantity, movement.Date, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByLot movimientos de un lote, del más reciente al más antiguo.
func (r *MovementRepo) ListByLot(lotID string) ([]*entity.Movement, error) {
	query := `
		SELECT id, lot_id, type, quantity, date, created_by
		FROM movements WHERE lot_id = $1
		ORDER BY date DESC`
	rows, err := r.q.Query(context.Background(), query, lotID)
	if err != nil {
		return nil, fmt.Errorf("list movements by lot: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.LotID, &m.Type, &m.Quantity, &m.Date, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

const journalQuery = `
	SELECT m.id, m.lot_id, m.type, m.quantity, m.date, m.created_by,
	       a.id, a.name, COALESCE(u.name, '')
	FROM movements m
	JOIN lots l ON l.id = m.lot_id
	JOIN articles a ON a.id = l.article_id
	LEFT JOIN users u ON u.id = m.created_by`

// ListByArticle historial de todos los lotes del artículo.
func (r *MovementRepo) ListByArticle(articleID string, limit, offset int) ([]*repository.MovementJournalEntry, error) {
	query := journalQuery + `
	WHERE l.article_id = $1
	ORDER BY m.date DESC
	LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, articleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by article: %w", err)
	}
	defer rows.Close()
	return scanJournal(rows)
}

// ListRecent historial global paginado.
func (r *MovementRepo) ListRecent(limit, offset int) ([]*repository.MovementJournalEntry, error) {
	query := journalQuery + `
	ORDER BY m.date DESC
	LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	defer rows.Close()
	return scanJournal(rows)
}

func scanJournal(rows pgx.Rows) ([]*repository.MovementJournalEntry, error) {
	var list []*repository.MovementJournalEntry
	for rows.Next() {
		var e repository.MovementJournalEntry
		var createdBy *string
		if err := rows.Scan(
			&e.Movement.ID, &e.Movement.LotID, &e.Movement.Type, &e.Movement.Quantity,
			&e.Movement.Date, &createdBy, &e.ArticleID, &e.ArticleName, &e.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		if createdBy != nil {
			e.Movement.CreatedBy = *createdBy
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-atelier/internal/domain"
	"github.com/jhoicas/stock-atelier/internal/domain/entity"
	"github.com/jhoicas/stock-atelier/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create persiste un lote nuevo (solo lo invoca el libro de movimientos).
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (id, article_id, quantity, received_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ArticleID, lot.Quantity, lot.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT id, article_id, quantity, received_at FROM lots WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get lot")
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción.
func (r *LotRepo) GetForUpdate(id string) (*entity.Lot, error) {
	query := `SELECT id, article_id, quantity, received_at FROM lots WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get lot for update")
}

// AddQuantity aplica el delta como incremento atómico en la fila del lote y
// devuelve la cantidad resultante. Dos movimientos concurrentes sobre el
// mismo lote nunca se pierden: la suma la hace el motor, no la aplicación.
func (r *LotRepo) AddQuantity(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE lots SET quantity = quantity + $2
		WHERE id = $1
		RETURNING quantity`
	var qty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, id, delta).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("add lot quantity: %w", err)
	}
	return qty, nil
}

// ListByArticle lista los lotes del artículo por recepción descendente.
// onlyWithStock true excluye los lotes vacíos (selector del formulario).
func (r *LotRepo) ListByArticle(articleID string, onlyWithStock bool) ([]*entity.Lot, error) {
	query := `SELECT id, article_id, quantity, received_at FROM lots WHERE article_id = $1`
	if onlyWithStock {
		query += ` AND quantity > 0`
	}
	query += ` ORDER BY received_at DESC`

	rows, err := r.q.Query(context.Background(), query, articleID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.ArticleID, &l.Quantity, &l.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// SumByArticle stock total del artículo. COALESCE cubre el caso sin lotes.
func (r *LotRepo) SumByArticle(articleID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM lots WHERE article_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, articleID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum lots: %w", err)
	}
	return total, nil
}

func (r *LotRepo) scanOne(row pgx.Row, op string) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(&l.ID, &l.ArticleID, &l.Quantity, &l.ReceivedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}

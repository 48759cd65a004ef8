package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-atelier/internal/domain"
	"github.com/jhoicas/stock-atelier/internal/domain/entity"
	"github.com/jhoicas/stock-atelier/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

const articleColumns = `id, name, supplier, interfas_ref, supplier_ref, category, color, description, safety_stock, unit, active, created_at, updated_at`

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL
// (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

// Create persiste un artículo nuevo. Las referencias llevan índice único:
// una colisión se traduce a ErrDuplicate.
func (r *ArticleRepo) Create(article *entity.Article) error {
	query := `
		INSERT INTO articles (id, name, supplier, interfas_ref, supplier_ref, category, color, description, safety_stock, unit, active, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		article.ID, article.Name, article.Supplier, article.InterfasRef, article.SupplierRef,
		article.Category, article.Color, article.Description, article.SafetyStock, article.Unit,
		article.Active, article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// Update modifica los campos editables (el flag active va por SetActive).
func (r *ArticleRepo) Update(article *entity.Article) error {
	query := `
		UPDATE articles
		SET name = $2, supplier = $3, interfas_ref = NULLIF($4, ''), supplier_ref = $5,
		    category = $6, color = $7, description = $8, safety_stock = $9, unit = $10,
		    updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		article.ID, article.Name, article.Supplier, article.InterfasRef, article.SupplierRef,
		article.Category, article.Color, article.Description, article.SafetyStock, article.Unit,
		article.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ArticleRepo) GetByID(id string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get article")
}

// FindByRef busca por coincidencia exacta contra cualquiera de las dos
// referencias. Sensible a mayúsculas; el caller ya recortó espacios.
func (r *ArticleRepo) FindByRef(code string) (*entity.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE interfas_ref = $1 OR supplier_ref = $1
		LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "find article by ref")
}

// List lista artículos por nombre, con filtro de texto libre sobre nombre,
// proveedor y referencias.
func (r *ArticleRepo) List(search string, includeArchived bool, limit, offset int) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles`
	var conds []string
	args := []any{}
	pos := 1
	if search != "" {
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR supplier ILIKE $%d OR interfas_ref ILIKE $%d OR supplier_ref ILIKE $%d)",
			pos, pos, pos, pos))
		args = append(args, "%"+search+"%")
		pos++
	}
	if !includeArchived {
		conds = append(conds, "active = true")
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var list []*entity.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// SetActive archiva/reactiva. La barrera de stock la aplica el caso de uso.
func (r *ArticleRepo) SetActive(id string, active bool) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE articles SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set article active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ArticleRepo) scanOne(row pgx.Row, op string) (*entity.Article, error) {
	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

func scanArticle(row pgx.Row) (*entity.Article, error) {
	var a entity.Article
	var interfasRef *string
	err := row.Scan(
		&a.ID, &a.Name, &a.Supplier, &interfasRef, &a.SupplierRef,
		&a.Category, &a.Color, &a.Description, &a.SafetyStock, &a.Unit,
		&a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if interfasRef != nil {
		a.InterfasRef = *interfasRef
	}
	return &a, nil
}

package repository

import "github.com/jhoicas/stock-atelier/internal/domain/entity"

// ArticleRepository puerto de persistencia para artículos del catálogo.
// Los métodos de lectura devuelven (nil, nil) cuando no hay resultado.
type ArticleRepository interface {
	Create(article *entity.Article) error
	Update(article *entity.Article) error
	GetByID(id string) (*entity.Article, error)
	// FindByRef busca por coincidencia exacta (sensible a mayúsculas) contra
	// la referencia interfas O la referencia proveedor. El código ya llega
	// recortado desde el caso de uso.
	FindByRef(code string) (*entity.Article, error)
	// List devuelve artículos filtrados por texto libre (nombre, proveedor o
	// referencias). search vacío lista todo; includeArchived false oculta inactivos.
	List(search string, includeArchived bool, limit, offset int) ([]*entity.Article, error)
	SetActive(id string, active bool) error
}

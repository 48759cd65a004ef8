package catalogue

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-atelier/internal/application/dto"
	"github.com/jhoicas/stock-atelier/internal/domain"
	"github.com/jhoicas/stock-atelier/internal/domain/entity"
	"github.com/jhoicas/stock-atelier/internal/domain/repository"
	domstock "github.com/jhoicas/stock-atelier/internal/domain/stock"
)

// CatalogueUseCase casos de uso del catálogo: CRUD de artículos, archivado
// con barrera de stock, identificación por código escaneado y detalle con
// agregados de stock.
type CatalogueUseCase struct {
	articleRepo repository.ArticleRepository
	lotRepo     repository.LotRepository
}

// NewCatalogueUseCase construye el caso de uso.
func NewCatalogueUseCase(articleRepo repository.ArticleRepository, lotRepo repository.LotRepository) *CatalogueUseCase {
	return &CatalogueUseCase{articleRepo: articleRepo, lotRepo: lotRepo}
}

// Create crea un artículo nuevo. Nombre, proveedor y referencia proveedor son
// obligatorios; el umbral de seguridad no puede ser negativo.
func (uc *CatalogueUseCase) Create(_ context.Context, in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	if in.Name == "" || in.Supplier == "" || in.SupplierRef == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SafetyStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	article := &entity.Article{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Supplier:    in.Supplier,
		InterfasRef: strings.TrimSpace(in.InterfasRef),
		SupplierRef: strings.TrimSpace(in.SupplierRef),
		Category:    in.Category,
		Color:       in.Color,
		Description: in.Description,
		SafetyStock: in.SafetyStock,
		Unit:        in.Unit,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.articleRepo.Create(article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// Update modifica los campos editables de un artículo existente.
func (uc *CatalogueUseCase) Update(_ context.Context, id string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	if in.Name == "" || in.Supplier == "" || in.SupplierRef == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SafetyStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	article, err := uc.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	article.Name = in.Name
	article.Supplier = in.Supplier
	article.InterfasRef = strings.TrimSpace(in.InterfasRef)
	article.SupplierRef = strings.TrimSpace(in.SupplierRef)
	article.Category = in.Category
	article.Color = in.Color
	article.Description = in.Description
	article.SafetyStock = in.SafetyStock
	article.Unit = in.Unit
	article.UpdatedAt = time.Now()
	if err := uc.articleRepo.Update(article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// SetActive archiva o reactiva un artículo.
// Regla de negocio: no se puede archivar mientras quede stock; la
// reactivación siempre está permitida.
func (uc *CatalogueUseCase) SetActive(_ context.Context, id string, active bool) error {
	article, err := uc.articleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if article == nil {
		return domain.ErrNotFound
	}
	if article.Active == active {
		return nil // ya está en el estado pedido
	}
	if !active {
		total, err := uc.lotRepo.SumByArticle(id)
		if err != nil {
			return err
		}
		if total.GreaterThan(decimal.Zero) {
			return domain.ErrArticleHasStock
		}
	}
	return uc.articleRepo.SetActive(id, active)
}

// GetDetail devuelve el artículo con sus lotes (recepción descendente),
// el stock total recalculado y la bandera de stock bajo.
func (uc *CatalogueUseCase) GetDetail(_ context.Context, id string) (*dto.ArticleDetailResponse, error) {
	article, err := uc.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	lots, err := uc.lotRepo.ListByArticle(id, false)
	if err != nil {
		return nil, err
	}
	total := domstock.TotalStock(lots)
	detail := &dto.ArticleDetailResponse{
		Article:    *toArticleResponse(article),
		Lots:       make([]dto.LotResponse, 0, len(lots)),
		TotalStock: total,
		LowStock:   domstock.IsLowStock(total, article.SafetyStock),
	}
	for _, l := range lots {
		detail.Lots = append(detail.Lots, dto.LotResponse{
			ID:         l.ID,
			Quantity:   l.Quantity,
			ReceivedAt: l.ReceivedAt,
		})
	}
	return detail, nil
}

// ListLotsWithStock lotes con cantidad > 0 del artículo, para el selector
// del formulario de movimiento.
func (uc *CatalogueUseCase) ListLotsWithStock(_ context.Context, articleID string) ([]dto.LotResponse, error) {
	lots, err := uc.lotRepo.ListByArticle(articleID, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.LotResponse{ID: l.ID, Quantity: l.Quantity, ReceivedAt: l.ReceivedAt})
	}
	return out, nil
}

// List lista artículos con búsqueda de texto libre.
func (uc *CatalogueUseCase) List(_ context.Context, search string, includeArchived bool, page dto.PageRequest) ([]dto.ArticleResponse, error) {
	page.DefaultPage()
	articles, err := uc.articleRepo.List(strings.TrimSpace(search), includeArchived, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, *toArticleResponse(a))
	}
	return out, nil
}

// ResolveByCode identifica un artículo desde un código escaneado o tecleado:
// recorta espacios (las douchettes suelen colarlos) y busca coincidencia
// exacta contra la referencia interfas o la del proveedor. El código limpio
// se devuelve siempre para que el caller pueda pre-rellenar el alta si no
// hubo coincidencia.
func (uc *CatalogueUseCase) ResolveByCode(ctx context.Context, code string) (*dto.ScanResponse, string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, "", domain.ErrInvalidInput
	}
	article, err := uc.articleRepo.FindByRef(code)
	if err != nil {
		return nil, code, err
	}
	if article == nil {
		return nil, code, domain.ErrNotFound
	}
	total, err := uc.lotRepo.SumByArticle(article.ID)
	if err != nil {
		return nil, code, err
	}
	return &dto.ScanResponse{
		Article:    *toArticleResponse(article),
		TotalStock: total,
		LowStock:   domstock.IsLowStock(total, article.SafetyStock),
	}, code, nil
}

// GetByID obtiene un artículo plano (sin lotes).
func (uc *CatalogueUseCase) GetByID(_ context.Context, id string) (*dto.ArticleResponse, error) {
	article, err := uc.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	return toArticleResponse(article), nil
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	return &dto.ArticleResponse{
		ID:          a.ID,
		Name:        a.Name,
		Supplier:    a.Supplier,
		InterfasRef: a.InterfasRef,
		SupplierRef: a.SupplierRef,
		Category:    a.Category,
		Color:       a.Color,
		Description: a.Description,
		SafetyStock: a.SafetyStock,
		Unit:        a.Unit,
		Active:      a.Active,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

package catalogue_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-atelier/internal/application/catalogue"
	"github.com/jhoicas/stock-atelier/internal/application/dto"
	"github.com/jhoicas/stock-atelier/internal/domain"
	"github.com/jhoicas/stock-atelier/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeArticleRepo struct {
	articles map[string]*entity.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[string]*entity.Article)}
}

func (r *fakeArticleRepo) Create(a *entity.Article) error {
	for _, existing := range r.articles {
		if existing.SupplierRef == a.SupplierRef ||
			(a.InterfasRef != "" && existing.InterfasRef == a.InterfasRef) {
			return domain.ErrDuplicate
		}
	}
	r.articles[a.ID] = a
	return nil
}
func (r *fakeArticleRepo) Update(a *entity.Article) error {
	if _, ok := r.articles[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.articles[a.ID] = a
	return nil
}
func (r *fakeArticleRepo) GetByID(id string) (*entity.Article, error) {
	return r.articles[id], nil
}
func (r *fakeArticleRepo) FindByRef(code string) (*entity.Article, error) {
	for _, a := range r.articles {
		if (a.InterfasRef != "" && a.InterfasRef == code) || a.SupplierRef == code {
			return a, nil
		}
	}
	return nil, nil
}
func (r *fakeArticleRepo) List(string, bool, int, int) ([]*entity.Article, error) {
	out := make([]*entity.Article, 0, len(r.articles))
	for _, a := range r.articles {
		out = append(out, a)
	}
	return out, nil
}
func (r *fakeArticleRepo) SetActive(id string, active bool) error {
	a, ok := r.articles[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Active = active
	return nil
}

type fakeLotRepo struct {
	lots map[string]*entity.Lot
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{lots: make(map[string]*entity.Lot)}
}

func (r *fakeLotRepo) Create(l *entity.Lot) error                  { r.lots[l.ID] = l; return nil }
func (r *fakeLotRepo) GetByID(id string) (*entity.Lot, error)      { return r.lots[id], nil }
func (r *fakeLotRepo) GetForUpdate(id string) (*entity.Lot, error) { return r.lots[id], nil }
func (r *fakeLotRepo) AddQuantity(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	l, ok := r.lots[id]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	l.Quantity = l.Quantity.Add(delta)
	return l.Quantity, nil
}
func (r *fakeLotRepo) ListByArticle(articleID string, onlyWithStock bool) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range r.lots {
		if l.ArticleID != articleID {
			continue
		}
		if onlyWithStock && !l.Quantity.IsPositive() {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
func (r *fakeLotRepo) SumByArticle(articleID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range r.lots {
		if l.ArticleID == articleID {
			total = total.Add(l.Quantity)
		}
	}
	return total, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newFixture() (*catalogue.CatalogueUseCase, *fakeArticleRepo, *fakeLotRepo) {
	articleRepo := newFakeArticleRepo()
	lotRepo := newFakeLotRepo()
	return catalogue.NewCatalogueUseCase(articleRepo, lotRepo), articleRepo, lotRepo
}

func seedArticle(repo *fakeArticleRepo, id string) *entity.Article {
	a := &entity.Article{
		ID:          id,
		Name:        "Fil de soie",
		Supplier:    "Maison Duval",
		InterfasRef: "INT-100",
		SupplierRef: "REF-42",
		SafetyStock: dec("5"),
		Active:      true,
	}
	repo.articles[id] = a
	return a
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create / Update
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CamposObligatorios(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Create(context.Background(), dto.CreateArticleRequest{
		Name: "Sin proveedor", SupplierRef: "R-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateArticleRequest{
		Name: "Umbral negativo", Supplier: "X", SupplierRef: "R-1",
		SafetyStock: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_RecortaReferencias(t *testing.T) {
	uc, repo, _ := newFixture()

	out, err := uc.Create(context.Background(), dto.CreateArticleRequest{
		Name:        "Bouton nacre",
		Supplier:    "Maison Duval",
		InterfasRef: "  INT-7  ",
		SupplierRef: " REF-7 ",
		SafetyStock: dec("2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "INT-7", out.InterfasRef)
	assert.Equal(t, "REF-7", out.SupplierRef)
	assert.True(t, out.Active, "un artículo nuevo nace activo")
	assert.True(t, repo.articles[out.ID].Active)
}

func TestCreate_ReferenciaDuplicada(t *testing.T) {
	uc, repo, _ := newFixture()
	seedArticle(repo, "art-1")

	_, err := uc.Create(context.Background(), dto.CreateArticleRequest{
		Name: "Otro", Supplier: "Y", SupplierRef: "REF-42",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdate_ArticuloInexistente(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Update(context.Background(), "nope", dto.UpdateArticleRequest{
		Name: "X", Supplier: "Y", SupplierRef: "Z",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SetActive — barrera de archivado
// ──────────────────────────────────────────────────────────────────────────────

func TestSetActive_ArchivarConStock_Rechazado(t *testing.T) {
	uc, articleRepo, lotRepo := newFixture()
	seedArticle(articleRepo, "art-1")
	lotRepo.lots["lot-1"] = &entity.Lot{ID: "lot-1", ArticleID: "art-1", Quantity: dec("3")}

	err := uc.SetActive(context.Background(), "art-1", false)
	assert.ErrorIs(t, err, domain.ErrArticleHasStock)
	assert.True(t, articleRepo.articles["art-1"].Active, "el artículo sigue activo")
}

func TestSetActive_ArchivarSinStock_Permitido(t *testing.T) {
	uc, articleRepo, lotRepo := newFixture()
	seedArticle(articleRepo, "art-1")
	// Lote vacío: SUM = 0, el archivado procede
	lotRepo.lots["lot-1"] = &entity.Lot{ID: "lot-1", ArticleID: "art-1", Quantity: decimal.Zero}

	err := uc.SetActive(context.Background(), "art-1", false)
	require.NoError(t, err)
	assert.False(t, articleRepo.articles["art-1"].Active)
}

func TestSetActive_ReactivarSiemprePermitido(t *testing.T) {
	uc, articleRepo, lotRepo := newFixture()
	a := seedArticle(articleRepo, "art-1")
	a.Active = false
	lotRepo.lots["lot-1"] = &entity.Lot{ID: "lot-1", ArticleID: "art-1", Quantity: dec("99")}

	err := uc.SetActive(context.Background(), "art-1", true)
	require.NoError(t, err)
	assert.True(t, articleRepo.articles["art-1"].Active,
		"reactivar no depende del stock")
}

func TestSetActive_EstadoYaPedido_NoOp(t *testing.T) {
	uc, articleRepo, lotRepo := newFixture()
	seedArticle(articleRepo, "art-1")
	lotRepo.lots["lot-1"] = &entity.Lot{ID: "lot-1", ArticleID: "art-1", Quantity: dec("3")}

	// Activar un artículo ya activo no evalúa la barrera de stock
	err := uc.SetActive(context.Background(), "art-1", true)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ResolveByCode — identificación por código escaneado
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveByCode_RecortaYEncuentra(t *testing.T) {
	uc, articleRepo, lotRepo := newFixture()
	seedArticle(articleRepo, "art-1")
	lotRepo.lots["lot-1"] = &entity.Lot{ID: "lot-1", ArticleID: "art-1", Quantity: dec("3")}

	out, code, err := uc.ResolveByCode(context.Background(), "  REF-42  ")
	require.NoError(t, err)
	assert.Equal(t, "REF-42", code, "el código se devuelve recortado")
	assert.Equal(t, "art-1", out.Article.ID)
	assert.True(t, out.TotalStock.Equal(dec("3")))
	assert.True(t, out.LowStock, "3 <= umbral 5 debe marcar stock bajo")
}

func TestResolveByCode_ReferenciaInterfas(t *testing.T) {
	uc, articleRepo, _ := newFixture()
	seedArticle(articleRepo, "art-1")

	out, _, err := uc.ResolveByCode(context.Background(), "INT-100")
	require.NoError(t, err)
	assert.Equal(t, "art-1", out.Article.ID)
}

func TestResolveByCode_SinCoincidencia_DevuelveCodigoLimpio(t *testing.T) {
	uc, _, _ := newFixture()

	out, code, err := uc.ResolveByCode(context.Background(), " ZZZ-999 ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, out)
	assert.Equal(t, "ZZZ-999", code,
		"el código limpio permite pre-rellenar el alta del artículo")
}

func TestResolveByCode_CodigoVacio(t *testing.T) {
	uc, _, _ := newFixture()

	_, _, err := uc.ResolveByCode(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetDetail — agregados de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDetail_TotalYBanderaDeStockBajo(t *testing.T) {
	uc, articleRepo, lotRepo := newFixture()
	a := seedArticle(articleRepo, "art-1")
	a.SafetyStock = dec("10")
	now := time.Now()
	lotRepo.lots["lot-1"] = &entity.Lot{ID: "lot-1", ArticleID: "art-1", Quantity: dec("15"), ReceivedAt: now}
	lotRepo.lots["lot-2"] = &entity.Lot{ID: "lot-2", ArticleID: "art-1", Quantity: dec("-5"), ReceivedAt: now}

	detail, err := uc.GetDetail(context.Background(), "art-1")
	require.NoError(t, err)
	assert.True(t, detail.TotalStock.Equal(dec("10")))
	assert.True(t, detail.LowStock, "el umbral es inclusivo: total == umbral marca stock bajo")
	assert.Len(t, detail.Lots, 2)

	// Una unidad más y la bandera cae
	lotRepo.lots["lot-1"].Quantity = dec("16")
	detail, err = uc.GetDetail(context.Background(), "art-1")
	require.NoError(t, err)
	assert.False(t, detail.LowStock)
}

func TestGetDetail_ArticuloInexistente(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.GetDetail(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package stock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-atelier/internal/application/stock"
	"github.com/jhoicas/stock-atelier/internal/domain"
	"github.com/jhoicas/stock-atelier/internal/domain/entity"
	"github.com/jhoicas/stock-atelier/internal/domain/repository"
	domstock "github.com/jhoicas/stock-atelier/internal/domain/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: el TxRunner serializa con un mutex (equivalente al bloqueo
// de fila de Postgres) y deshace los cambios si la función devuelve error.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	articles  map[string]*entity.Article
	lots      map[string]*entity.Lot
	movements []*entity.Movement
}

func newMemStore() *memStore {
	return &memStore{
		articles: make(map[string]*entity.Article),
		lots:     make(map[string]*entity.Lot),
	}
}

type memArticleRepo struct{ store *memStore }

func (r *memArticleRepo) Create(a *entity.Article) error { r.store.articles[a.ID] = a; return nil }
func (r *memArticleRepo) Update(a *entity.Article) error { r.store.articles[a.ID] = a; return nil }
func (r *memArticleRepo) GetByID(id string) (*entity.Article, error) {
	return r.store.articles[id], nil
}
func (r *memArticleRepo) FindByRef(code string) (*entity.Article, error) {
	for _, a := range r.store.articles {
		if a.InterfasRef == code || a.SupplierRef == code {
			return a, nil
		}
	}
	return nil, nil
}
func (r *memArticleRepo) List(string, bool, int, int) ([]*entity.Article, error) { return nil, nil }
func (r *memArticleRepo) SetActive(id string, active bool) error {
	if a, ok := r.store.articles[id]; ok {
		a.Active = active
	}
	return nil
}

// memLotRepo opera sin lock propio: el fakeTxRunner ya sostiene el mutex.
type memLotRepo struct{ store *memStore }

func (r *memLotRepo) Create(l *entity.Lot) error {
	cp := *l
	r.store.lots[l.ID] = &cp
	return nil
}
func (r *memLotRepo) GetByID(id string) (*entity.Lot, error) {
	if l, ok := r.store.lots[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}
func (r *memLotRepo) GetForUpdate(id string) (*entity.Lot, error) { return r.GetByID(id) }
func (r *memLotRepo) AddQuantity(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	l, ok := r.store.lots[id]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	l.Quantity = l.Quantity.Add(delta)
	return l.Quantity, nil
}
func (r *memLotRepo) ListByArticle(articleID string, onlyWithStock bool) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range r.store.lots {
		if l.ArticleID != articleID {
			continue
		}
		if onlyWithStock && !l.Quantity.IsPositive() {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}
func (r *memLotRepo) SumByArticle(articleID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range r.store.lots {
		if l.ArticleID == articleID {
			total = total.Add(l.Quantity)
		}
	}
	return total, nil
}

type memMovementRepo struct{ store *memStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}
func (r *memMovementRepo) ListByLot(lotID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if m.LotID == lotID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *memMovementRepo) ListByArticle(string, int, int) ([]*repository.MovementJournalEntry, error) {
	return nil, nil
}
func (r *memMovementRepo) ListRecent(int, int) ([]*repository.MovementJournalEntry, error) {
	return nil, nil
}

type fakeTxRunner struct{ store *memStore }

func (tr *fakeTxRunner) Run(_ context.Context, fn func(repository.LotRepository, repository.MovementRepository) error) error {
	tr.store.mu.Lock()
	defer tr.store.mu.Unlock()

	// Snapshot para simular el rollback
	lotsBackup := make(map[string]*entity.Lot, len(tr.store.lots))
	for id, l := range tr.store.lots {
		cp := *l
		lotsBackup[id] = &cp
	}
	movCount := len(tr.store.movements)

	err := fn(&memLotRepo{store: tr.store}, &memMovementRepo{store: tr.store})
	if err != nil {
		tr.store.lots = lotsBackup
		tr.store.movements = tr.store.movements[:movCount]
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	articleID = "art-1"
	userID    = "user-1"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// newFixture devuelve el caso de uso con un artículo activo y el store.
func newFixture(t *testing.T, strict bool) (*stock.ApplyMovementUseCase, *memStore) {
	t.Helper()
	store := newMemStore()
	store.articles[articleID] = &entity.Article{
		ID:     articleID,
		Name:   "Tissu lin écru",
		Active: true,
	}
	uc := stock.NewApplyMovementUseCase(&fakeTxRunner{store: store}, &memArticleRepo{store: store}, strict)
	return uc, store
}

func seedLot(store *memStore, id string, qty decimal.Decimal) {
	store.lots[id] = &entity.Lot{ID: id, ArticleID: articleID, Quantity: qty}
}

func apply(uc *stock.ApplyMovementUseCase, lotID, typ, qty string) (*stock.ApplyMovementResult, error) {
	return uc.ApplyMovement(context.Background(), stock.ApplyMovementInput{
		ArticleID: articleID,
		LotID:     lotID,
		Type:      typ,
		Quantity:  dec(qty),
		UserID:    userID,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del libro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntreeLoteNuevo(t *testing.T) {
	uc, store := newFixture(t, true)

	result, err := apply(uc, "", entity.MovementTypeEntree, "12.5")
	require.NoError(t, err)
	require.NotEmpty(t, result.LotID, "la ENTREE sin lote debe crear uno nuevo")
	assert.True(t, result.LotQuantity.Equal(dec("12.5")))

	lot := store.lots[result.LotID]
	require.NotNil(t, lot)
	assert.True(t, lot.Quantity.Equal(dec("12.5")))
	assert.Equal(t, articleID, lot.ArticleID)

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.MovementTypeEntree, mov.Type)
	assert.True(t, mov.Quantity.Equal(dec("12.5")), "la cantidad del movimiento se guarda positiva")
	assert.Equal(t, userID, mov.CreatedBy)
}

func TestApplyMovement_SortieLoteExistente(t *testing.T) {
	uc, store := newFixture(t, true)
	seedLot(store, "lot-1", dec("10"))

	result, err := apply(uc, "lot-1", entity.MovementTypeSortie, "3")
	require.NoError(t, err)
	assert.True(t, result.LotQuantity.Equal(dec("7")))
	assert.True(t, store.lots["lot-1"].Quantity.Equal(dec("7")))

	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeSortie, store.movements[0].Type)
	assert.True(t, store.movements[0].Quantity.Equal(dec("3")),
		"la dirección vive en el tipo, no en el signo de la cantidad")
}

func TestApplyMovement_CantidadNoPositiva_Rechazada(t *testing.T) {
	uc, store := newFixture(t, true)
	seedLot(store, "lot-1", dec("10"))

	_, err := apply(uc, "lot-1", entity.MovementTypeEntree, "0")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = apply(uc, "lot-1", entity.MovementTypeSortie, "-2")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	assert.Empty(t, store.movements, "una petición rechazada no escribe nada")
	assert.True(t, store.lots["lot-1"].Quantity.Equal(dec("10")))
}

func TestApplyMovement_SinUsuario_Rechazado(t *testing.T) {
	uc, _ := newFixture(t, true)

	_, err := uc.ApplyMovement(context.Background(), stock.ApplyMovementInput{
		ArticleID: articleID,
		Type:      entity.MovementTypeEntree,
		Quantity:  dec("1"),
		UserID:    "",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestApplyMovement_TipoInvalido_Rechazado(t *testing.T) {
	uc, _ := newFixture(t, true)

	_, err := apply(uc, "", "AJUSTE", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_SortieSobreLoteNuevo_Rechazada(t *testing.T) {
	uc, _ := newFixture(t, true)

	_, err := apply(uc, "", entity.MovementTypeSortie, "5")
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"el centinela de lote nuevo solo es legal con ENTREE")
}

func TestApplyMovement_ArticuloInexistente_Rechazado(t *testing.T) {
	uc, _ := newFixture(t, true)

	_, err := uc.ApplyMovement(context.Background(), stock.ApplyMovementInput{
		ArticleID: "art-desconocido",
		Type:      entity.MovementTypeEntree,
		Quantity:  dec("1"),
		UserID:    userID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_ArticuloArchivado_Rechazado(t *testing.T) {
	uc, store := newFixture(t, true)
	store.articles[articleID].Active = false

	_, err := apply(uc, "", entity.MovementTypeEntree, "1")
	assert.ErrorIs(t, err, domain.ErrArticleArchived)
}

func TestApplyMovement_LoteInexistente_Rechazado(t *testing.T) {
	uc, _ := newFixture(t, true)

	_, err := apply(uc, "lot-fantasma", entity.MovementTypeEntree, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_LoteDeOtroArticulo_Rechazado(t *testing.T) {
	uc, store := newFixture(t, true)
	store.articles["art-2"] = &entity.Article{ID: "art-2", Name: "Otro", Active: true}
	store.lots["lot-ajeno"] = &entity.Lot{ID: "lot-ajeno", ArticleID: "art-2", Quantity: dec("5")}

	_, err := apply(uc, "lot-ajeno", entity.MovementTypeSortie, "1")
	assert.ErrorIs(t, err, domain.ErrLotMismatch)
	assert.Empty(t, store.movements)
}

func TestApplyMovement_StockInsuficiente_ModoEstricto(t *testing.T) {
	uc, store := newFixture(t, true)
	seedLot(store, "lot-1", dec("2"))

	_, err := apply(uc, "lot-1", entity.MovementTypeSortie, "5")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Atomicidad: nada escrito tras el rechazo
	assert.True(t, store.lots["lot-1"].Quantity.Equal(dec("2")))
	assert.Empty(t, store.movements)
}

func TestApplyMovement_StockNegativo_ModoPermisivo(t *testing.T) {
	uc, store := newFixture(t, false)
	seedLot(store, "lot-1", dec("2"))

	result, err := apply(uc, "lot-1", entity.MovementTypeSortie, "5")
	require.NoError(t, err, "en modo permisivo la SORTIE mayor que el stock se aplica")
	assert.True(t, result.LotQuantity.Equal(dec("-3")))
	require.Len(t, store.movements, 1)
}

// La cantidad del lote debe ser siempre la suma con signo de sus movimientos.
func TestApplyMovement_CantidadLoteConsistenteConLibro(t *testing.T) {
	uc, store := newFixture(t, true)

	result, err := apply(uc, "", entity.MovementTypeEntree, "20")
	require.NoError(t, err)
	lotID := result.LotID

	_, err = apply(uc, lotID, entity.MovementTypeSortie, "4.25")
	require.NoError(t, err)
	_, err = apply(uc, lotID, entity.MovementTypeEntree, "1.75")
	require.NoError(t, err)
	_, err = apply(uc, lotID, entity.MovementTypeSortie, "10")
	require.NoError(t, err)

	movs, err := (&memMovementRepo{store: store}).ListByLot(lotID)
	require.NoError(t, err)
	require.Len(t, movs, 4)

	expected := domstock.SumSignedDeltas(movs)
	assert.True(t, store.lots[lotID].Quantity.Equal(expected),
		"cantidad del lote = suma con signo de sus movimientos")
	assert.True(t, store.lots[lotID].Quantity.Equal(dec("7.5")))
}

// Sin clave de idempotencia: dos peticiones idénticas son dos movimientos.
func TestApplyMovement_PeticionesIdenticas_DosMovimientos(t *testing.T) {
	uc, store := newFixture(t, true)
	seedLot(store, "lot-1", dec("0"))

	_, err := apply(uc, "lot-1", entity.MovementTypeEntree, "5")
	require.NoError(t, err)
	_, err = apply(uc, "lot-1", entity.MovementTypeEntree, "5")
	require.NoError(t, err)

	assert.Len(t, store.movements, 2)
	assert.True(t, store.lots["lot-1"].Quantity.Equal(dec("10")))
}

// N salidas concurrentes de 1 unidad sobre un lote de N: sin lost updates,
// el lote termina exactamente en cero con N movimientos registrados.
func TestApplyMovement_SortiesConcurrentes_SinLostUpdates(t *testing.T) {
	const n = 50
	uc, store := newFixture(t, true)
	seedLot(store, "lot-1", dec("50"))

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := apply(uc, "lot-1", entity.MovementTypeSortie, "1")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.True(t, store.lots["lot-1"].Quantity.Equal(decimal.Zero),
		"50 salidas de 1 sobre 50 deben dejar el lote exactamente en 0")
	assert.Len(t, store.movements, n)
}

package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-atelier/internal/domain"
	"github.com/jhoicas/stock-atelier/internal/domain/entity"
	"github.com/jhoicas/stock-atelier/internal/domain/repository"
)

// ApplyMovementUseCase es el libro de movimientos: aplica cada cambio de
// cantidad como un registro inmutable dentro de una transacción, manteniendo
// la cantidad del lote consistente con la suma de sus movimientos bajo
// concurrencia (bloqueo de fila + incremento atómico).
//
// strictStock decide la política de suelo de stock: en modo estricto una
// SORTIE mayor que la cantidad disponible del lote se rechaza con
// ErrInsufficientStock; en modo permisivo se aplica y el lote puede quedar
// negativo (comportamiento del sistema original, que solo avisaba en UI).
type ApplyMovementUseCase struct {
	txRunner    TxRunner
	articleRepo repository.ArticleRepository
	strictStock bool
	now         func() time.Time
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner, articleRepo repository.ArticleRepository, strictStock bool) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner:    txRunner,
		articleRepo: articleRepo,
		strictStock: strictStock,
		now:         time.Now,
	}
}

// ApplyMovementInput entrada para aplicar un movimiento.
// LotID vacío es el centinela "nuevo lote", legal solo con type ENTREE.
type ApplyMovementInput struct {
	ArticleID string
	LotID     string
	Type      string // ENTREE | SORTIE
	Quantity  decimal.Decimal
	UserID    string
}

// ApplyMovementResult identifica lo escrito por un movimiento aplicado.
type ApplyMovementResult struct {
	MovementID  string
	LotID       string
	LotQuantity decimal.Decimal // cantidad del lote tras aplicar el delta
}

// ApplyMovement valida la petición, verifica el artículo y ejecuta la
// escritura transaccional: crear o bloquear el lote, aplicar el delta con
// signo e insertar el movimiento. Commit si todo ok; cualquier fallo hace
// rollback completo, sin estado parcial observable y sin reintentos.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input ApplyMovementInput) (*ApplyMovementResult, error) {
	if input.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if input.Type != entity.MovementTypeEntree && input.Type != entity.MovementTypeSortie {
		return nil, domain.ErrInvalidInput
	}
	// La cantidad debe ser estrictamente positiva: el original hacía un no-op
	// silencioso, aquí se devuelve un error distinguible.
	if !input.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	// "Nuevo lote" solo existe para entradas: una SORTIE sin lote no tiene sentido.
	if input.LotID == "" && input.Type != entity.MovementTypeEntree {
		return nil, domain.ErrInvalidInput
	}

	article, err := uc.articleRepo.GetByID(input.ArticleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	if !article.Active {
		return nil, domain.ErrArticleArchived
	}

	now := uc.now()
	result := &ApplyMovementResult{}

	err = uc.txRunner.Run(ctx, func(lotRepo repository.LotRepository, movRepo repository.MovementRepository) error {
		var lotID string
		var newQty decimal.Decimal

		if input.LotID == "" {
			// CASO A: ENTREE sobre lote nuevo. Única vía de creación de lotes;
			// nace directamente con la cantidad del movimiento, sin carrera
			// posible porque la fila es nueva.
			lot := &entity.Lot{
				ID:         uuid.New().String(),
				ArticleID:  input.ArticleID,
				Quantity:   input.Quantity,
				ReceivedAt: now,
			}
			if err := lotRepo.Create(lot); err != nil {
				return err
			}
			lotID = lot.ID
			newQty = lot.Quantity
		} else {
			// CASO B: lote existente. Bloquea la fila (SELECT FOR UPDATE) para
			// que la verificación de pertenencia y de suelo de stock y el
			// incremento sean un solo paso frente a movimientos concurrentes.
			lot, err := lotRepo.GetForUpdate(input.LotID)
			if err != nil {
				return err
			}
			if lot == nil {
				return domain.ErrNotFound
			}
			if lot.ArticleID != input.ArticleID {
				return domain.ErrLotMismatch
			}
			delta := input.Quantity
			if input.Type == entity.MovementTypeSortie {
				if uc.strictStock && lot.Quantity.LessThan(input.Quantity) {
					return domain.ErrInsufficientStock
				}
				delta = delta.Neg()
			}
			newQty, err = lotRepo.AddQuantity(lot.ID, delta)
			if err != nil {
				return err
			}
			lotID = lot.ID
		}

		// Registro append-only: cantidad siempre positiva, dirección en el tipo.
		mov := &entity.Movement{
			ID:        uuid.New().String(),
			LotID:     lotID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			Date:      now,
			CreatedBy: input.UserID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		result.MovementID = mov.ID
		result.LotID = lotID
		result.LotQuantity = newQty
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

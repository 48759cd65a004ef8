package stock

import (
	"context"

	"github.com/jhoicas/stock-atelier/internal/application/dto"
	"github.com/jhoicas/stock-atelier/internal/domain/repository"
)

// JournalUseCase lecturas del historial de movimientos.
// Solo lectura; puede correr con aislamiento más bajo que la escritura.
type JournalUseCase struct {
	movRepo repository.MovementRepository
}

// NewJournalUseCase construye el caso de uso.
func NewJournalUseCase(movRepo repository.MovementRepository) *JournalUseCase {
	return &JournalUseCase{movRepo: movRepo}
}

// ListRecent historial global, del más reciente al más antiguo.
func (uc *JournalUseCase) ListRecent(_ context.Context, page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	entries, err := uc.movRepo.ListRecent(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(entries), nil
}

// ListByArticle historial de un artículo concreto.
func (uc *JournalUseCase) ListByArticle(_ context.Context, articleID string, page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	entries, err := uc.movRepo.ListByArticle(articleID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(entries), nil
}

func toMovementResponses(entries []*repository.MovementJournalEntry) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.MovementResponse{
			ID:          e.Movement.ID,
			LotID:       e.Movement.LotID,
			ArticleID:   e.ArticleID,
			ArticleName: e.ArticleName,
			Type:        e.Movement.Type,
			Quantity:    e.Movement.Quantity,
			Date:        e.Movement.Date,
			UserName:    e.UserName,
		})
	}
	return out
}

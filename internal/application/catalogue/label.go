package catalogue

import (
	"context"

	"github.com/jhoicas/stock-atelier/internal/domain"
	"github.com/jhoicas/stock-atelier/internal/domain/entity"
	"github.com/jhoicas/stock-atelier/internal/domain/repository"
)

// ArticleLabelGenerator puerto de generación de etiquetas.
// Lo implementa pdf.LabelGenerator (Maroto); la interfaz mantiene al caso de
// uso fuera de los detalles del PDF.
type ArticleLabelGenerator interface {
	GenerateArticleLabel(article *entity.Article) ([]byte, error)
}

// LabelUseCase produce la etiqueta imprimible de un artículo.
type LabelUseCase struct {
	articleRepo repository.ArticleRepository
	generator   ArticleLabelGenerator
}

// NewLabelUseCase construye el caso de uso.
func NewLabelUseCase(articleRepo repository.ArticleRepository, generator ArticleLabelGenerator) *LabelUseCase {
	return &LabelUseCase{articleRepo: articleRepo, generator: generator}
}

// GenerateLabel resuelve el artículo y delega en el generador.
func (uc *LabelUseCase) GenerateLabel(_ context.Context, articleID string) ([]byte, error) {
	article, err := uc.articleRepo.GetByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateArticleLabel(article)
}

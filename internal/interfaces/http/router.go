package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-atelier/internal/application/auth"
	"github.com/jhoicas/stock-atelier/internal/application/catalogue"
	"github.com/jhoicas/stock-atelier/internal/application/stock"
	"github.com/jhoicas/stock-atelier/internal/domain/permission"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogueUC   *catalogue.CatalogueUseCase
	LabelUC       *catalogue.LabelUseCase
	ApplyMovement *stock.ApplyMovementUseCase
	JournalUC     *stock.JournalUseCase
	AuthUC        *auth.AuthUseCase
	Rules         permission.Ruleset
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Articles (protegido, con matriz de permisos por acción)
	articles := protected.Group("/articles")
	articleHandler := NewArticleHandler(deps.CatalogueUC, deps.LabelUC)
	articles.Get("/", RequirePermission(deps.Rules, permission.ViewArticle), articleHandler.List)
	articles.Post("/", RequirePermission(deps.Rules, permission.AddArticle), articleHandler.Create)
	articles.Get("/:id", RequirePermission(deps.Rules, permission.ViewArticle), articleHandler.GetDetail)
	articles.Put("/:id", RequirePermission(deps.Rules, permission.EditArticle), articleHandler.Update)
	articles.Patch("/:id/active", RequirePermission(deps.Rules, permission.ArchiveArticle), articleHandler.SetActive)
	articles.Get("/:id/lots", RequirePermission(deps.Rules, permission.ViewArticle), articleHandler.ListLots)
	articles.Get("/:id/label", RequirePermission(deps.Rules, permission.ViewArticle), articleHandler.GetLabel)

	// Movements (protegido; la acción depende del type del cuerpo)
	movementHandler := NewMovementHandler(deps.ApplyMovement, deps.JournalUC)
	articles.Post("/:id/movements", RequireMovementPermission(deps.Rules), movementHandler.Apply)
	articles.Get("/:id/movements", RequirePermission(deps.Rules, permission.ViewMovements), movementHandler.ListByArticle)
	protected.Get("/movements", RequirePermission(deps.Rules, permission.ViewMovements), movementHandler.ListRecent)

	// Scan (protegido; cualquier rol autenticado puede identificar un artículo)
	scanHandler := NewScanHandler(deps.CatalogueUC)
	protected.Post("/scan", RequirePermission(deps.Rules, permission.ViewArticle), scanHandler.Scan)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pab-api/internal/application/auth"
	"github.com/jhoicas/pab-api/internal/application/inventory"
	"github.com/jhoicas/pab-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CategoryUC    *usecase.CategoryUseCase
	ProductUC     *usecase.ProductUseCase
	ApplyMovement *inventory.ApplyMovementUseCase
	MovementQuery *usecase.MovementQueryUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil (protegido)
	protected.Get("/auth/profile", authHandler.Profile)
	protected.Patch("/auth/profile", authHandler.UpdateProfile)

	// Categorías (protegido)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categorias")
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Get("/:id/children", categoryHandler.Children)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Productos (protegido)
	productHandler := NewProductHandler(deps.ProductUC, deps.ApplyMovement)
	products := protected.Group("/productos")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/stock", productHandler.UpdateStock)
	products.Delete("/:id", productHandler.Delete)

	// Movimientos (protegido)
	movementHandler := NewMovementHandler(deps.ApplyMovement, deps.MovementQuery)
	movements := protected.Group("/movimientos")
	movements.Post("/", movementHandler.Apply)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
}

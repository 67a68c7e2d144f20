package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jvillada/almacen-api/internal/application/auth"
	"github.com/jvillada/almacen-api/internal/application/usecase"
	"github.com/jvillada/almacen-api/internal/application/workflow"
	"github.com/jvillada/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	LabelUC     *usecase.LabelUseCase
	WarehouseUC *usecase.WarehouseUseCase
	WorkflowUC  *workflow.UseCase
	PrintoutUC  *workflow.PrintoutUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
	SessionTTL  time.Duration
}

// Router registra las rutas de la API. Solo /api/login es público; todo lo
// demás exige sesión (Bearer o cookie).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.SessionTTL)
	api.Post("/login", authHandler.Login)

	// Rutas protegidas
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	productHandler := NewProductHandler(deps.ProductUC, deps.LabelUC)
	protected.Get("/product", productHandler.List)
	protected.Post("/product/add", productHandler.Create)
	protected.Put("/product/update", productHandler.Update)
	protected.Delete("/product", productHandler.Delete)
	protected.Get("/product/label", productHandler.Label)

	// Warehouses (protegido)
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	protected.Get("/warehouse", warehouseHandler.List)
	protected.Post("/warehouse", warehouseHandler.Create)
	protected.Delete("/warehouse", warehouseHandler.Delete)

	// Documentos de inventario (protegido): mismas rutas por tipo
	for _, kind := range []string{entity.DocReceipt, entity.DocDelivery, entity.DocTransfer} {
		h := NewDocumentHandler(kind, deps.WorkflowUC, deps.PrintoutUC)
		protected.Get("/"+kind, h.List)
		protected.Post("/"+kind, h.Create)
		protected.Patch("/"+kind, h.Transition)
		protected.Get("/"+kind+"/pdf", h.PDF)
	}

	// Usuario en sesión (protegido)
	protected.Patch("/user/password", authHandler.ChangePassword)
}

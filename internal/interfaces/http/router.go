package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/warehouse-ledger/internal/application/alerts"
	"github.com/tu-usuario/warehouse-ledger/internal/application/audit"
	"github.com/tu-usuario/warehouse-ledger/internal/application/auth"
	"github.com/tu-usuario/warehouse-ledger/internal/application/ledger"
	"github.com/tu-usuario/warehouse-ledger/internal/application/usecase"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Engine       *ledger.Engine
	AdjustmentUC *ledger.AdjustmentUseCase
	TransferUC   *ledger.TransferUseCase
	Evaluator    *alerts.Evaluator
	AuditUC      *audit.QueryUseCase
	ProductUC    *usecase.ProductUseCase
	LocationUC   *usecase.LocationUseCase
	JWTSecret    string
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
	approvers := RequireRole(entity.RoleSupervisor, entity.RoleAdmin)
	admins := RequireRole(entity.RoleAdmin)

	// Products (protegido; escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", admins, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", admins, productHandler.Update)

	// Locations (protegido; escritura solo admin)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", admins, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", admins, locationHandler.Update)

	// Inventory: entradas/salidas directas y solicitudes de ajuste (protegido)
	invGroup := protected.Group("/inventory")
	ledgerHandler := NewLedgerHandler(deps.Engine)
	invGroup.Post("/ingress", ledgerHandler.RegisterIngress)
	invGroup.Post("/egress", ledgerHandler.RegisterEgress)

	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	invGroup.Post("/adjustments", adjustmentHandler.Create)
	invGroup.Get("/adjustments", adjustmentHandler.List)
	invGroup.Get("/adjustments/:id", adjustmentHandler.GetByID)
	invGroup.Patch("/adjustments/:id/approve", approvers, adjustmentHandler.Approve)
	invGroup.Patch("/adjustments/:id/reject", approvers, adjustmentHandler.Reject)

	// Transfers (protegido)
	transfers := protected.Group("/transfers/internal")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Patch("/:id/approve", approvers, transferHandler.Approve)
	transfers.Patch("/:id/reject", approvers, transferHandler.Reject)

	// Alerts (protegido)
	alertGroup := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.Evaluator)
	alertGroup.Get("/", alertHandler.ListOpen)
	alertGroup.Post("/evaluate", approvers, alertHandler.Evaluate)
	alertGroup.Patch("/:productID/close", approvers, alertHandler.Close)

	// Audit (protegido)
	auditGroup := protected.Group("/audit")
	auditHandler := NewAuditHandler(deps.AuditUC)
	auditGroup.Get("/movements", auditHandler.List)
	auditGroup.Get("/movements/export", auditHandler.Export)
}

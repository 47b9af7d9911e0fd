package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercia-api/internal/application/analytics"
	"github.com/jhoicas/Comercia-api/internal/application/auth"
	"github.com/jhoicas/Comercia-api/internal/application/catalog"
	"github.com/jhoicas/Comercia-api/internal/application/documents"
	"github.com/jhoicas/Comercia-api/internal/application/usecase"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	CustomerUC  *usecase.CustomerUseCase
	ProductUC   *catalog.ProductUseCase
	OrderUC     *usecase.OrderUseCase
	OrderPDFUC  *documents.OrderPDFUseCase
	SettingUC   *usecase.SettingUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
//
// Niveles de acceso:
//   - /api/auth/*           público
//   - gestión de empresas,
//     escrituras de settings
//     y dashboard admin     rol "platform"
//   - el resto              cualquier usuario autenticado, scoped a su empresa
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	platformOnly := RequireRole(entity.RolePlatform)

	// Companies (solo plataforma)
	companies := protected.Group("/companies", platformOnly)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Users (protegido, scoped al tenant del token)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderPDFUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/pdf", orderHandler.DownloadPDF)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)

	// Settings: lecturas para cualquier autenticado, escrituras solo plataforma
	settings := protected.Group("/settings")
	settingHandler := NewSettingHandler(deps.SettingUC)
	settings.Get("/", settingHandler.List)
	settings.Get("/map", settingHandler.Map)
	settings.Get("/:id", settingHandler.GetByID)
	settings.Post("/", platformOnly, settingHandler.Create)
	settings.Put("/:id", platformOnly, settingHandler.Update)
	settings.Delete("/:id", platformOnly, settingHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.CompanySummary)
	protected.Get("/dashboard/admin", platformOnly, dashboardHandler.AdminSummary)
}

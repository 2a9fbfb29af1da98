package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Orcamentos-api/internal/application/analytics"
	"github.com/jhoicas/Orcamentos-api/internal/application/auth"
	"github.com/jhoicas/Orcamentos-api/internal/application/quoting"
	"github.com/jhoicas/Orcamentos-api/internal/application/storefront"
	"github.com/jhoicas/Orcamentos-api/internal/application/usecase"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CategoryUC      *usecase.CategoryUseCase
	ProductUC       *usecase.ProductUseCase
	ProductImageUC  *usecase.ProductImageUseCase
	ClientUC        *usecase.ClientUseCase
	PaymentMethodUC *usecase.PaymentMethodUseCase
	UserUC          *usecase.UserUseCase
	SettingUC       *usecase.SettingUseCase
	QuoteUC         *quoting.UseCase
	StorefrontUC    *storefront.UseCase
	DashboardUC     *appanalytics.DashboardUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	requireAuth := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Enlace público de la cotización (sin sesión)
	publicQuote := NewPublicQuoteHandler(deps.QuoteUC)
	app.Get("/orcamento/:token", publicQuote.Show)
	app.Get("/orcamento/:token/pdf", publicQuote.PDF)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Storefront (público)
	shop := api.Group("/storefront")
	shopHandler := NewStorefrontHandler(deps.StorefrontUC)
	shop.Get("/products", shopHandler.Products)
	shop.Get("/products/:slug", shopHandler.Product)
	shop.Get("/categories", shopHandler.Categories)
	shop.Get("/settings", shopHandler.Settings)
	shop.Get("/cart", shopHandler.Cart)
	shop.Post("/cart/preview", shopHandler.PreviewCart)
	shop.Post("/quotes", shopHandler.SubmitQuote)

	// Dashboard
	api.Get("/dashboard", requireAuth, NewDashboardHandler(deps.DashboardUC).GetSummary)

	// Categories
	categories := api.Group("/categories", requireAuth)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Products, tramos e imágenes
	products := api.Group("/products", requireAuth)
	productHandler := NewProductHandler(deps.ProductUC)
	imageHandler := NewProductImageHandler(deps.ProductImageUC)
	products.Get("/export", productHandler.Export)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/price-tiers", productHandler.ListPriceTiers)
	products.Put("/:id/price-tiers", productHandler.ReplacePriceTiers)
	products.Get("/:id/images", imageHandler.List)
	products.Post("/:id/images", imageHandler.Upload)
	products.Put("/:id/images/:imageId/main", imageHandler.SetMain)
	products.Delete("/:id/images/:imageId", imageHandler.Delete)

	// Clients
	clients := api.Group("/clients", requireAuth)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Payment methods
	payments := api.Group("/payment-methods", requireAuth)
	paymentHandler := NewPaymentMethodHandler(deps.PaymentMethodUC)
	payments.Get("/", paymentHandler.List)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Put("/:id", paymentHandler.Update)
	payments.Delete("/:id", paymentHandler.Delete)

	// Quotes
	quotes := api.Group("/quotes", requireAuth)
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	quotes.Get("/form-data", quoteHandler.FormData)
	quotes.Post("/preview", quoteHandler.Preview)
	quotes.Get("/", quoteHandler.List)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Put("/:id", quoteHandler.Update)
	quotes.Delete("/:id", quoteHandler.Delete)
	quotes.Get("/:id/xml", quoteHandler.XML)

	// Users (solo admin)
	users := api.Group("/users", requireAuth, adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Settings: lectura para cualquier sesión, escritura solo admin
	settingHandler := NewSettingHandler(deps.SettingUC)
	api.Get("/settings", requireAuth, settingHandler.Get)
	api.Post("/settings", requireAuth, adminOnly, settingHandler.Save)
}

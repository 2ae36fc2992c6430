package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahajbooks/sahaj-api/internal/config"
	domainRepo "github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/handler"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/middleware"
	"github.com/sahajbooks/sahaj-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Company     *handler.CompanyHandler
	Product     *handler.ProductHandler
	Category    *handler.CategoryHandler
	Customer    *handler.CustomerHandler
	Vendor      *handler.VendorHandler
	Invoice     *handler.InvoiceHandler
	Quote       *handler.QuoteHandler
	Bill        *handler.BillHandler
	Journal     *handler.JournalHandler
	Account     *handler.AccountHandler
	Employee    *handler.EmployeeHandler
	Payroll     *handler.PayrollHandler
	PayrollRule *handler.PayrollRuleHandler
	Declaration *handler.TaxDeclarationHandler
	Reports     *handler.ReportsHandler
	Settings    *handler.SettingsHandler
	User        *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)

	// Company profile
	registerCompanyRoutes(protected, h)

	// Products
	registerProductRoutes(protected, h)

	// Categories
	registerCategoryRoutes(protected, h)

	// Units
	registerUnitRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Vendors
	registerVendorRoutes(protected, h)

	// Invoices
	registerInvoiceRoutes(protected, h, deps)

	// Quotes
	registerQuoteRoutes(protected, h)

	// Bills
	registerBillRoutes(protected, h, deps)

	// Journals
	registerJournalRoutes(protected, h)

	// Chart of accounts
	registerAccountRoutes(protected, h)

	// Employees and salary structures
	registerEmployeeRoutes(protected, h)

	// Payroll runs and rules
	registerPayrollRoutes(protected, h)

	// Tax declarations
	registerDeclarationRoutes(protected, h)

	// Reports
	registerReportRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Roles (Admin)
	registerRoleRoutes(protected, h)

	// Permissions (Admin)
	registerPermissionRoutes(protected, h)
}

func registerCompanyRoutes(protected *gin.RouterGroup, h *Handlers) {
	company := protected.Group("/company")
	company.Use(middleware.RequirePermission("manage-company"))
	{
		company.GET("", h.Company.Get)
		company.POST("", h.Company.Create)
		company.PUT("", h.Company.Update)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	products.Use(middleware.RequirePermission("manage-products"))
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	categories.Use(middleware.RequirePermission("manage-categories"))
	{
		categories.GET("", h.Category.ListCategories)
		categories.POST("", h.Category.CreateCategory)
		categories.PUT("/:id", h.Category.UpdateCategory)
		categories.DELETE("/:id", h.Category.DeleteCategory)
	}
}

func registerUnitRoutes(protected *gin.RouterGroup, h *Handlers) {
	units := protected.Group("/units")
	units.Use(middleware.RequirePermission("manage-units"))
	{
		units.GET("", h.Category.ListUnits)
		units.POST("", h.Category.CreateUnit)
		units.PUT("/:id", h.Category.UpdateUnit)
		units.DELETE("/:id", h.Category.DeleteUnit)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission("manage-customers"))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerVendorRoutes(protected *gin.RouterGroup, h *Handlers) {
	vendors := protected.Group("/vendors")
	vendors.Use(middleware.RequirePermission("manage-vendors"))
	{
		vendors.GET("", h.Vendor.List)
		vendors.POST("", h.Vendor.Create)
		vendors.GET("/:id", h.Vendor.Get)
		vendors.PUT("/:id", h.Vendor.Update)
		vendors.DELETE("/:id", h.Vendor.Delete)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := protected.Group("/invoices")
	invoices.Use(middleware.RequirePermission("manage-invoices"))
	{
		invoices.GET("", h.Invoice.List)
		// Invoice creation uses idempotency middleware to prevent duplicates
		invoices.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.POST("/:id/send", h.Invoice.Send)
		invoices.POST("/:id/payments", h.Invoice.RecordPayment)
		invoices.POST("/:id/cancel", h.Invoice.Cancel)
		invoices.DELETE("/:id", h.Invoice.Delete)
	}
}

func registerQuoteRoutes(protected *gin.RouterGroup, h *Handlers) {
	quotes := protected.Group("/quotes")
	quotes.Use(middleware.RequirePermission("manage-quotes"))
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", h.Quote.Create)
		quotes.GET("/:id", h.Quote.Get)
		quotes.PUT("/:id", h.Quote.Update)
		quotes.PATCH("/:id/status", h.Quote.UpdateStatus)
		quotes.DELETE("/:id", h.Quote.Delete)
	}
}

func registerBillRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	bills := protected.Group("/bills")
	bills.Use(middleware.RequirePermission("manage-bills"))
	{
		bills.GET("", h.Bill.List)
		// Bill creation uses idempotency middleware to prevent duplicates
		bills.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Bill.Create)
		bills.GET("/:id", h.Bill.Get)
		bills.PUT("/:id", h.Bill.Update)
		bills.PATCH("/:id/status", h.Bill.UpdateStatus)
		bills.DELETE("/:id", h.Bill.Delete)
	}
}

func registerJournalRoutes(protected *gin.RouterGroup, h *Handlers) {
	journals := protected.Group("/journals")
	journals.Use(middleware.RequirePermission("manage-journals"))
	{
		journals.GET("", h.Journal.List)
		journals.POST("", h.Journal.Create)
		journals.GET("/:id", h.Journal.Get)
		journals.PUT("/:id", h.Journal.Update)
		journals.POST("/:id/post", h.Journal.Post)
		journals.POST("/:id/reverse", h.Journal.Reverse)
		journals.DELETE("/:id", h.Journal.Delete)
	}
}

func registerAccountRoutes(protected *gin.RouterGroup, h *Handlers) {
	accounts := protected.Group("/accounts")
	accounts.Use(middleware.RequirePermission("manage-accounts"))
	{
		accounts.GET("", h.Account.List)
		accounts.POST("", h.Account.Create)
		accounts.GET("/:id", h.Account.Get)
		accounts.PUT("/:id", h.Account.Update)
		accounts.DELETE("/:id", h.Account.Delete)
	}
}

func registerEmployeeRoutes(protected *gin.RouterGroup, h *Handlers) {
	employees := protected.Group("/employees")
	employees.Use(middleware.RequirePermission("manage-employees"))
	{
		employees.GET("", h.Employee.List)
		employees.POST("", h.Employee.Create)
		employees.GET("/:id", h.Employee.Get)
		employees.PUT("/:id", h.Employee.Update)
		employees.DELETE("/:id", h.Employee.Delete)
		employees.POST("/:id/salary-structures", h.Employee.CreateSalaryStructure)
		employees.GET("/:id/salary-structures", h.Employee.ListSalaryStructures)
		employees.GET("/:id/salary-structures/effective", h.Employee.GetEffectiveSalaryStructure)
		employees.GET("/:id/payslips", h.Payroll.ListEmployeePayslips)
		employees.GET("/:id/declarations", h.Declaration.GetForEmployee)
	}
}

func registerPayrollRoutes(protected *gin.RouterGroup, h *Handlers) {
	payroll := protected.Group("/payroll")
	payroll.Use(middleware.RequirePermission("manage-payroll"))
	{
		payroll.GET("/runs", h.Payroll.ListRuns)
		payroll.POST("/runs", h.Payroll.CreateRun)
		payroll.GET("/runs/:id", h.Payroll.GetRun)
		payroll.POST("/runs/:id/process", h.Payroll.ProcessRun)
		payroll.POST("/runs/:id/pay", h.Payroll.MarkRunPaid)
		payroll.DELETE("/runs/:id", h.Payroll.DeleteRun)
		payroll.GET("/payslips/:id", h.Payroll.GetPayslip)

		payroll.GET("/rules", h.PayrollRule.List)
		payroll.POST("/rules", h.PayrollRule.Create)
		payroll.POST("/rules/validate-formula", h.PayrollRule.ValidateFormula)
		payroll.POST("/rules/preview", h.PayrollRule.Preview)
		payroll.GET("/rules/:id", h.PayrollRule.Get)
		payroll.PUT("/rules/:id", h.PayrollRule.Update)
		payroll.DELETE("/rules/:id", h.PayrollRule.Delete)
	}
}

func registerDeclarationRoutes(protected *gin.RouterGroup, h *Handlers) {
	declarations := protected.Group("/declarations")
	declarations.Use(middleware.RequirePermission("manage-payroll"))
	{
		declarations.GET("", h.Declaration.List)
		declarations.POST("", h.Declaration.Submit)
		declarations.GET("/:id", h.Declaration.Get)
		declarations.DELETE("/:id", h.Declaration.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/dashboard", middleware.RequirePermission("view-dashboard"), h.Reports.Dashboard)

	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission("view-reports"))
	{
		reports.GET("/gst-summary", h.Reports.GSTSummary)
		reports.GET("/tds-summary", h.Reports.TDSSummary)
		reports.GET("/invoice-register", h.Reports.ExportInvoiceRegister)
		reports.GET("/payroll-register", h.Reports.ExportPayrollRegister)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerRoleRoutes(protected *gin.RouterGroup, h *Handlers) {
	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}
}

func registerPermissionRoutes(protected *gin.RouterGroup, h *Handlers) {
	permissions := protected.Group("/permissions")
	permissions.Use(middleware.RequirePermission("manage-users"))
	{
		permissions.GET("", h.User.ListPermissions)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/config"
	"github.com/sahajbooks/sahaj-api/internal/infrastructure/database"
	"github.com/sahajbooks/sahaj-api/internal/infrastructure/repository"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/handler"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/routes"
	"github.com/sahajbooks/sahaj-api/pkg/email"
	"github.com/sahajbooks/sahaj-api/pkg/logger"
	"github.com/sahajbooks/sahaj-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.Must(cfg.App.Env)
	defer log.Sync()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Seed roles, permissions and the chart of accounts
	if err := database.SeedDefaultData(db); err != nil {
		log.Warn("Failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceItemRepo := repository.NewInvoiceItemRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	quoteItemRepo := repository.NewQuoteItemRepository(db)
	billRepo := repository.NewBillRepository(db)
	billItemRepo := repository.NewBillItemRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	salaryRepo := repository.NewSalaryStructureRepository(db)
	payrollRepo := repository.NewPayrollRepository(db)
	payslipRepo := repository.NewPayslipRepository(db)
	ruleRepo := repository.NewCalculationRuleRepository(db)
	declarationRepo := repository.NewTaxDeclarationRepository(db)
	reportsRepo := repository.NewReportsRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, passwordResetRepo, jwtManager, emailService)
	companyService := service.NewCompanyService(companyRepo)
	customerService := service.NewCustomerService(customerRepo)
	vendorService := service.NewVendorService(vendorRepo)
	productService := service.NewProductService(productRepo, categoryRepo, unitRepo)
	categoryService := service.NewCategoryService(categoryRepo, unitRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, invoiceItemRepo, customerRepo, productRepo, companyRepo, emailService)
	quoteService := service.NewQuoteService(quoteRepo, quoteItemRepo, customerRepo, productRepo)
	billService := service.NewBillService(billRepo, billItemRepo, vendorRepo)
	journalService := service.NewJournalService(journalRepo, accountRepo)
	accountService := service.NewAccountService(accountRepo)
	employeeService := service.NewEmployeeService(employeeRepo, salaryRepo)
	payrollService := service.NewPayrollService(payrollRepo, payslipRepo, employeeRepo, salaryRepo, companyRepo)
	payrollRuleService := service.NewPayrollRuleService(ruleRepo)
	declarationService := service.NewTaxDeclarationService(declarationRepo, employeeRepo)
	reportsService := service.NewReportsService(reportsRepo, invoiceRepo, billRepo, payrollRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Company:     handler.NewCompanyHandler(companyService),
		Product:     handler.NewProductHandler(productService),
		Category:    handler.NewCategoryHandler(categoryService),
		Customer:    handler.NewCustomerHandler(customerService),
		Vendor:      handler.NewVendorHandler(vendorService),
		Invoice:     handler.NewInvoiceHandler(invoiceService),
		Quote:       handler.NewQuoteHandler(quoteService),
		Bill:        handler.NewBillHandler(billService),
		Journal:     handler.NewJournalHandler(journalService),
		Account:     handler.NewAccountHandler(accountService),
		Employee:    handler.NewEmployeeHandler(employeeService),
		Payroll:     handler.NewPayrollHandler(payrollService),
		PayrollRule: handler.NewPayrollRuleHandler(payrollRuleService),
		Declaration: handler.NewTaxDeclarationHandler(declarationService),
		Reports:     handler.NewReportsHandler(reportsService),
		Settings:    handler.NewSettingsHandler(settingsService),
		User:        handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          log,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info("Starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

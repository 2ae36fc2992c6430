package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/config"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User-related entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.PasswordResetToken{},

		// Master data
		&entity.Company{},
		&entity.Category{},
		&entity.Unit{},
		&entity.Product{},
		&entity.Customer{},
		&entity.Vendor{},

		// Sales and purchase documents
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Quote{},
		&entity.QuoteItem{},
		&entity.Bill{},
		&entity.BillItem{},

		// Ledger
		&entity.Account{},
		&entity.JournalEntry{},
		&entity.JournalLine{},

		// Payroll
		&entity.Employee{},
		&entity.SalaryStructure{},
		&entity.PayrollRun{},
		&entity.Payslip{},
		&entity.CalculationRule{},
		&entity.TaxDeclaration{},
		&entity.DeclarationItem{},

		// System entities
		&entity.IdempotencyKey{},
		&entity.UserSettings{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (roles, permissions,
// admin user and the base chart of accounts)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create default permissions
	permissions := []entity.Permission{
		{Name: "view-dashboard", GuardName: "web"},
		{Name: "manage-products", GuardName: "web"},
		{Name: "manage-invoices", GuardName: "web"},
		{Name: "manage-quotes", GuardName: "web"},
		{Name: "manage-bills", GuardName: "web"},
		{Name: "manage-customers", GuardName: "web"},
		{Name: "manage-vendors", GuardName: "web"},
		{Name: "manage-categories", GuardName: "web"},
		{Name: "manage-units", GuardName: "web"},
		{Name: "manage-journals", GuardName: "web"},
		{Name: "manage-accounts", GuardName: "web"},
		{Name: "manage-payroll", GuardName: "web"},
		{Name: "manage-employees", GuardName: "web"},
		{Name: "manage-company", GuardName: "web"},
		{Name: "manage-users", GuardName: "web"},
		{Name: "view-reports", GuardName: "web"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	// Reload permissions with IDs
	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	// Create super-admin role with all permissions
	var superAdminRole entity.Role
	if err := db.Where("name = ?", "super-admin").First(&superAdminRole).Error; err != nil {
		superAdminRole = entity.Role{
			Name:        "super-admin",
			GuardName:   "web",
			Permissions: allPermissions,
		}
		if err := db.Create(&superAdminRole).Error; err != nil {
			log.Printf("Warning: failed to create super-admin role: %v", err)
		}
	}

	// Create admin role with all permissions
	var adminRole entity.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		adminRole = entity.Role{
			Name:        "admin",
			GuardName:   "web",
			Permissions: allPermissions,
		}
		if err := db.Create(&adminRole).Error; err != nil {
			log.Printf("Warning: failed to create admin role: %v", err)
		}
	}

	// Create accountant role scoped to bookkeeping
	accountantPermissions := []string{
		"view-dashboard",
		"manage-invoices",
		"manage-quotes",
		"manage-bills",
		"manage-journals",
		"manage-accounts",
		"manage-customers",
		"manage-vendors",
		"view-reports",
	}
	accountantPerms := pickPermissions(allPermissions, accountantPermissions)

	var accountantRole entity.Role
	if err := db.Where("name = ?", "accountant").First(&accountantRole).Error; err != nil {
		accountantRole = entity.Role{
			Name:        "accountant",
			GuardName:   "web",
			Permissions: accountantPerms,
		}
		if err := db.Create(&accountantRole).Error; err != nil {
			log.Printf("Warning: failed to create accountant role: %v", err)
		}
	}

	// Create payroll-officer role scoped to payroll
	payrollPermissions := []string{
		"view-dashboard",
		"manage-payroll",
		"manage-employees",
		"view-reports",
	}
	payrollPerms := pickPermissions(allPermissions, payrollPermissions)

	var payrollRole entity.Role
	if err := db.Where("name = ?", "payroll-officer").First(&payrollRole).Error; err != nil {
		payrollRole = entity.Role{
			Name:        "payroll-officer",
			GuardName:   "web",
			Permissions: payrollPerms,
		}
		if err := db.Create(&payrollRole).Error; err != nil {
			log.Printf("Warning: failed to create payroll-officer role: %v", err)
		}
	}

	// Create default user role with basic permissions (for new registrants)
	userPermissions := []string{
		"view-dashboard",
		"manage-customers",
		"manage-vendors",
		"manage-categories",
		"manage-units",
	}
	userPerms := pickPermissions(allPermissions, userPermissions)

	var userRole entity.Role
	if err := db.Where("name = ?", "user").First(&userRole).Error; err != nil {
		userRole = entity.Role{
			Name:        "user",
			GuardName:   "web",
			Permissions: userPerms,
		}
		if err := db.Create(&userRole).Error; err != nil {
			log.Printf("Warning: failed to create user role: %v", err)
		}
	}

	if err := seedChartOfAccounts(db); err != nil {
		log.Printf("Warning: failed to seed chart of accounts: %v", err)
	}

	// Create super admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			// Hash the password
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				// Get super-admin role
				var saRole entity.Role
				if err := db.Where("name = ?", "super-admin").First(&saRole).Error; err == nil {
					if adminName == "" {
						adminName = "Super Admin"
					}
					// Split admin name into first and last name
					firstName := adminName
					lastName := ""
					for i, c := range adminName {
						if c == ' ' {
							firstName = adminName[:i]
							lastName = adminName[i+1:]
							break
						}
					}
					adminUser := entity.User{
						ID:        uuid.New(),
						FirstName: firstName,
						LastName:  lastName,
						Email:     adminEmail,
						Password:  string(hashedPassword),
						Roles:     []entity.Role{saRole},
					}
					if err := db.Create(&adminUser).Error; err != nil {
						log.Printf("Warning: failed to create super admin user: %v", err)
					} else {
						log.Printf("Super admin user created: %s", adminEmail)
					}
				}
			}
		} else {
			log.Printf("Super admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}

func pickPermissions(all []entity.Permission, names []string) []entity.Permission {
	var picked []entity.Permission
	for _, name := range names {
		for _, p := range all {
			if p.Name == name {
				picked = append(picked, p)
				break
			}
		}
	}
	return picked
}

// seedChartOfAccounts creates the base ledger accounts documents post
// against. Existing codes are left untouched.
func seedChartOfAccounts(db *gorm.DB) error {
	accounts := []entity.Account{
		{Code: "1000", Name: "Cash", Type: enum.AccountTypeAsset, IsSystem: true},
		{Code: "1100", Name: "Bank", Type: enum.AccountTypeAsset, IsSystem: true},
		{Code: "1200", Name: "Accounts Receivable", Type: enum.AccountTypeAsset, IsSystem: true},
		{Code: "1300", Name: "TDS Receivable", Type: enum.AccountTypeAsset, IsSystem: true},
		{Code: "2000", Name: "Accounts Payable", Type: enum.AccountTypeLiability, IsSystem: true},
		{Code: "2100", Name: "GST Payable", Type: enum.AccountTypeLiability, IsSystem: true},
		{Code: "2200", Name: "TDS Payable", Type: enum.AccountTypeLiability, IsSystem: true},
		{Code: "2300", Name: "PF Payable", Type: enum.AccountTypeLiability, IsSystem: true},
		{Code: "2310", Name: "ESI Payable", Type: enum.AccountTypeLiability, IsSystem: true},
		{Code: "2320", Name: "Professional Tax Payable", Type: enum.AccountTypeLiability, IsSystem: true},
		{Code: "2400", Name: "Salaries Payable", Type: enum.AccountTypeLiability, IsSystem: true},
		{Code: "3000", Name: "Owner's Equity", Type: enum.AccountTypeEquity, IsSystem: true},
		{Code: "4000", Name: "Sales Revenue", Type: enum.AccountTypeIncome, IsSystem: true},
		{Code: "4100", Name: "Other Income", Type: enum.AccountTypeIncome, IsSystem: true},
		{Code: "5000", Name: "Purchases", Type: enum.AccountTypeExpense, IsSystem: true},
		{Code: "5100", Name: "Salaries Expense", Type: enum.AccountTypeExpense, IsSystem: true},
		{Code: "5200", Name: "Employer PF Expense", Type: enum.AccountTypeExpense, IsSystem: true},
		{Code: "5300", Name: "Rent Expense", Type: enum.AccountTypeExpense, IsSystem: true},
		{Code: "5400", Name: "Professional Fees", Type: enum.AccountTypeExpense, IsSystem: true},
	}

	for i := range accounts {
		var existing entity.Account
		if err := db.Where("code = ?", accounts[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&accounts[i]).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

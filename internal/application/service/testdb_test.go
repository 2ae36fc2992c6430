package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
)

// newTestDB opens an in-memory SQLite database and migrates the tables the
// service tests touch. A single connection keeps every query on the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.Company{},
		&entity.Account{},
		&entity.JournalEntry{},
		&entity.JournalLine{},
		&entity.Customer{},
		&entity.Vendor{},
		&entity.Category{},
		&entity.Unit{},
		&entity.Product{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Bill{},
		&entity.BillItem{},
		&entity.Employee{},
		&entity.SalaryStructure{},
		&entity.PayrollRun{},
		&entity.Payslip{},
		&entity.TaxDeclaration{},
		&entity.DeclarationItem{},
	))

	return db
}

func strPtr(s string) *string {
	return &s
}

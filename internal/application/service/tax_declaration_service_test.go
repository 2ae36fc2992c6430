package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/infrastructure/repository"
)

type declarationFixture struct {
	svc    *service.TaxDeclarationService
	db     *gorm.DB
	userID uuid.UUID
}

func newDeclarationFixture(t *testing.T) *declarationFixture {
	t.Helper()

	db := newTestDB(t)
	svc := service.NewTaxDeclarationService(
		repository.NewTaxDeclarationRepository(db),
		repository.NewEmployeeRepository(db),
	)
	return &declarationFixture{svc: svc, db: db, userID: uuid.New()}
}

func (f *declarationFixture) employee(t *testing.T, pan *string, dateOfBirth *time.Time) *entity.Employee {
	t.Helper()

	employee := entity.Employee{
		UserID:        f.userID,
		EmployeeCode:  "EMP-" + uuid.New().String()[:8],
		FirstName:     "Asha",
		LastName:      "Nair",
		PAN:           pan,
		DateOfBirth:   dateOfBirth,
		DateOfJoining: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.db.Create(&employee).Error)
	return &employee
}

func TestSubmitDeclarationPools80CFamily(t *testing.T) {
	f := newDeclarationFixture(t)
	employee := f.employee(t, strPtr("ABCPN1234F"), nil)

	declaration, err := f.svc.SubmitDeclaration(context.Background(), &service.SubmitDeclarationInput{
		EmployeeID: employee.ID,
		FiscalYear: "2025-2026",
		Items: []service.DeclarationItemInput{
			{Section: "80C", Label: "PPF", Declared: 100000},
			{Section: "80CCC", Label: "Pension fund", Declared: 80000},
			{Section: "80D", Label: "Health insurance", Declared: 30000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 210000.0, declaration.TotalClaimed)
	// 80C family caps at 150000, 80D at 25000
	assert.Equal(t, 175000.0, declaration.TotalAllowed)

	require.Len(t, declaration.Items, 3)
	allowedBySection := map[string]float64{}
	for _, item := range declaration.Items {
		allowedBySection[item.Section] = item.Allowed
	}
	// Items inside the capped pool share the allowance pro rata
	assert.InDelta(t, 83333.33, allowedBySection["80C"], 0.01)
	assert.InDelta(t, 66666.67, allowedBySection["80CCC"], 0.01)
	assert.Equal(t, 25000.0, allowedBySection["80D"])
}

func TestSubmitDeclarationUnderLimitPassesThrough(t *testing.T) {
	f := newDeclarationFixture(t)
	employee := f.employee(t, strPtr("ABCPN1234F"), nil)

	declaration, err := f.svc.SubmitDeclaration(context.Background(), &service.SubmitDeclarationInput{
		EmployeeID: employee.ID,
		FiscalYear: "2025-2026",
		Items: []service.DeclarationItemInput{
			{Section: "80C", Label: "ELSS", Declared: 50000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 50000.0, declaration.TotalClaimed)
	assert.Equal(t, 50000.0, declaration.TotalAllowed)
	require.Len(t, declaration.Items, 1)
	assert.Equal(t, 50000.0, declaration.Items[0].Allowed)
}

func TestSubmitDeclarationSeniorCitizen80D(t *testing.T) {
	f := newDeclarationFixture(t)
	dob := time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)
	employee := f.employee(t, strPtr("ABCPN1234F"), &dob)

	declaration, err := f.svc.SubmitDeclaration(context.Background(), &service.SubmitDeclarationInput{
		EmployeeID: employee.ID,
		FiscalYear: "2025-2026",
		Items: []service.DeclarationItemInput{
			{Section: "80D", Label: "Health insurance", Declared: 45000},
		},
	})
	require.NoError(t, err)

	// The 80D ceiling doubles for senior citizens
	assert.Equal(t, 45000.0, declaration.TotalAllowed)
}

func TestSubmitDeclarationRequiresPAN(t *testing.T) {
	f := newDeclarationFixture(t)
	employee := f.employee(t, nil, nil)

	_, err := f.svc.SubmitDeclaration(context.Background(), &service.SubmitDeclarationInput{
		EmployeeID: employee.ID,
		FiscalYear: "2025-2026",
		Items: []service.DeclarationItemInput{
			{Section: "80C", Declared: 10000},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAN")
}

func TestSubmitDeclarationValidatesFiscalYear(t *testing.T) {
	f := newDeclarationFixture(t)
	employee := f.employee(t, strPtr("ABCPN1234F"), nil)

	for _, fiscalYear := range []string{"2025-26", "2025", "2025-2027", "garbage"} {
		_, err := f.svc.SubmitDeclaration(context.Background(), &service.SubmitDeclarationInput{
			EmployeeID: employee.ID,
			FiscalYear: fiscalYear,
			Items: []service.DeclarationItemInput{
				{Section: "80C", Declared: 10000},
			},
		})
		assert.Error(t, err, "fiscal year %q should be rejected", fiscalYear)
	}
}

func TestSubmitDeclarationRejectsNegativeAmounts(t *testing.T) {
	f := newDeclarationFixture(t)
	employee := f.employee(t, strPtr("ABCPN1234F"), nil)

	_, err := f.svc.SubmitDeclaration(context.Background(), &service.SubmitDeclarationInput{
		EmployeeID: employee.ID,
		FiscalYear: "2025-2026",
		Items: []service.DeclarationItemInput{
			{Section: "80C", Declared: -1},
		},
	})
	require.Error(t, err)
}

func TestResubmitDeclarationReplacesItems(t *testing.T) {
	f := newDeclarationFixture(t)
	employee := f.employee(t, strPtr("ABCPN1234F"), nil)

	first, err := f.svc.SubmitDeclaration(context.Background(), &service.SubmitDeclarationInput{
		EmployeeID: employee.ID,
		FiscalYear: "2025-2026",
		Items: []service.DeclarationItemInput{
			{Section: "80C", Declared: 100000},
			{Section: "80D", Declared: 20000},
		},
	})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)

	second, err := f.svc.SubmitDeclaration(context.Background(), &service.SubmitDeclarationInput{
		EmployeeID: employee.ID,
		FiscalYear: "2025-2026",
		Items: []service.DeclarationItemInput{
			{Section: "80C", Declared: 150000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Items, 1)
	assert.Equal(t, 150000.0, second.TotalAllowed)
}

func TestGetEmployeeDeclarationByYear(t *testing.T) {
	f := newDeclarationFixture(t)
	employee := f.employee(t, strPtr("ABCPN1234F"), nil)

	_, err := f.svc.SubmitDeclaration(context.Background(), &service.SubmitDeclarationInput{
		EmployeeID: employee.ID,
		FiscalYear: "2025-2026",
		Items: []service.DeclarationItemInput{
			{Section: "80C", Declared: 60000},
		},
	})
	require.NoError(t, err)

	declaration, err := f.svc.GetEmployeeDeclaration(context.Background(), employee.ID, "2025-2026")
	require.NoError(t, err)
	assert.Equal(t, "2025-2026", declaration.FiscalYear)
	assert.Len(t, declaration.Items, 1)

	_, err = f.svc.GetEmployeeDeclaration(context.Background(), employee.ID, "2024-2025")
	require.Error(t, err)
}

func TestDeleteDeclaration(t *testing.T) {
	f := newDeclarationFixture(t)
	employee := f.employee(t, strPtr("ABCPN1234F"), nil)

	declaration, err := f.svc.SubmitDeclaration(context.Background(), &service.SubmitDeclarationInput{
		EmployeeID: employee.ID,
		FiscalYear: "2025-2026",
		Items: []service.DeclarationItemInput{
			{Section: "80C", Declared: 60000},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteDeclaration(context.Background(), declaration.ID))
	assert.Error(t, f.svc.DeleteDeclaration(context.Background(), declaration.ID))
}

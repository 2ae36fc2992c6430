package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/infrastructure/repository"
)

func newEmployeeService(t *testing.T) *service.EmployeeService {
	t.Helper()

	db := newTestDB(t)
	return service.NewEmployeeService(
		repository.NewEmployeeRepository(db),
		repository.NewSalaryStructureRepository(db),
	)
}

func createEmployee(t *testing.T, svc *service.EmployeeService, code string) uuid.UUID {
	t.Helper()

	employee, err := svc.CreateEmployee(context.Background(), &service.CreateEmployeeInput{
		UserID:        uuid.New(),
		EmployeeCode:  code,
		FirstName:     "Asha",
		LastName:      "Nair",
		PAN:           strPtr("ABCPN1234F"),
		DateOfJoining: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return employee.ID
}

func TestCreateEmployeeRejectsDuplicateCode(t *testing.T) {
	svc := newEmployeeService(t)
	createEmployee(t, svc, "EMP-001")

	_, err := svc.CreateEmployee(context.Background(), &service.CreateEmployeeInput{
		UserID:        uuid.New(),
		EmployeeCode:  "EMP-001",
		FirstName:     "Ravi",
		LastName:      "Iyer",
		DateOfJoining: time.Now(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateEmployeeValidatesIdentifiers(t *testing.T) {
	svc := newEmployeeService(t)

	_, err := svc.CreateEmployee(context.Background(), &service.CreateEmployeeInput{
		UserID:        uuid.New(),
		EmployeeCode:  "EMP-002",
		FirstName:     "Ravi",
		LastName:      "Iyer",
		PAN:           strPtr("not-a-pan"),
		DateOfJoining: time.Now(),
	})
	require.Error(t, err)

	_, err = svc.CreateEmployee(context.Background(), &service.CreateEmployeeInput{
		UserID:        uuid.New(),
		EmployeeCode:  "EMP-003",
		FirstName:     "Ravi",
		LastName:      "Iyer",
		UAN:           strPtr("12345"),
		DateOfJoining: time.Now(),
	})
	require.Error(t, err)

	_, err = svc.CreateEmployee(context.Background(), &service.CreateEmployeeInput{
		UserID:        uuid.New(),
		EmployeeCode:  "EMP-004",
		FirstName:     "Ravi",
		LastName:      "Iyer",
		IFSC:          strPtr("BADIFSC"),
		DateOfJoining: time.Now(),
	})
	require.Error(t, err)
}

func TestCreateSalaryStructureDecomposesCTC(t *testing.T) {
	svc := newEmployeeService(t)
	employeeID := createEmployee(t, svc, "EMP-005")

	structure, err := svc.CreateSalaryStructure(context.Background(), &service.CreateSalaryStructureInput{
		EmployeeID:    employeeID,
		AnnualCTC:     600000,
		EffectiveFrom: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 600000.0, structure.AnnualCTC)
	assert.Equal(t, 50000.0, structure.MonthlyCTC)
	assert.Equal(t, 22500.0, structure.Basic)
	assert.Equal(t, 11250.0, structure.HRA)
	assert.Equal(t, 1800.0, structure.PFEmployer)
	assert.Equal(t, 50000.0, structure.MonthlyGross())
}

func TestCreateSalaryStructureRejectsNonPositiveCTC(t *testing.T) {
	svc := newEmployeeService(t)
	employeeID := createEmployee(t, svc, "EMP-006")

	_, err := svc.CreateSalaryStructure(context.Background(), &service.CreateSalaryStructureInput{
		EmployeeID:    employeeID,
		AnnualCTC:     0,
		EffectiveFrom: time.Now(),
	})
	require.Error(t, err)
}

func TestGetEffectiveSalaryStructurePicksLatest(t *testing.T) {
	svc := newEmployeeService(t)
	employeeID := createEmployee(t, svc, "EMP-007")

	_, err := svc.CreateSalaryStructure(context.Background(), &service.CreateSalaryStructureInput{
		EmployeeID:    employeeID,
		AnnualCTC:     600000,
		EffectiveFrom: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	revised, err := svc.CreateSalaryStructure(context.Background(), &service.CreateSalaryStructureInput{
		EmployeeID:    employeeID,
		AnnualCTC:     720000,
		EffectiveFrom: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Before the revision kicks in, the old structure is still in force
	effective, err := svc.GetEffectiveSalaryStructure(context.Background(), employeeID, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 600000.0, effective.AnnualCTC)

	effective, err = svc.GetEffectiveSalaryStructure(context.Background(), employeeID, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, revised.ID, effective.ID)

	// Nothing was in force before the first structure
	_, err = svc.GetEffectiveSalaryStructure(context.Background(), employeeID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)

	history, err := svc.ListSalaryStructures(context.Background(), employeeID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

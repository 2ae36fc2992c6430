package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/infrastructure/repository"
)

func newRuleService(t *testing.T) *service.PayrollRuleService {
	t.Helper()

	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&entity.CalculationRule{}))
	return service.NewPayrollRuleService(repository.NewCalculationRuleRepository(db))
}

func TestCreateRulePercentage(t *testing.T) {
	svc := newRuleService(t)

	rule, err := svc.CreateRule(context.Background(), &service.CreateRuleInput{
		UserID:      uuid.New(),
		Name:        "Leave travel allowance",
		Code:        "LTA",
		IsDeduction: false,
		Config: entity.RuleConfig{
			Kind:       entity.RuleKindPercentage,
			Percentage: &entity.PercentageConfig{Base: "basic", Rate: 8, Cap: 3000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "LTA", rule.Code)
	assert.True(t, rule.IsActive)
}

func TestCreateRuleRejectsDuplicateCode(t *testing.T) {
	svc := newRuleService(t)

	input := &service.CreateRuleInput{
		UserID: uuid.New(),
		Name:   "Leave travel allowance",
		Code:   "LTA",
		Config: entity.RuleConfig{
			Kind:       entity.RuleKindPercentage,
			Percentage: &entity.PercentageConfig{Base: "basic", Rate: 8},
		},
	}
	_, err := svc.CreateRule(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.CreateRule(context.Background(), input)
	require.Error(t, err)
}

func TestCreateRuleRejectsBadConfig(t *testing.T) {
	svc := newRuleService(t)

	// Percentage config with an unknown base
	_, err := svc.CreateRule(context.Background(), &service.CreateRuleInput{
		UserID: uuid.New(),
		Name:   "Broken",
		Code:   "BRK1",
		Config: entity.RuleConfig{
			Kind:       entity.RuleKindPercentage,
			Percentage: &entity.PercentageConfig{Base: "net", Rate: 8},
		},
	})
	require.Error(t, err)

	// Formula that does not parse
	_, err = svc.CreateRule(context.Background(), &service.CreateRuleInput{
		UserID: uuid.New(),
		Name:   "Broken",
		Code:   "BRK2",
		Config: entity.RuleConfig{
			Kind:    entity.RuleKindFormula,
			Formula: "basic * ",
		},
	})
	require.Error(t, err)
}

func TestValidateFormula(t *testing.T) {
	svc := newRuleService(t)

	valid := svc.ValidateFormula("basic * 0.1")
	assert.True(t, valid.IsValid)
	assert.Equal(t, 3000.0, valid.SampleResult)

	invalid := svc.ValidateFormula("basic +* gross")
	assert.False(t, invalid.IsValid)
	assert.NotEmpty(t, invalid.ErrorMessage)

	// Parses, but yields a boolean instead of a number
	nonNumeric := svc.ValidateFormula("basic > gross")
	assert.False(t, nonNumeric.IsValid)
}

func TestPreviewCalculationPercentageCap(t *testing.T) {
	svc := newRuleService(t)

	config := &entity.RuleConfig{
		Kind:       entity.RuleKindPercentage,
		Percentage: &entity.PercentageConfig{Base: "basic", Rate: 10, Cap: 1500},
	}

	preview := svc.PreviewCalculation(config, 12000, 0)
	require.True(t, preview.Success)
	assert.Equal(t, 1200.0, preview.Result)

	capped := svc.PreviewCalculation(config, 40000, 0)
	require.True(t, capped.Success)
	assert.Equal(t, 1500.0, capped.Result)
}

func TestPreviewCalculationSlabs(t *testing.T) {
	svc := newRuleService(t)

	// Karnataka-style professional tax slabs on gross
	config := &entity.RuleConfig{
		Kind: entity.RuleKindSlab,
		Slabs: []entity.SlabConfig{
			{UpTo: 15000, Amount: 0},
			{UpTo: 25000, Amount: 150},
			{UpTo: 0, Amount: 200},
		},
	}

	low := svc.PreviewCalculation(config, 0, 12000)
	require.True(t, low.Success)
	assert.Equal(t, 0.0, low.Result)

	mid := svc.PreviewCalculation(config, 0, 20000)
	require.True(t, mid.Success)
	assert.Equal(t, 150.0, mid.Result)

	high := svc.PreviewCalculation(config, 0, 60000)
	require.True(t, high.Success)
	assert.Equal(t, 200.0, high.Result)
}

func TestPreviewCalculationFormula(t *testing.T) {
	svc := newRuleService(t)

	config := &entity.RuleConfig{
		Kind:    entity.RuleKindFormula,
		Formula: "(gross - basic) * 0.05",
	}

	preview := svc.PreviewCalculation(config, 20000, 45000)
	require.True(t, preview.Success)
	assert.Equal(t, 1250.0, preview.Result)
}

func TestEvaluateRuleRejectsUnknownKind(t *testing.T) {
	_, err := service.EvaluateRule(&entity.RuleConfig{Kind: "mystery"}, 1000, 2000)
	require.Error(t, err)
}

func TestUpdateRuleForbiddenForOtherUser(t *testing.T) {
	svc := newRuleService(t)
	owner := uuid.New()

	rule, err := svc.CreateRule(context.Background(), &service.CreateRuleInput{
		UserID: owner,
		Name:   "Leave travel allowance",
		Code:   "LTA",
		Config: entity.RuleConfig{
			Kind:       entity.RuleKindPercentage,
			Percentage: &entity.PercentageConfig{Base: "basic", Rate: 8},
		},
	})
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.UpdateRule(context.Background(), &service.UpdateRuleInput{
		UserID: uuid.New(),
		ID:     rule.ID,
		Name:   &name,
	})
	require.Error(t, err)

	updated, err := svc.UpdateRule(context.Background(), &service.UpdateRuleInput{
		UserID: owner,
		ID:     rule.ID,
		Name:   &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

package service

import (
	"context"
	"fmt"

	"github.com/Knetic/govaluate"
	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
	"github.com/sahajbooks/sahaj-api/pkg/finance"
)

// Sample figures used when validating and previewing formulas. Formulas
// reference payslip variables by name.
var sampleRuleParameters = map[string]interface{}{
	"basic": 30000.0,
	"gross": 52000.0,
}

// PayrollRuleService handles configurable payroll calculation rules and
// their formula evaluation.
type PayrollRuleService struct {
	ruleRepo repository.CalculationRuleRepository
}

// NewPayrollRuleService creates a new payroll rule service
func NewPayrollRuleService(ruleRepo repository.CalculationRuleRepository) *PayrollRuleService {
	return &PayrollRuleService{ruleRepo: ruleRepo}
}

// CreateRuleInput represents the create rule input
type CreateRuleInput struct {
	UserID      uuid.UUID
	Name        string
	Code        string
	IsDeduction bool
	Config      entity.RuleConfig
}

// CreateRule creates a new calculation rule
func (s *PayrollRuleService) CreateRule(ctx context.Context, input *CreateRuleInput) (*entity.CalculationRule, error) {
	if err := input.Config.Validate(); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	if input.Config.Kind == entity.RuleKindFormula {
		if _, err := evaluateFormula(input.Config.Formula, sampleRuleParameters); err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}
	}

	existing, err := s.ruleRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Rule code already exists")
	}

	rule := &entity.CalculationRule{
		UserID:      input.UserID,
		Name:        input.Name,
		Code:        input.Code,
		IsDeduction: input.IsDeduction,
		IsActive:    true,
		Config:      input.Config,
	}

	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

// GetRule retrieves a rule by ID
func (s *PayrollRuleService) GetRule(ctx context.Context, id uuid.UUID) (*entity.CalculationRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, apperror.NewNotFoundError("Calculation rule")
	}
	return rule, nil
}

// ListRules lists rules
func (s *PayrollRuleService) ListRules(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]entity.CalculationRule, error) {
	return s.ruleRepo.List(ctx, userID, activeOnly)
}

// UpdateRuleInput represents the update rule input
type UpdateRuleInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	IsSuperAdmin bool
	Name         *string
	IsDeduction  *bool
	IsActive     *bool
	Config       *entity.RuleConfig
}

// UpdateRule updates an existing rule
func (s *PayrollRuleService) UpdateRule(ctx context.Context, input *UpdateRuleInput) (*entity.CalculationRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, apperror.NewNotFoundError("Calculation rule")
	}

	// Check permission
	if !input.IsSuperAdmin && rule.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if input.Config != nil {
		if err := input.Config.Validate(); err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		if input.Config.Kind == entity.RuleKindFormula {
			if _, err := evaluateFormula(input.Config.Formula, sampleRuleParameters); err != nil {
				return nil, apperror.NewBadRequestError(err.Error())
			}
		}
		rule.Config = *input.Config
	}
	if input.Name != nil {
		rule.Name = *input.Name
	}
	if input.IsDeduction != nil {
		rule.IsDeduction = *input.IsDeduction
	}
	if input.IsActive != nil {
		rule.IsActive = *input.IsActive
	}

	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

// DeleteRule deletes a rule
func (s *PayrollRuleService) DeleteRule(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rule == nil {
		return apperror.NewNotFoundError("Calculation rule")
	}

	// Check permission
	if !isSuperAdmin && rule.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.ruleRepo.Delete(ctx, id)
}

// FormulaValidation is the outcome of checking a formula expression
type FormulaValidation struct {
	IsValid      bool    `json:"is_valid"`
	SampleResult float64 `json:"sample_result"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

// ValidateFormula parses a formula and evaluates it against sample payroll
// figures. A formula that parses but yields a non-numeric result is invalid.
func (s *PayrollRuleService) ValidateFormula(expression string) *FormulaValidation {
	result, err := evaluateFormula(expression, sampleRuleParameters)
	if err != nil {
		return &FormulaValidation{ErrorMessage: err.Error()}
	}
	return &FormulaValidation{IsValid: true, SampleResult: result}
}

// RulePreview is the outcome of trial-running a rule config
type RulePreview struct {
	Success      bool    `json:"success"`
	Result       float64 `json:"result"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

// PreviewCalculation evaluates a rule config against the given payslip
// figures without persisting anything. Zero figures fall back to samples.
func (s *PayrollRuleService) PreviewCalculation(config *entity.RuleConfig, basic, gross float64) *RulePreview {
	if err := config.Validate(); err != nil {
		return &RulePreview{ErrorMessage: err.Error()}
	}
	if basic == 0 {
		basic = sampleRuleParameters["basic"].(float64)
	}
	if gross == 0 {
		gross = sampleRuleParameters["gross"].(float64)
	}

	result, err := EvaluateRule(config, basic, gross)
	if err != nil {
		return &RulePreview{ErrorMessage: err.Error()}
	}
	return &RulePreview{Success: true, Result: result}
}

// EvaluateRule computes a rule's amount for the given payslip figures
func EvaluateRule(config *entity.RuleConfig, basic, gross float64) (float64, error) {
	switch config.Kind {
	case entity.RuleKindPercentage:
		base := basic
		if config.Percentage.Base == "gross" {
			base = gross
		}
		amount := finance.Round2(base * config.Percentage.Rate / 100)
		if config.Percentage.Cap > 0 && amount > config.Percentage.Cap {
			amount = config.Percentage.Cap
		}
		return amount, nil
	case entity.RuleKindSlab:
		for _, slab := range config.Slabs {
			if slab.UpTo == 0 || gross <= slab.UpTo {
				return finance.Round2(slab.Amount), nil
			}
		}
		// Gross exceeds every bounded slab and there is no open-ended band.
		return 0, nil
	case entity.RuleKindFormula:
		return evaluateFormula(config.Formula, map[string]interface{}{
			"basic": basic,
			"gross": gross,
		})
	}
	return 0, fmt.Errorf("unknown rule kind %q", config.Kind)
}

// evaluateFormula parses and runs an expression with govaluate
func evaluateFormula(expression string, parameters map[string]interface{}) (float64, error) {
	expr, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return 0, fmt.Errorf("invalid formula: %w", err)
	}

	result, err := expr.Evaluate(parameters)
	if err != nil {
		return 0, fmt.Errorf("formula evaluation failed: %w", err)
	}

	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("formula must yield a number, got %T", result)
	}
	return finance.Round2(value), nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
	"github.com/sahajbooks/sahaj-api/pkg/finance"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
	"github.com/sahajbooks/sahaj-api/pkg/utils"
)

// QuoteService handles quote operations. Quotes carry document level tax
// and discount percentages rather than per-line rates.
type QuoteService struct {
	quoteRepo     repository.QuoteRepository
	quoteItemRepo repository.QuoteItemRepository
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	quoteItemRepo repository.QuoteItemRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *QuoteService {
	return &QuoteService{
		quoteRepo:     quoteRepo,
		quoteItemRepo: quoteItemRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
	}
}

// QuoteItemInput represents a quote line input
type QuoteItemInput struct {
	ProductID   *uuid.UUID
	ProductName string
	ProductCode string
	Quantity    float64
	UnitPrice   float64
}

// CreateQuoteInput represents the input for creating a quote
type CreateQuoteInput struct {
	UserID             uuid.UUID
	CustomerID         *uuid.UUID
	CustomerName       string
	QuoteDate          time.Time
	ValidUntil         *time.Time
	TaxPercentage      float64
	DiscountPercentage float64
	ShippingAmount     float64
	Note               *string
	Items              []QuoteItemInput
}

func (s *QuoteService) buildQuoteItems(ctx context.Context, inputs []QuoteItemInput) ([]entity.QuoteItem, float64, error) {
	if len(inputs) == 0 {
		return nil, 0, apperror.NewBadRequestError("Quote requires at least one line item")
	}

	items := make([]entity.QuoteItem, 0, len(inputs))
	var subTotal float64

	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, 0, apperror.NewBadRequestError("Quantity must be positive")
		}
		if in.UnitPrice < 0 {
			return nil, 0, apperror.NewBadRequestError("Unit price cannot be negative")
		}

		name := in.ProductName
		code := in.ProductCode
		if in.ProductID != nil {
			product, err := s.productRepo.GetByID(ctx, *in.ProductID)
			if err != nil {
				return nil, 0, err
			}
			if product == nil {
				return nil, 0, apperror.NewNotFoundError("Product")
			}
			if name == "" {
				name = product.Name
			}
			if code == "" {
				code = product.Code
			}
		}

		lineSubTotal := finance.Round2(in.Quantity * in.UnitPrice)
		items = append(items, entity.QuoteItem{
			ProductID:   in.ProductID,
			ProductName: name,
			ProductCode: code,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			SubTotal:    lineSubTotal,
		})
		subTotal += lineSubTotal
	}

	return items, finance.Round2(subTotal), nil
}

// CreateQuote creates a new quote
func (s *QuoteService) CreateQuote(ctx context.Context, input *CreateQuoteInput) (*entity.Quote, error) {
	customerName := input.CustomerName
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		if customerName == "" {
			customerName = customer.Name
		}
	}

	items, subTotal, err := s.buildQuoteItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	totals, err := finance.DocumentLevelTotals(subTotal, input.TaxPercentage, input.DiscountPercentage, input.ShippingAmount)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	nextNum, err := s.quoteRepo.GetNextSequenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	quote := &entity.Quote{
		UserID:             input.UserID,
		CustomerID:         input.CustomerID,
		QuoteNumber:        utils.FormatDocNumber("QUO-", nextNum),
		QuoteDate:          input.QuoteDate,
		ValidUntil:         input.ValidUntil,
		CustomerName:       customerName,
		SubTotal:           totals.SubTotal,
		TaxPercentage:      input.TaxPercentage,
		TaxAmount:          totals.TaxAmount,
		DiscountPercentage: input.DiscountPercentage,
		DiscountAmount:     totals.DiscountAmount,
		ShippingAmount:     totals.ShippingAmount,
		TotalAmount:        totals.TotalAmount,
		Status:             enum.QuoteStatusPending,
		Note:               input.Note,
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].QuoteID = quote.ID
	}
	if err := s.quoteItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.quoteRepo.GetWithItems(ctx, quote.ID)
}

// GetQuote retrieves a quote by ID
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// ListQuotesInput represents the input for listing quotes
type ListQuotesInput struct {
	UserID       uuid.UUID
	IsSuperAdmin bool
	Pagination   *pagination.PaginationParams
	Search       string
	Status       *enum.QuoteStatus
	CustomerID   *uuid.UUID
}

// ListQuotes lists quotes with filtering
func (s *QuoteService) ListQuotes(ctx context.Context, input *ListQuotesInput) (*pagination.PaginatedResult[entity.Quote], error) {
	params := &repository.QuoteFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		CustomerID: input.CustomerID,
	}

	var userID uuid.UUID
	if !input.IsSuperAdmin {
		userID = input.UserID
	}

	quotes, total, err := s.quoteRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotes, pag), nil
}

// UpdateQuoteInput represents the input for updating a quote
type UpdateQuoteInput struct {
	UserID             uuid.UUID
	ID                 uuid.UUID
	IsSuperAdmin       bool
	CustomerID         *uuid.UUID
	CustomerName       string
	QuoteDate          time.Time
	ValidUntil         *time.Time
	TaxPercentage      float64
	DiscountPercentage float64
	ShippingAmount     float64
	Note               *string
	Items              []QuoteItemInput
}

// UpdateQuote recomputes and replaces a quote that has not been answered yet
func (s *QuoteService) UpdateQuote(ctx context.Context, input *UpdateQuoteInput) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	// Check permission
	if !input.IsSuperAdmin && quote.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if quote.Status == enum.QuoteStatusAccepted || quote.Status == enum.QuoteStatusDeclined {
		return nil, apperror.NewBusinessRuleError("Accepted or declined quotes cannot be edited")
	}

	customerName := input.CustomerName
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		if customerName == "" {
			customerName = customer.Name
		}
	}

	items, subTotal, err := s.buildQuoteItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	totals, err := finance.DocumentLevelTotals(subTotal, input.TaxPercentage, input.DiscountPercentage, input.ShippingAmount)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	quote.CustomerID = input.CustomerID
	quote.CustomerName = customerName
	quote.QuoteDate = input.QuoteDate
	quote.ValidUntil = input.ValidUntil
	quote.SubTotal = totals.SubTotal
	quote.TaxPercentage = input.TaxPercentage
	quote.TaxAmount = totals.TaxAmount
	quote.DiscountPercentage = input.DiscountPercentage
	quote.DiscountAmount = totals.DiscountAmount
	quote.ShippingAmount = totals.ShippingAmount
	quote.TotalAmount = totals.TotalAmount
	quote.Note = input.Note

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	if err := s.quoteItemRepo.DeleteByQuoteID(ctx, quote.ID); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].QuoteID = quote.ID
	}
	if err := s.quoteItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.quoteRepo.GetWithItems(ctx, quote.ID)
}

// quoteTransitions lists the allowed status moves
var quoteTransitions = map[enum.QuoteStatus][]enum.QuoteStatus{
	enum.QuoteStatusPending: {enum.QuoteStatusSent, enum.QuoteStatusDeclined},
	enum.QuoteStatusSent:    {enum.QuoteStatusAccepted, enum.QuoteStatusDeclined},
}

// UpdateQuoteStatus moves a quote through its lifecycle
func (s *QuoteService) UpdateQuoteStatus(ctx context.Context, userID, id uuid.UUID, status enum.QuoteStatus, isSuperAdmin bool) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	// Check permission
	if !isSuperAdmin && quote.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	allowed := false
	for _, next := range quoteTransitions[quote.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperror.NewBusinessRuleError("Invalid quote status transition")
	}

	if status == enum.QuoteStatusAccepted && quote.ValidUntil != nil && quote.ValidUntil.Before(time.Now().Truncate(24*time.Hour)) {
		return nil, apperror.NewBusinessRuleError("Quote validity has expired")
	}

	if err := s.quoteRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	quote.Status = status

	return quote, nil
}

// DeleteQuote deletes a quote that has not been accepted
func (s *QuoteService) DeleteQuote(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quote == nil {
		return apperror.NewNotFoundError("Quote")
	}

	// Check permission
	if !isSuperAdmin && quote.UserID != userID {
		return apperror.ErrForbidden
	}

	if quote.Status == enum.QuoteStatusAccepted {
		return apperror.NewBusinessRuleError("Accepted quotes cannot be deleted")
	}

	if err := s.quoteItemRepo.DeleteByQuoteID(ctx, id); err != nil {
		return err
	}

	return s.quoteRepo.Delete(ctx, id)
}

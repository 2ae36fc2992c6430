package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/domain/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
	"github.com/sahajbooks/sahaj-api/pkg/email"
	"github.com/sahajbooks/sahaj-api/pkg/finance"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
	"github.com/sahajbooks/sahaj-api/pkg/utils"
)

// InvoiceService handles GST invoice operations. Line amounts are computed
// per item and the aggregate tax is split into CGST/SGST or IGST depending
// on the place of supply.
type InvoiceService struct {
	invoiceRepo     repository.InvoiceRepository
	invoiceItemRepo repository.InvoiceItemRepository
	customerRepo    repository.CustomerRepository
	productRepo     repository.ProductRepository
	companyRepo     repository.CompanyRepository
	emailService    *email.EmailService
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	invoiceItemRepo repository.InvoiceItemRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	emailService *email.EmailService,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:     invoiceRepo,
		invoiceItemRepo: invoiceItemRepo,
		customerRepo:    customerRepo,
		productRepo:     productRepo,
		companyRepo:     companyRepo,
		emailService:    emailService,
	}
}

// InvoiceItemInput represents a line item input
type InvoiceItemInput struct {
	ProductID    *uuid.UUID
	Description  string
	HSNCode      *string
	Quantity     float64
	UnitPrice    float64
	DiscountRate float64
	TaxRate      float64
}

// CreateInvoiceInput represents the input for creating an invoice
type CreateInvoiceInput struct {
	UserID         uuid.UUID
	CustomerID     *uuid.UUID
	InvoiceDate    time.Time
	DueDate        *time.Time
	DiscountAmount float64
	ShippingAmount float64
	Note           *string
	Items          []InvoiceItemInput
}

// buildItems snapshots product fields onto the lines and computes per-line
// amounts.
func (s *InvoiceService) buildItems(ctx context.Context, inputs []InvoiceItemInput) ([]entity.InvoiceItem, []finance.LineItem, error) {
	if len(inputs) == 0 {
		return nil, nil, apperror.NewBadRequestError("Invoice requires at least one line item")
	}

	items := make([]entity.InvoiceItem, 0, len(inputs))
	lines := make([]finance.LineItem, 0, len(inputs))

	for _, in := range inputs {
		description := in.Description
		hsnCode := in.HSNCode
		taxRate := in.TaxRate

		if in.ProductID != nil {
			product, err := s.productRepo.GetByID(ctx, *in.ProductID)
			if err != nil {
				return nil, nil, err
			}
			if product == nil {
				return nil, nil, apperror.NewNotFoundError("Product")
			}
			if description == "" {
				description = product.Name
			}
			if hsnCode == nil {
				hsnCode = product.HSNCode
			}
			if taxRate == 0 {
				taxRate = product.GSTRate
			}
		}

		line := finance.LineItem{
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			DiscountRate: in.DiscountRate,
			TaxRate:      taxRate,
		}
		if err := line.Validate(); err != nil {
			return nil, nil, apperror.NewBadRequestError(err.Error())
		}

		lineTotal, err := finance.ComputeLineTotal(in.Quantity, in.UnitPrice, in.DiscountRate, taxRate)
		if err != nil {
			return nil, nil, apperror.NewBadRequestError(err.Error())
		}

		items = append(items, entity.InvoiceItem{
			ProductID:    in.ProductID,
			Description:  description,
			HSNCode:      hsnCode,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			DiscountRate: in.DiscountRate,
			TaxRate:      taxRate,
			TaxableValue: finance.Round2(line.TaxableValue()),
			TaxAmount:    finance.Round2(line.TaxAmount()),
			LineTotal:    lineTotal,
		})
		lines = append(lines, line)
	}

	return items, lines, nil
}

// placeOfSupply resolves the supply state and whether the sale is
// inter-state against the company's registration state.
func (s *InvoiceService) placeOfSupply(ctx context.Context, company *entity.Company, customerID *uuid.UUID) (string, bool, error) {
	supplyState := company.StateCode
	if customerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *customerID)
		if err != nil {
			return "", false, err
		}
		if customer == nil {
			return "", false, apperror.NewNotFoundError("Customer")
		}
		if customer.StateCode != "" {
			supplyState = customer.StateCode
		}
	}

	return supplyState, supplyState != company.StateCode, nil
}

// booksCompany loads the company profile the books belong to
func (s *InvoiceService) booksCompany(ctx context.Context) (*entity.Company, error) {
	company, err := s.companyRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewBusinessRuleError("Company profile must be configured before invoicing")
	}
	return company, nil
}

// CreateInvoice creates a new invoice
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	company, err := s.booksCompany(ctx)
	if err != nil {
		return nil, err
	}

	items, lines, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	totals, err := finance.ItemizedTotals(lines, input.DiscountAmount)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	supplyState, interState, err := s.placeOfSupply(ctx, company, input.CustomerID)
	if err != nil {
		return nil, err
	}
	gst := finance.SplitGST(totals.TaxAmount, interState)

	nextNum, err := s.invoiceRepo.GetNextSequenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	prefix := company.Settings.InvoicePrefix
	if prefix == "" {
		prefix = "INV-"
	}

	invoice := &entity.Invoice{
		UserID:         input.UserID,
		CustomerID:     input.CustomerID,
		InvoiceNumber:  utils.FormatDocNumber(prefix, nextNum),
		InvoiceDate:    input.InvoiceDate,
		DueDate:        input.DueDate,
		PlaceOfSupply:  supplyState,
		InterState:     interState,
		SubTotal:       totals.SubTotal,
		DiscountAmount: totals.DiscountAmount,
		CGSTAmount:     gst.CGST,
		SGSTAmount:     gst.SGST,
		IGSTAmount:     gst.IGST,
		ShippingAmount: finance.Round2(input.ShippingAmount),
		TotalAmount:    finance.Round2(totals.TotalAmount + input.ShippingAmount),
		Status:         enum.InvoiceStatusDraft,
		Note:           input.Note,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	if err := s.invoiceItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoicesInput represents the input for listing invoices
type ListInvoicesInput struct {
	UserID       uuid.UUID
	IsSuperAdmin bool
	Pagination   *pagination.PaginationParams
	Search       string
	Status       *enum.InvoiceStatus
	CustomerID   *uuid.UUID
	FromDate     *time.Time
	ToDate       *time.Time
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, input *ListInvoicesInput) (*pagination.PaginatedResult[entity.Invoice], error) {
	params := &repository.InvoiceFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		CustomerID: input.CustomerID,
		FromDate:   input.FromDate,
		ToDate:     input.ToDate,
	}

	var userID uuid.UUID
	if !input.IsSuperAdmin {
		userID = input.UserID
	}

	invoices, total, err := s.invoiceRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoiceInput represents the input for updating a draft invoice
type UpdateInvoiceInput struct {
	UserID         uuid.UUID
	ID             uuid.UUID
	IsSuperAdmin   bool
	CustomerID     *uuid.UUID
	InvoiceDate    time.Time
	DueDate        *time.Time
	DiscountAmount float64
	ShippingAmount float64
	Note           *string
	Items          []InvoiceItemInput
}

// UpdateInvoice recomputes and replaces a draft invoice. Sent and paid
// invoices are immutable.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	// Check permission
	if !input.IsSuperAdmin && invoice.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if invoice.Status != enum.InvoiceStatusDraft {
		return nil, apperror.NewBusinessRuleError("Only draft invoices can be edited")
	}

	company, err := s.booksCompany(ctx)
	if err != nil {
		return nil, err
	}

	items, lines, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	totals, err := finance.ItemizedTotals(lines, input.DiscountAmount)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	supplyState, interState, err := s.placeOfSupply(ctx, company, input.CustomerID)
	if err != nil {
		return nil, err
	}
	gst := finance.SplitGST(totals.TaxAmount, interState)

	invoice.CustomerID = input.CustomerID
	invoice.InvoiceDate = input.InvoiceDate
	invoice.DueDate = input.DueDate
	invoice.PlaceOfSupply = supplyState
	invoice.InterState = interState
	invoice.SubTotal = totals.SubTotal
	invoice.DiscountAmount = totals.DiscountAmount
	invoice.CGSTAmount = gst.CGST
	invoice.SGSTAmount = gst.SGST
	invoice.IGSTAmount = gst.IGST
	invoice.ShippingAmount = finance.Round2(input.ShippingAmount)
	invoice.TotalAmount = finance.Round2(totals.TotalAmount + input.ShippingAmount)
	invoice.Note = input.Note

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	if err := s.invoiceItemRepo.DeleteByInvoiceID(ctx, invoice.ID); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	if err := s.invoiceItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

// SendInvoice marks a draft invoice sent and emails it to the customer
// when an address is on file.
func (s *InvoiceService) SendInvoice(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	// Check permission
	if !isSuperAdmin && invoice.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	if invoice.Status != enum.InvoiceStatusDraft {
		return nil, apperror.NewBusinessRuleError("Only draft invoices can be sent")
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, enum.InvoiceStatusSent); err != nil {
		return nil, err
	}
	invoice.Status = enum.InvoiceStatusSent

	if s.emailService != nil && invoice.Customer != nil && invoice.Customer.Email != nil {
		company, err := s.companyRepo.GetDefault(ctx)
		if err != nil {
			return nil, err
		}

		companyName := ""
		if company != nil {
			companyName = company.Name
		}
		dueDate := ""
		if invoice.DueDate != nil {
			dueDate = invoice.DueDate.Format("02 Jan 2006")
		}

		data := email.InvoiceEmailData{
			CustomerName:  invoice.Customer.Name,
			InvoiceNumber: invoice.InvoiceNumber,
			InvoiceDate:   invoice.InvoiceDate.Format("02 Jan 2006"),
			DueDate:       dueDate,
			TotalAmount:   fmt.Sprintf("%.2f", invoice.TotalAmount),
			CompanyName:   companyName,
		}
		// Email failure does not undo the send; the invoice can be re-mailed.
		_ = s.emailService.SendInvoiceEmail(*invoice.Customer.Email, data)
	}

	return invoice, nil
}

// RecordPaymentInput represents a payment applied to an invoice
type RecordPaymentInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	IsSuperAdmin bool
	Amount       float64
}

// RecordPayment applies a payment to a sent invoice; full settlement marks
// the invoice paid.
func (s *InvoiceService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	// Check permission
	if !input.IsSuperAdmin && invoice.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if invoice.Status != enum.InvoiceStatusSent {
		return nil, apperror.NewBusinessRuleError("Payments can only be recorded against sent invoices")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}
	if input.Amount > invoice.BalanceDue()+finance.BalanceTolerance {
		return nil, apperror.NewBusinessRuleError("Payment exceeds the balance due")
	}

	invoice.AmountPaid = finance.Round2(invoice.AmountPaid + input.Amount)
	if finance.EqualWithin(invoice.AmountPaid, invoice.TotalAmount, finance.BalanceTolerance) {
		invoice.Status = enum.InvoiceStatusPaid
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// CancelInvoice cancels an invoice that has not been paid
func (s *InvoiceService) CancelInvoice(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	// Check permission
	if !isSuperAdmin && invoice.UserID != userID {
		return apperror.ErrForbidden
	}

	if invoice.Status == enum.InvoiceStatusPaid {
		return apperror.NewBusinessRuleError("Paid invoices cannot be cancelled")
	}

	return s.invoiceRepo.UpdateStatus(ctx, id, enum.InvoiceStatusCancelled)
}

// DeleteInvoice deletes a draft invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	// Check permission
	if !isSuperAdmin && invoice.UserID != userID {
		return apperror.ErrForbidden
	}

	if invoice.Status != enum.InvoiceStatusDraft {
		return apperror.NewBusinessRuleError("Only draft invoices can be deleted")
	}

	if err := s.invoiceItemRepo.DeleteByInvoiceID(ctx, id); err != nil {
		return err
	}

	return s.invoiceRepo.Delete(ctx, id)
}

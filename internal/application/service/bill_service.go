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

// BillService handles vendor bill operations. TDS is withheld on the
// taxable value, never on the GST component.
type BillService struct {
	billRepo     repository.BillRepository
	billItemRepo repository.BillItemRepository
	vendorRepo   repository.VendorRepository
}

// NewBillService creates a new bill service
func NewBillService(
	billRepo repository.BillRepository,
	billItemRepo repository.BillItemRepository,
	vendorRepo repository.VendorRepository,
) *BillService {
	return &BillService{
		billRepo:     billRepo,
		billItemRepo: billItemRepo,
		vendorRepo:   vendorRepo,
	}
}

// BillItemInput represents a bill line input
type BillItemInput struct {
	ProductID   *uuid.UUID
	Description string
	Quantity    float64
	UnitCost    float64
	TaxRate     float64
}

// CreateBillInput represents the input for recording a vendor bill
type CreateBillInput struct {
	UserID        uuid.UUID
	VendorID      *uuid.UUID
	VendorBillRef *string
	BillDate      time.Time
	DueDate       *time.Time
	TDSSection    *string
	Note          *string
	Items         []BillItemInput
}

func buildBillItems(inputs []BillItemInput) ([]entity.BillItem, float64, float64, error) {
	if len(inputs) == 0 {
		return nil, 0, 0, apperror.NewBadRequestError("Bill requires at least one line item")
	}

	items := make([]entity.BillItem, 0, len(inputs))
	var subTotal, taxTotal float64

	for _, in := range inputs {
		line := finance.LineItem{
			Quantity:  in.Quantity,
			UnitPrice: in.UnitCost,
			TaxRate:   in.TaxRate,
		}
		if err := line.Validate(); err != nil {
			return nil, 0, 0, apperror.NewBadRequestError(err.Error())
		}

		lineTotal, err := finance.ComputeLineTotal(in.Quantity, in.UnitCost, 0, in.TaxRate)
		if err != nil {
			return nil, 0, 0, apperror.NewBadRequestError(err.Error())
		}

		taxableValue := finance.Round2(line.TaxableValue())
		taxAmount := finance.Round2(line.TaxAmount())
		items = append(items, entity.BillItem{
			ProductID:    in.ProductID,
			Description:  in.Description,
			Quantity:     in.Quantity,
			UnitCost:     in.UnitCost,
			TaxRate:      in.TaxRate,
			TaxableValue: taxableValue,
			TaxAmount:    taxAmount,
			LineTotal:    lineTotal,
		})
		subTotal += taxableValue
		taxTotal += taxAmount
	}

	return items, finance.Round2(subTotal), finance.Round2(taxTotal), nil
}

// resolveTDS picks the section from the input or the vendor default and
// looks up the statutory rate.
func (s *BillService) resolveTDS(ctx context.Context, vendorID *uuid.UUID, section *string) (*string, float64, error) {
	if section == nil && vendorID != nil {
		vendor, err := s.vendorRepo.GetByID(ctx, *vendorID)
		if err != nil {
			return nil, 0, err
		}
		if vendor == nil {
			return nil, 0, apperror.NewNotFoundError("Vendor")
		}
		section = vendor.DefaultTDSSection
	}

	if section == nil || *section == "" {
		return nil, 0, nil
	}

	rate, ok := finance.TDSRate(*section)
	if !ok {
		return nil, 0, apperror.NewValidationError([]apperror.FieldError{
			{Field: "tds_section", Message: "unknown TDS section"},
		})
	}
	return section, rate, nil
}

// CreateBill records a new vendor bill
func (s *BillService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	if input.VendorID != nil {
		vendor, err := s.vendorRepo.GetByID(ctx, *input.VendorID)
		if err != nil {
			return nil, err
		}
		if vendor == nil {
			return nil, apperror.NewNotFoundError("Vendor")
		}
	}

	items, subTotal, taxTotal, err := buildBillItems(input.Items)
	if err != nil {
		return nil, err
	}

	section, tdsRate, err := s.resolveTDS(ctx, input.VendorID, input.TDSSection)
	if err != nil {
		return nil, err
	}

	totalAmount := finance.Round2(subTotal + taxTotal)
	var tdsAmount float64
	if section != nil {
		deduction, err := finance.ComputeDeduction(subTotal, tdsRate)
		if err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		tdsAmount = deduction.Deducted
	}

	nextNum, err := s.billRepo.GetNextSequenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	bill := &entity.Bill{
		UserID:        input.UserID,
		VendorID:      input.VendorID,
		BillNumber:    utils.FormatDocNumber("BILL-", nextNum),
		VendorBillRef: input.VendorBillRef,
		BillDate:      input.BillDate,
		DueDate:       input.DueDate,
		SubTotal:      subTotal,
		TaxAmount:     taxTotal,
		TotalAmount:   totalAmount,
		TDSSection:    section,
		TDSRate:       tdsRate,
		TDSAmount:     tdsAmount,
		NetPayable:    finance.Round2(totalAmount - tdsAmount),
		Status:        enum.BillStatusDraft,
		Note:          input.Note,
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].BillID = bill.ID
	}
	if err := s.billItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.billRepo.GetWithItems(ctx, bill.ID)
}

// GetBill retrieves a bill by ID
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBillsInput represents the input for listing bills
type ListBillsInput struct {
	UserID       uuid.UUID
	IsSuperAdmin bool
	Pagination   *pagination.PaginationParams
	Search       string
	Status       *enum.BillStatus
	VendorID     *uuid.UUID
	TDSSection   *string
}

// ListBills lists bills with filtering
func (s *BillService) ListBills(ctx context.Context, input *ListBillsInput) (*pagination.PaginatedResult[entity.Bill], error) {
	params := &repository.BillFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		VendorID:   input.VendorID,
		TDSSection: input.TDSSection,
	}

	var userID uuid.UUID
	if !input.IsSuperAdmin {
		userID = input.UserID
	}

	bills, total, err := s.billRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// UpdateBillInput represents the input for updating a draft bill
type UpdateBillInput struct {
	UserID        uuid.UUID
	ID            uuid.UUID
	IsSuperAdmin  bool
	VendorID      *uuid.UUID
	VendorBillRef *string
	BillDate      time.Time
	DueDate       *time.Time
	TDSSection    *string
	Note          *string
	Items         []BillItemInput
}

// UpdateBill recomputes and replaces a draft bill
func (s *BillService) UpdateBill(ctx context.Context, input *UpdateBillInput) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	// Check permission
	if !input.IsSuperAdmin && bill.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if bill.Status != enum.BillStatusDraft {
		return nil, apperror.NewBusinessRuleError("Only draft bills can be edited")
	}

	items, subTotal, taxTotal, err := buildBillItems(input.Items)
	if err != nil {
		return nil, err
	}

	section, tdsRate, err := s.resolveTDS(ctx, input.VendorID, input.TDSSection)
	if err != nil {
		return nil, err
	}

	totalAmount := finance.Round2(subTotal + taxTotal)
	var tdsAmount float64
	if section != nil {
		deduction, err := finance.ComputeDeduction(subTotal, tdsRate)
		if err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		tdsAmount = deduction.Deducted
	}

	bill.VendorID = input.VendorID
	bill.VendorBillRef = input.VendorBillRef
	bill.BillDate = input.BillDate
	bill.DueDate = input.DueDate
	bill.SubTotal = subTotal
	bill.TaxAmount = taxTotal
	bill.TotalAmount = totalAmount
	bill.TDSSection = section
	bill.TDSRate = tdsRate
	bill.TDSAmount = tdsAmount
	bill.NetPayable = finance.Round2(totalAmount - tdsAmount)
	bill.Note = input.Note

	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	if err := s.billItemRepo.DeleteByBillID(ctx, bill.ID); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].BillID = bill.ID
	}
	if err := s.billItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.billRepo.GetWithItems(ctx, bill.ID)
}

// billTransitions lists the allowed status moves
var billTransitions = map[enum.BillStatus][]enum.BillStatus{
	enum.BillStatusDraft:    {enum.BillStatusReceived, enum.BillStatusCancelled},
	enum.BillStatusReceived: {enum.BillStatusPaid, enum.BillStatusCancelled},
}

// UpdateBillStatus moves a bill through its lifecycle
func (s *BillService) UpdateBillStatus(ctx context.Context, userID, id uuid.UUID, status enum.BillStatus, isSuperAdmin bool) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	// Check permission
	if !isSuperAdmin && bill.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	allowed := false
	for _, next := range billTransitions[bill.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperror.NewBusinessRuleError("Invalid bill status transition")
	}

	if err := s.billRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	bill.Status = status

	return bill, nil
}

// DeleteBill deletes a draft bill
func (s *BillService) DeleteBill(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bill == nil {
		return apperror.NewNotFoundError("Bill")
	}

	// Check permission
	if !isSuperAdmin && bill.UserID != userID {
		return apperror.ErrForbidden
	}

	if bill.Status != enum.BillStatusDraft {
		return apperror.NewBusinessRuleError("Only draft bills can be deleted")
	}

	if err := s.billItemRepo.DeleteByBillID(ctx, id); err != nil {
		return err
	}

	return s.billRepo.Delete(ctx, id)
}

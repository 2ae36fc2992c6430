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
	"github.com/sahajbooks/sahaj-api/internal/domain/enum"
	"github.com/sahajbooks/sahaj-api/internal/infrastructure/repository"
	"github.com/sahajbooks/sahaj-api/pkg/apperror"
)

type billFixture struct {
	svc    *service.BillService
	db     *gorm.DB
	userID uuid.UUID
}

func newBillFixture(t *testing.T) *billFixture {
	t.Helper()

	db := newTestDB(t)
	svc := service.NewBillService(
		repository.NewBillRepository(db),
		repository.NewBillItemRepository(db),
		repository.NewVendorRepository(db),
	)
	return &billFixture{svc: svc, db: db, userID: uuid.New()}
}

func (f *billFixture) vendor(t *testing.T, defaultSection *string) *entity.Vendor {
	t.Helper()

	vendor := entity.Vendor{
		UserID:            f.userID,
		Name:              "Sharma Consultants",
		StateCode:         "29",
		DefaultTDSSection: defaultSection,
	}
	require.NoError(t, f.db.Create(&vendor).Error)
	return &vendor
}

func TestCreateBillWithTDSSection(t *testing.T) {
	f := newBillFixture(t)

	section := "194J"
	bill, err := f.svc.CreateBill(context.Background(), &service.CreateBillInput{
		UserID:     f.userID,
		BillDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TDSSection: &section,
		Items: []service.BillItemInput{
			{Description: "Professional fees", Quantity: 1, UnitCost: 10000, TaxRate: 18},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "BILL-000001", bill.BillNumber)
	assert.Equal(t, 10000.0, bill.SubTotal)
	assert.Equal(t, 1800.0, bill.TaxAmount)
	assert.Equal(t, 11800.0, bill.TotalAmount)
	require.NotNil(t, bill.TDSSection)
	assert.Equal(t, "194J", *bill.TDSSection)
	assert.Equal(t, 10.0, bill.TDSRate)
	// TDS is withheld on the taxable value, not on GST
	assert.Equal(t, 1000.0, bill.TDSAmount)
	assert.Equal(t, 10800.0, bill.NetPayable)
	assert.Equal(t, enum.BillStatusDraft, bill.Status)
}

func TestCreateBillUsesVendorDefaultSection(t *testing.T) {
	f := newBillFixture(t)
	vendor := f.vendor(t, strPtr("194C"))

	bill, err := f.svc.CreateBill(context.Background(), &service.CreateBillInput{
		UserID:   f.userID,
		VendorID: &vendor.ID,
		BillDate: time.Now(),
		Items: []service.BillItemInput{
			{Description: "Site work", Quantity: 1, UnitCost: 50000},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, bill.TDSSection)
	assert.Equal(t, "194C", *bill.TDSSection)
	assert.Equal(t, 2.0, bill.TDSRate)
	assert.Equal(t, 1000.0, bill.TDSAmount)
	assert.Equal(t, 49000.0, bill.NetPayable)
}

func TestCreateBillWithoutTDS(t *testing.T) {
	f := newBillFixture(t)
	vendor := f.vendor(t, nil)

	bill, err := f.svc.CreateBill(context.Background(), &service.CreateBillInput{
		UserID:   f.userID,
		VendorID: &vendor.ID,
		BillDate: time.Now(),
		Items: []service.BillItemInput{
			{Description: "Stationery", Quantity: 10, UnitCost: 150, TaxRate: 12},
		},
	})
	require.NoError(t, err)

	assert.Nil(t, bill.TDSSection)
	assert.Equal(t, 0.0, bill.TDSAmount)
	assert.Equal(t, bill.TotalAmount, bill.NetPayable)
	assert.Equal(t, 1680.0, bill.TotalAmount)
}

func TestCreateBillRejectsUnknownTDSSection(t *testing.T) {
	f := newBillFixture(t)

	section := "199Z"
	_, err := f.svc.CreateBill(context.Background(), &service.CreateBillInput{
		UserID:     f.userID,
		BillDate:   time.Now(),
		TDSSection: &section,
		Items: []service.BillItemInput{
			{Description: "Fees", Quantity: 1, UnitCost: 1000},
		},
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 422, appErr.Code)
}

func TestCreateBillRejectsUnknownVendor(t *testing.T) {
	f := newBillFixture(t)

	ghost := uuid.New()
	_, err := f.svc.CreateBill(context.Background(), &service.CreateBillInput{
		UserID:   f.userID,
		VendorID: &ghost,
		BillDate: time.Now(),
		Items: []service.BillItemInput{
			{Description: "Fees", Quantity: 1, UnitCost: 1000},
		},
	})
	require.Error(t, err)
}

func TestCreateBillRequiresItems(t *testing.T) {
	f := newBillFixture(t)

	_, err := f.svc.CreateBill(context.Background(), &service.CreateBillInput{
		UserID:   f.userID,
		BillDate: time.Now(),
	})
	require.Error(t, err)
}

func TestBillStatusTransitions(t *testing.T) {
	f := newBillFixture(t)

	bill, err := f.svc.CreateBill(context.Background(), &service.CreateBillInput{
		UserID:   f.userID,
		BillDate: time.Now(),
		Items: []service.BillItemInput{
			{Description: "Rent", Quantity: 1, UnitCost: 30000},
		},
	})
	require.NoError(t, err)

	// Draft cannot jump straight to paid
	_, err = f.svc.UpdateBillStatus(context.Background(), f.userID, bill.ID, enum.BillStatusPaid, false)
	require.Error(t, err)

	received, err := f.svc.UpdateBillStatus(context.Background(), f.userID, bill.ID, enum.BillStatusReceived, false)
	require.NoError(t, err)
	assert.Equal(t, enum.BillStatusReceived, received.Status)

	paid, err := f.svc.UpdateBillStatus(context.Background(), f.userID, bill.ID, enum.BillStatusPaid, false)
	require.NoError(t, err)
	assert.Equal(t, enum.BillStatusPaid, paid.Status)

	// Paid is terminal
	_, err = f.svc.UpdateBillStatus(context.Background(), f.userID, bill.ID, enum.BillStatusCancelled, false)
	require.Error(t, err)
}

func TestUpdateBillRecomputesTDS(t *testing.T) {
	f := newBillFixture(t)

	section := "194I"
	bill, err := f.svc.CreateBill(context.Background(), &service.CreateBillInput{
		UserID:     f.userID,
		BillDate:   time.Now(),
		TDSSection: &section,
		Items: []service.BillItemInput{
			{Description: "Office rent", Quantity: 1, UnitCost: 40000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 4000.0, bill.TDSAmount)

	updated, err := f.svc.UpdateBill(context.Background(), &service.UpdateBillInput{
		UserID:     f.userID,
		ID:         bill.ID,
		BillDate:   bill.BillDate,
		TDSSection: &section,
		Items: []service.BillItemInput{
			{Description: "Office rent", Quantity: 1, UnitCost: 25000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2500.0, updated.TDSAmount)
	assert.Equal(t, 22500.0, updated.NetPayable)
}

func TestUpdateBillOnlyDraft(t *testing.T) {
	f := newBillFixture(t)

	bill, err := f.svc.CreateBill(context.Background(), &service.CreateBillInput{
		UserID:   f.userID,
		BillDate: time.Now(),
		Items: []service.BillItemInput{
			{Description: "Rent", Quantity: 1, UnitCost: 30000},
		},
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateBillStatus(context.Background(), f.userID, bill.ID, enum.BillStatusReceived, false)
	require.NoError(t, err)

	_, err = f.svc.UpdateBill(context.Background(), &service.UpdateBillInput{
		UserID:   f.userID,
		ID:       bill.ID,
		BillDate: bill.BillDate,
		Items: []service.BillItemInput{
			{Description: "Rent", Quantity: 1, UnitCost: 1},
		},
	})
	require.Error(t, err)
}

func TestDeleteBillOnlyDraft(t *testing.T) {
	f := newBillFixture(t)

	bill, err := f.svc.CreateBill(context.Background(), &service.CreateBillInput{
		UserID:   f.userID,
		BillDate: time.Now(),
		Items: []service.BillItemInput{
			{Description: "Rent", Quantity: 1, UnitCost: 30000},
		},
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteBill(context.Background(), f.userID, bill.ID, false))

	bill, err = f.svc.CreateBill(context.Background(), &service.CreateBillInput{
		UserID:   f.userID,
		BillDate: time.Now(),
		Items: []service.BillItemInput{
			{Description: "Rent", Quantity: 1, UnitCost: 30000},
		},
	})
	require.NoError(t, err)
	_, err = f.svc.UpdateBillStatus(context.Background(), f.userID, bill.ID, enum.BillStatusReceived, false)
	require.NoError(t, err)
	assert.Error(t, f.svc.DeleteBill(context.Background(), f.userID, bill.ID, false))
}

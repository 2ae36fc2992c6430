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
)

type invoiceFixture struct {
	svc    *service.InvoiceService
	db     *gorm.DB
	userID uuid.UUID
}

// newInvoiceFixture seeds a Karnataka (29) company so the GST split has a
// home state to compare against.
func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	db := newTestDB(t)
	svc := service.NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewInvoiceItemRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
		repository.NewCompanyRepository(db),
		nil,
	)

	company := entity.Company{
		Name:      "Sahaj Traders",
		StateCode: "29",
		Settings:  entity.CompanySettings{InvoicePrefix: "INV-"},
	}
	require.NoError(t, db.Create(&company).Error)

	return &invoiceFixture{svc: svc, db: db, userID: uuid.New()}
}

func (f *invoiceFixture) customer(t *testing.T, stateCode string) *entity.Customer {
	t.Helper()

	customer := entity.Customer{
		UserID:    f.userID,
		Name:      "Acme Industries",
		StateCode: stateCode,
	}
	require.NoError(t, f.db.Create(&customer).Error)
	return &customer
}

func (f *invoiceFixture) createInvoice(t *testing.T, customerID *uuid.UUID) *entity.Invoice {
	t.Helper()

	invoice, err := f.svc.CreateInvoice(context.Background(), &service.CreateInvoiceInput{
		UserID:      f.userID,
		CustomerID:  customerID,
		InvoiceDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Items: []service.InvoiceItemInput{
			{Description: "Consulting", Quantity: 2, UnitPrice: 500, TaxRate: 18},
		},
	})
	require.NoError(t, err)
	return invoice
}

func TestCreateInvoiceIntraStateSplitsCGSTSGST(t *testing.T) {
	f := newInvoiceFixture(t)
	customer := f.customer(t, "29")

	invoice := f.createInvoice(t, &customer.ID)

	assert.Equal(t, "INV-000001", invoice.InvoiceNumber)
	assert.Equal(t, "29", invoice.PlaceOfSupply)
	assert.False(t, invoice.InterState)
	assert.Equal(t, 1000.0, invoice.SubTotal)
	assert.Equal(t, 90.0, invoice.CGSTAmount)
	assert.Equal(t, 90.0, invoice.SGSTAmount)
	assert.Equal(t, 0.0, invoice.IGSTAmount)
	assert.Equal(t, 1180.0, invoice.TotalAmount)
	assert.Equal(t, enum.InvoiceStatusDraft, invoice.Status)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, 1000.0, invoice.Items[0].TaxableValue)
	assert.Equal(t, 180.0, invoice.Items[0].TaxAmount)
}

func TestCreateInvoiceInterStateChargesIGST(t *testing.T) {
	f := newInvoiceFixture(t)
	customer := f.customer(t, "27")

	invoice := f.createInvoice(t, &customer.ID)

	assert.Equal(t, "27", invoice.PlaceOfSupply)
	assert.True(t, invoice.InterState)
	assert.Equal(t, 0.0, invoice.CGSTAmount)
	assert.Equal(t, 0.0, invoice.SGSTAmount)
	assert.Equal(t, 180.0, invoice.IGSTAmount)
	assert.Equal(t, 1180.0, invoice.TotalAmount)
}

func TestCreateInvoiceWalkInDefaultsToHomeState(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice := f.createInvoice(t, nil)

	assert.Equal(t, "29", invoice.PlaceOfSupply)
	assert.False(t, invoice.InterState)
	assert.Equal(t, 90.0, invoice.CGSTAmount)
	assert.Equal(t, 90.0, invoice.SGSTAmount)
}

func TestCreateInvoiceSnapshotsProductFields(t *testing.T) {
	f := newInvoiceFixture(t)

	hsn := "998314"
	product := entity.Product{
		UserID:       f.userID,
		Name:         "Support retainer",
		Code:         "SUP-01",
		Slug:         "support-retainer",
		SellingPrice: 2000,
		HSNCode:      &hsn,
		GSTRate:      18,
	}
	require.NoError(t, f.db.Create(&product).Error)

	invoice, err := f.svc.CreateInvoice(context.Background(), &service.CreateInvoiceInput{
		UserID:      f.userID,
		InvoiceDate: time.Now(),
		Items: []service.InvoiceItemInput{
			{ProductID: &product.ID, Quantity: 1, UnitPrice: 2000},
		},
	})
	require.NoError(t, err)

	require.Len(t, invoice.Items, 1)
	item := invoice.Items[0]
	assert.Equal(t, "Support retainer", item.Description)
	require.NotNil(t, item.HSNCode)
	assert.Equal(t, "998314", *item.HSNCode)
	assert.Equal(t, 18.0, item.TaxRate)
}

func TestCreateInvoiceRequiresCompanyProfile(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewInvoiceItemRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
		repository.NewCompanyRepository(db),
		nil,
	)

	_, err := svc.CreateInvoice(context.Background(), &service.CreateInvoiceInput{
		UserID:      uuid.New(),
		InvoiceDate: time.Now(),
		Items: []service.InvoiceItemInput{
			{Description: "Consulting", Quantity: 1, UnitPrice: 100, TaxRate: 18},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Company profile")
}

func TestInvoicePaymentLifecycle(t *testing.T) {
	f := newInvoiceFixture(t)
	customer := f.customer(t, "29")
	invoice := f.createInvoice(t, &customer.ID)

	// Payments against a draft are rejected
	_, err := f.svc.RecordPayment(context.Background(), &service.RecordPaymentInput{
		UserID: f.userID, ID: invoice.ID, Amount: 100,
	})
	require.Error(t, err)

	sent, err := f.svc.SendInvoice(context.Background(), f.userID, invoice.ID, false)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusSent, sent.Status)

	partial, err := f.svc.RecordPayment(context.Background(), &service.RecordPaymentInput{
		UserID: f.userID, ID: invoice.ID, Amount: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusSent, partial.Status)
	assert.Equal(t, 680.0, partial.BalanceDue())

	// Overpayment of the remaining balance is rejected
	_, err = f.svc.RecordPayment(context.Background(), &service.RecordPaymentInput{
		UserID: f.userID, ID: invoice.ID, Amount: 700,
	})
	require.Error(t, err)

	settled, err := f.svc.RecordPayment(context.Background(), &service.RecordPaymentInput{
		UserID: f.userID, ID: invoice.ID, Amount: 680,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, settled.Status)
	assert.Equal(t, 0.0, settled.BalanceDue())
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createInvoice(t, nil)

	_, err := f.svc.SendInvoice(context.Background(), f.userID, invoice.ID, false)
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(context.Background(), &service.RecordPaymentInput{
		UserID: f.userID, ID: invoice.ID, Amount: 0,
	})
	require.Error(t, err)

	_, err = f.svc.RecordPayment(context.Background(), &service.RecordPaymentInput{
		UserID: f.userID, ID: invoice.ID, Amount: -50,
	})
	require.Error(t, err)
}

func TestCancelInvoice(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createInvoice(t, nil)

	require.NoError(t, f.svc.CancelInvoice(context.Background(), f.userID, invoice.ID, false))

	cancelled, err := f.svc.GetInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusCancelled, cancelled.Status)
}

func TestCancelPaidInvoiceRejected(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createInvoice(t, nil)

	_, err := f.svc.SendInvoice(context.Background(), f.userID, invoice.ID, false)
	require.NoError(t, err)
	_, err = f.svc.RecordPayment(context.Background(), &service.RecordPaymentInput{
		UserID: f.userID, ID: invoice.ID, Amount: 1180,
	})
	require.NoError(t, err)

	assert.Error(t, f.svc.CancelInvoice(context.Background(), f.userID, invoice.ID, false))
}

func TestUpdateInvoiceRecomputesTotals(t *testing.T) {
	f := newInvoiceFixture(t)
	customer := f.customer(t, "27")
	invoice := f.createInvoice(t, nil)

	// Re-pointing the invoice at an out-of-state customer flips the split
	updated, err := f.svc.UpdateInvoice(context.Background(), &service.UpdateInvoiceInput{
		UserID:      f.userID,
		ID:          invoice.ID,
		CustomerID:  &customer.ID,
		InvoiceDate: invoice.InvoiceDate,
		Items: []service.InvoiceItemInput{
			{Description: "Consulting", Quantity: 3, UnitPrice: 500, TaxRate: 18},
		},
	})
	require.NoError(t, err)

	assert.True(t, updated.InterState)
	assert.Equal(t, 1500.0, updated.SubTotal)
	assert.Equal(t, 270.0, updated.IGSTAmount)
	assert.Equal(t, 0.0, updated.CGSTAmount)
	assert.Equal(t, 1770.0, updated.TotalAmount)
	require.Len(t, updated.Items, 1)
}

func TestUpdateInvoiceOnlyDraft(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createInvoice(t, nil)

	_, err := f.svc.SendInvoice(context.Background(), f.userID, invoice.ID, false)
	require.NoError(t, err)

	_, err = f.svc.UpdateInvoice(context.Background(), &service.UpdateInvoiceInput{
		UserID:      f.userID,
		ID:          invoice.ID,
		InvoiceDate: invoice.InvoiceDate,
		Items: []service.InvoiceItemInput{
			{Description: "Consulting", Quantity: 1, UnitPrice: 100, TaxRate: 18},
		},
	})
	require.Error(t, err)
}

func TestDeleteInvoiceOnlyDraft(t *testing.T) {
	f := newInvoiceFixture(t)

	draft := f.createInvoice(t, nil)
	require.NoError(t, f.svc.DeleteInvoice(context.Background(), f.userID, draft.ID, false))

	sent := f.createInvoice(t, nil)
	_, err := f.svc.SendInvoice(context.Background(), f.userID, sent.ID, false)
	require.NoError(t, err)
	assert.Error(t, f.svc.DeleteInvoice(context.Background(), f.userID, sent.ID, false))
}

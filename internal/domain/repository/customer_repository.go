package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/domain/entity"
	"github.com/sahajbooks/sahaj-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	GetByGSTIN(ctx context.Context, gstin string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns customers with page-based pagination. If skipUserFilter is true, returns all customers.
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Customer, int64, error)
}

// VendorRepository defines the interface for vendor data operations
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error)
	GetByEmail(ctx context.Context, email string) (*entity.Vendor, error)
	GetByGSTIN(ctx context.Context, gstin string) (*entity.Vendor, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns vendors. If skipUserFilter is true, returns all vendors.
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Vendor, int64, error)
}

package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	UnitID       *uuid.UUID `json:"unit_id"`
	Name         string     `json:"name" binding:"required,min=2,max=255"`
	Code         string     `json:"code" binding:"required,max=100"`
	Type         int        `json:"type" binding:"min=0,max=1"`
	HSNCode      *string    `json:"hsn_code"`
	GSTRate      float64    `json:"gst_rate" binding:"min=0,max=100"`
	SellingPrice float64    `json:"selling_price" binding:"min=0"`
	BuyingPrice  float64    `json:"buying_price" binding:"min=0"`
	Notes        *string    `json:"notes"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	UnitID       *uuid.UUID `json:"unit_id"`
	Name         *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Type         *int       `json:"type" binding:"omitempty,min=0,max=1"`
	HSNCode      *string    `json:"hsn_code"`
	GSTRate      *float64   `json:"gst_rate" binding:"omitempty,min=0,max=100"`
	SellingPrice *float64   `json:"selling_price" binding:"omitempty,min=0"`
	BuyingPrice  *float64   `json:"buying_price" binding:"omitempty,min=0"`
	Notes        *string    `json:"notes"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	UnitID     string `form:"unit_id"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

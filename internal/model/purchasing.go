package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PurchaseOrderStatus string

const (
	PurchaseOrderCreated   PurchaseOrderStatus = "CREATED"
	PurchaseOrderSent      PurchaseOrderStatus = "SENT"
	PurchaseOrderPartial   PurchaseOrderStatus = "PARTIAL"
	PurchaseOrderReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderCancelled PurchaseOrderStatus = "CANCELLED"
)

type Supplier struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `json:"name"`
	TaxID        string    `gorm:"column:tax_id" json:"tax_id"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	Contact      string    `json:"contact"`
	PaymentTerms string    `json:"payment_terms"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

type PurchaseOrder struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	Number     string              `gorm:"uniqueIndex" json:"number"`
	SupplierID uuid.UUID           `gorm:"type:uuid;index" json:"supplier_id"`
	Supplier   *Supplier           `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Status     PurchaseOrderStatus `gorm:"type:purchase_order_status" json:"status"`

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items"`

	Subtotal decimal.Decimal `gorm:"type:numeric(18,2)" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"type:numeric(18,2)" json:"tax"`
	Total    decimal.Decimal `gorm:"type:numeric(18,2)" json:"total"`

	Notes      string     `json:"notes"`
	UserID     string     `json:"user_id"`
	CreatedAt  time.Time  `json:"created_at"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	ReceivedAt *time.Time `json:"received_at,omitempty"`
}

type PurchaseOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;index" json:"purchase_order_id"`
	PartID          uuid.UUID       `gorm:"type:uuid" json:"part_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric(18,2)" json:"unit_price"`
	ReceivedQty     int             `json:"received_qty"`
}

// Subtotal is the line amount before tax.
func (i PurchaseOrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Complete reports whether the ordered quantity has been fully received.
func (i PurchaseOrderItem) Complete() bool {
	return i.ReceivedQty >= i.Quantity
}

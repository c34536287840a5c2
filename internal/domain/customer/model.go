// Package customer holds the customer domain model. Customers are keyed by
// (tenant, phone) and carry a running loyalty point balance.
package customer

import (
	"time"

	"github.com/lordbyaku/lbpos/internal/types"
)

// Customer is one end customer of a laundry tenant.
type Customer struct {
	// ID uniquely identifies this customer
	ID string `json:"id" gorm:"column:id;primaryKey"`

	// Name is the display name used in notifications
	Name string `json:"name" gorm:"column:name"`

	// Phone is the WhatsApp number, stored as entered; normalization to the
	// international form happens at send time
	Phone string `json:"phone" gorm:"column:phone;index"`

	// Address is free text
	Address string `json:"address,omitempty" gorm:"column:address;type:text"`

	// PointBalance is the loyalty balance. It only decreases through manual
	// correction; order creation accrues floor(total / point unit).
	PointBalance int64 `json:"point_balance" gorm:"column:point_balance;default:0"`

	types.BaseModel
}

// TableName overrides the gorm table name.
func (Customer) TableName() string {
	return "customers"
}

// New constructs a customer for a tenant.
func New(tenantID, name, phone, address string) *Customer {
	now := time.Now().UTC()
	return &Customer{
		ID:      types.GenerateUUIDWithPrefix(types.UUIDPrefixCustomer),
		Name:    name,
		Phone:   phone,
		Address: address,
		BaseModel: types.BaseModel{
			TenantID:  tenantID,
			Status:    types.StatusPublished,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

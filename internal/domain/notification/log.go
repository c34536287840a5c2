// Package notification holds the delivery log for outbound customer
// messages. Delivery itself is fire-and-forget; the log is what the
// operator sees when a customer says nothing arrived.
package notification

import (
	"time"

	"github.com/lordbyaku/lbpos/internal/types"
)

// DeliveryStatus is the recorded outcome of a send attempt.
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "terkirim"
	DeliveryFailed DeliveryStatus = "gagal"
)

// Log is one delivery attempt record.
type Log struct {
	ID      string `json:"id" gorm:"column:id;primaryKey"`
	OrderID string `json:"order_id" gorm:"column:order_id;index"`
	Phone   string `json:"phone" gorm:"column:phone"`
	Message string `json:"message" gorm:"column:message;type:text"`

	DeliveryStatus DeliveryStatus `json:"delivery_status" gorm:"column:delivery_status;type:varchar(20)"`

	// Error holds the failure reason when DeliveryStatus is failed
	Error string `json:"error,omitempty" gorm:"column:error;type:text"`

	SentAt time.Time `json:"sent_at" gorm:"column:sent_at"`

	types.BaseModel
}

// TableName overrides the gorm table name.
func (Log) TableName() string {
	return "notification_logs"
}

// NewLog records one delivery attempt.
func NewLog(tenantID, orderID, phone, message string, status DeliveryStatus, sendErr error) *Log {
	now := time.Now().UTC()
	l := &Log{
		ID:             types.GenerateUUIDWithPrefix(types.UUIDPrefixNotificationLog),
		OrderID:        orderID,
		Phone:          phone,
		Message:        message,
		DeliveryStatus: status,
		SentAt:         now,
		BaseModel: types.BaseModel{
			TenantID:  tenantID,
			Status:    types.StatusPublished,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if sendErr != nil {
		l.Error = sendErr.Error()
	}
	return l
}

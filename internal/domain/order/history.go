package order

import (
	"time"

	"github.com/lordbyaku/lbpos/internal/types"
)

// StatusHistory is one append-only record of a successful stage transition.
// Entries are never updated or deleted.
type StatusHistory struct {
	ID         string            `json:"id" gorm:"column:id;primaryKey"`
	OrderID    string            `json:"order_id" gorm:"column:order_id;index"`
	FromStatus types.OrderStatus `json:"from_status" gorm:"column:from_status;type:varchar(20)"`
	ToStatus   types.OrderStatus `json:"to_status" gorm:"column:to_status;type:varchar(20)"`
	Note       string            `json:"note,omitempty" gorm:"column:note;type:text"`
	ChangedAt  time.Time         `json:"changed_at" gorm:"column:changed_at"`

	types.BaseModel
}

// TableName overrides the gorm table name.
func (StatusHistory) TableName() string {
	return "order_status_history"
}

// NewHistoryEntry records a transition from one stage to the next.
func NewHistoryEntry(tenantID, orderID string, from, to types.OrderStatus, note string) *StatusHistory {
	now := time.Now().UTC()
	return &StatusHistory{
		ID:         types.GenerateUUIDWithPrefix(types.UUIDPrefixOrderHistory),
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		Note:       note,
		ChangedAt:  now,
		BaseModel: types.BaseModel{
			TenantID:  tenantID,
			Status:    types.StatusPublished,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

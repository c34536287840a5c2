package repository

import (
	"context"
	"errors"

	"github.com/lordbyaku/lbpos/internal/domain/customer"
	"github.com/lordbyaku/lbpos/internal/logger"
	"github.com/lordbyaku/lbpos/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type customerRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewCustomerRepository creates a postgres-backed customer repository
func NewCustomerRepository(db *gorm.DB, log *logger.Logger) customer.Repository {
	return &customerRepository{db: db, log: log}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return dbError(err, map[string]interface{}{"customer_id": c.ID})
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	var c customer.Customer
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, types.GetTenantID(ctx)).
		First(&c).Error
	if err != nil {
		return nil, notFound(err, "customer not found", "Pelanggan tidak ditemukan",
			map[string]interface{}{"id": id})
	}
	return &c, nil
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	var c customer.Customer
	err := r.db.WithContext(ctx).
		Where("phone = ? AND tenant_id = ?", phone, types.GetTenantID(ctx)).
		First(&c).Error
	if err != nil {
		return nil, notFound(err, "customer not found", "Pelanggan tidak ditemukan",
			map[string]interface{}{"phone": phone})
	}
	return &c, nil
}

func (r *customerRepository) UpsertByPhone(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	// Insert-or-keep on the (tenant, phone) unique index: a returning
	// customer comes back with their existing row and point balance.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "phone"}},
			DoNothing: true,
		}).
		Create(c).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, dbError(err, map[string]interface{}{"phone": c.Phone})
	}
	return r.GetByPhone(ctx, c.Phone)
}

func (r *customerRepository) AddPoints(ctx context.Context, id string, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&customer.Customer{}).
		Where("id = ?", id).
		Update("point_balance", gorm.Expr("point_balance + ?", delta))
	if res.Error != nil {
		return dbError(res.Error, map[string]interface{}{"customer_id": id})
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "customer not found", "Pelanggan tidak ditemukan",
			map[string]interface{}{"id": id})
	}
	return nil
}

func (r *customerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	var customers []*customer.Customer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", types.GetTenantID(ctx)).
		Order("name ASC").
		Find(&customers).Error
	if err != nil {
		return nil, dbError(err, nil)
	}
	return customers, nil
}

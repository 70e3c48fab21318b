package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DeliveryRecord is one immutable audit entry per processed notification
// event. Retried deliveries append new records; nothing here is ever
// updated or deleted.
type DeliveryRecord struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	User      string    `gorm:"index" json:"user"` // recipient email
	Name      string    `json:"name"`
	Status    string    `json:"status"` // sent | failed
	Type      string    `gorm:"index" json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func (DeliveryRecord) TableName() string { return "email_logs" }

type DeliveryLogRepo struct {
	db *gorm.DB
}

func NewDeliveryLogRepo(db *gorm.DB) *DeliveryLogRepo {
	return &DeliveryLogRepo{db: db}
}

func (r *DeliveryLogRepo) Migrate() error {
	return r.db.AutoMigrate(&DeliveryRecord{})
}

func (r *DeliveryLogRepo) Append(ctx context.Context, rec *DeliveryRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

package models

import "time"

// BaseEntity holds the columns shared by every stored record: a
// store-assigned id, the soft-delete flag and the mutation timestamps.
// Timestamps are stamped by the repository, not by GORM.
type BaseEntity struct {
	ID        int        `json:"id" gorm:"primaryKey;autoIncrement"`
	IsDeleted bool       `json:"-" gorm:"not null;default:false"`
	CreatedAt time.Time  `json:"-" gorm:"autoCreateTime:false"`
	UpdatedAt *time.Time `json:"-" gorm:"autoUpdateTime:false"`
}

// EntityID returns the store-assigned identifier.
func (e BaseEntity) EntityID() int { return e.ID }

// MarkDeleted sets the soft-delete flag. The record is never physically
// removed.
func (e *BaseEntity) MarkDeleted() { e.IsDeleted = true }

// StampCreated records the insert time.
func (e *BaseEntity) StampCreated(t time.Time) { e.CreatedAt = t }

// StampUpdated records a mutation time. Nil until the first mutation.
func (e *BaseEntity) StampUpdated(t time.Time) { e.UpdatedAt = &t }

// Product is a stored catalog entry. Brand holds the textual brand
// identifier; the (Name, Brand) pair is unique among non-deleted products.
type Product struct {
	BaseEntity
	Name  string  `json:"name" gorm:"size:100;not null;uniqueIndex:idx_products_name_brand"`
	Brand string  `json:"brand" gorm:"size:100;not null;uniqueIndex:idx_products_name_brand"`
	Price float64 `json:"price" gorm:"not null"`
}

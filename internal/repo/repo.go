package repo

import "gorm.io/gorm"

// GormRepo is the single persistence backend behind all services. Ledger
// writes that must be atomic (cart upsert, cascade deletes) run inside
// gorm transactions here rather than relying on declarative FK cascades.
type GormRepo struct {
	DB *gorm.DB
}

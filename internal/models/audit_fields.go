package models

import "time"

// AuditFields are the timestamps shared by the stored rows. They are set by
// the services' clock, never by the database.
type AuditFields struct {
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

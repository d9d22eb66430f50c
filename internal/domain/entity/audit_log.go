package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog is one recorded change, written after the business transaction commits
type AuditLog struct {
	ID         uuid.UUID        `gorm:"type:char(36);primaryKey" json:"id"`
	ActorID    *uuid.UUID       `gorm:"type:char(36);index" json:"actor_id,omitempty"`
	ActorName  string           `gorm:"size:255" json:"actor_name,omitempty"`
	Action     enum.AuditAction `gorm:"size:20;not null;index" json:"action"`
	ModelName  string           `gorm:"size:100;not null;index:idx_audit_object,priority:1" json:"model_name"`
	ObjectID   string           `gorm:"size:64;index:idx_audit_object,priority:2" json:"object_id"`
	ObjectRepr string           `gorm:"size:255" json:"object_repr"`
	Changes    datatypes.JSON   `json:"changes"`
	IPAddress  string           `gorm:"size:45" json:"ip_address,omitempty"`
	Timestamp  time.Time        `gorm:"not null;index" json:"timestamp"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

package dto

import (
	"time"

	"gorm.io/datatypes"
)

// Response DTOs

type AuditLogResponse struct {
	ID        uint              `json:"id"`
	UserID    *uint             `json:"user_id"`
	Action    string            `json:"action"`
	Metadata  datatypes.JSONMap `json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}

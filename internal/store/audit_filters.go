package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/kleinsmk/Pode/internal/models"
)

// AuditLogFilters contains filter criteria for querying audit logs
type AuditLogFilters struct {
	EventType     models.EventType     `json:"event_type,omitempty"`
	ActorUserID   string               `json:"actor_user_id,omitempty"`
	ActorUsername string               `json:"actor_username,omitempty"`
	ResourceType  models.ResourceType  `json:"resource_type,omitempty"`
	Severity      models.EventSeverity `json:"severity,omitempty"`
	Success       *bool                `json:"success,omitempty"`
	StartTime     time.Time            `json:"start_time,omitzero"`
	EndTime       time.Time            `json:"end_time,omitzero"`
	ActorIP       string               `json:"actor_ip,omitempty"`
	Search        string               `json:"search,omitempty"` // matches action, resource_name, actor_username
}

// AuditLogStats contains statistics about audit logs
type AuditLogStats struct {
	TotalEvents      int64                          `json:"total_events"`
	EventsByType     map[models.EventType]int64     `json:"events_by_type"`
	EventsBySeverity map[models.EventSeverity]int64 `json:"events_by_severity"`
	SuccessCount     int64                          `json:"success_count"`
	FailureCount     int64                          `json:"failure_count"`
}

func applyAuditFilters(q *gorm.DB, f AuditLogFilters) *gorm.DB {
	if f.EventType != "" {
		q = q.Where("event_type = ?", f.EventType)
	}
	if f.ActorUserID != "" {
		q = q.Where("actor_user_id = ?", f.ActorUserID)
	}
	if f.ActorUsername != "" {
		q = q.Where("actor_username = ?", f.ActorUsername)
	}
	if f.ResourceType != "" {
		q = q.Where("resource_type = ?", f.ResourceType)
	}
	if f.Severity != "" {
		q = q.Where("severity = ?", f.Severity)
	}
	if f.Success != nil {
		q = q.Where("success = ?", *f.Success)
	}
	if !f.StartTime.IsZero() {
		q = q.Where("event_time >= ?", f.StartTime)
	}
	if !f.EndTime.IsZero() {
		q = q.Where("event_time <= ?", f.EndTime)
	}
	if f.ActorIP != "" {
		q = q.Where("actor_ip = ?", f.ActorIP)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			"action LIKE ? OR resource_name LIKE ? OR actor_username LIKE ?",
			like, like, like,
		)
	}
	return q
}

package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/models"
	"github.com/kleinsmk/Pode/internal/services"
	"github.com/kleinsmk/Pode/internal/store"
)

const exportRecordLimit = 10000

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// parseAuditQuery reads the shared pagination and filter parameters used
// by the list and export endpoints. Malformed time values are ignored
// rather than rejected.
func parseAuditQuery(c *gin.Context) (store.PaginationParams, store.AuditLogFilters) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := store.PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}

	filters := store.AuditLogFilters{
		EventType:     models.EventType(c.Query("event_type")),
		ActorUserID:   c.Query("actor_user_id"),
		ActorUsername: c.Query("actor_username"),
		ResourceType:  models.ResourceType(c.Query("resource_type")),
		Severity:      models.EventSeverity(c.Query("severity")),
		ActorIP:       c.Query("actor_ip"),
		Search:        c.Query("search"),
	}

	if successStr := c.Query("success"); successStr != "" {
		success := successStr == "true"
		filters.Success = &success
	}

	if startTimeStr := c.Query("start_time"); startTimeStr != "" {
		if t, err := time.Parse(time.RFC3339, startTimeStr); err == nil {
			filters.StartTime = t
		}
	}
	if endTimeStr := c.Query("end_time"); endTimeStr != "" {
		if t, err := time.Parse(time.RFC3339, endTimeStr); err == nil {
			filters.EndTime = t
		}
	}

	return params, filters
}

// ListAuditLogs retrieves audit logs with pagination and filtering.
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	params, filters := parseAuditQuery(c)

	logs, pagination, err := h.auditService.GetAuditLogs(params, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve audit logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":       logs,
		"pagination": pagination,
	})
}

// GetAuditLogStats returns aggregate counts over a time range,
// defaulting to the last 30 days.
func (h *AuditHandler) GetAuditLogStats(c *gin.Context) {
	var startTime, endTime time.Time

	if startTimeStr := c.Query("start_time"); startTimeStr != "" {
		if t, err := time.Parse(time.RFC3339, startTimeStr); err == nil {
			startTime = t
		}
	}
	if endTimeStr := c.Query("end_time"); endTimeStr != "" {
		if t, err := time.Parse(time.RFC3339, endTimeStr); err == nil {
			endTime = t
		}
	}

	if startTime.IsZero() && endTime.IsZero() {
		endTime = time.Now()
		startTime = endTime.Add(-30 * 24 * time.Hour)
	}

	stats, err := h.auditService.GetAuditLogStats(startTime, endTime)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "Failed to retrieve audit log statistics"},
		)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":      stats,
		"start_time": startTime,
		"end_time":   endTime,
	})
}

// ExportAuditLogs streams matching audit logs as CSV.
func (h *AuditHandler) ExportAuditLogs(c *gin.Context) {
	_, filters := parseAuditQuery(c)

	params := store.PaginationParams{
		Page:     1,
		PageSize: exportRecordLimit,
	}

	logs, _, err := h.auditService.GetAuditLogs(params, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve audit logs"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(
		"attachment; filename=audit_logs_%s.csv",
		time.Now().Format("2006-01-02"),
	))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write([]string{
		"Event Time",
		"Event Type",
		"Severity",
		"Actor Username",
		"Actor IP",
		"Resource Type",
		"Resource Name",
		"Action",
		"Success",
		"Error Message",
	}); err != nil {
		return
	}

	for _, entry := range logs {
		successStr := "Yes"
		if !entry.Success {
			successStr = "No"
		}

		if err := writer.Write([]string{
			entry.EventTime.Format(time.RFC3339),
			string(entry.EventType),
			string(entry.Severity),
			entry.ActorUsername,
			entry.ActorIP,
			string(entry.ResourceType),
			entry.ResourceName,
			entry.Action,
			successStr,
			entry.ErrorMessage,
		}); err != nil {
			return
		}
	}
}

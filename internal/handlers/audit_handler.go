package handlers

import (
	"net/http"

	"github.com/TeamSoftLion/crm/internal/services"
	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Description Get a paginated list of audit logs, newest first
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(50)
// @Param actor_id query string false "Filter by actor"
// @Param entity query string false "Filter by entity type"
// @Param entity_id query string false "Filter by entity id"
// @Param action query string false "Filter by action"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := listQuery(c, "actor_id", "entity", "entity_id", "action")
	if c.Query("per_page") == "" {
		query.PerPage = 50
	}

	logs, total, err := h.auditService.List(c.Request.Context(), query)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audits": logs, "pagination": pagination(query, total)})
}

package handlers

import (
	"net/http"

	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EnrollmentHandler struct {
	enrollmentService *services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService *services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

type EnrollRequest struct {
	StudentID string  `json:"student_id" binding:"required,uuid"`
	GroupID   string  `json:"group_id" binding:"required,uuid"`
	JoinDate  *string `json:"join_date"`
}

type TransferRequest struct {
	StudentID    string  `json:"student_id" binding:"required,uuid"`
	OldGroupID   string  `json:"old_group_id" binding:"required,uuid"`
	NewGroupID   string  `json:"new_group_id" binding:"required,uuid"`
	TransferDate *string `json:"transfer_date"`
}

type UpdateEnrollmentRequest struct {
	Status    string  `json:"status" binding:"required"`
	LeaveDate *string `json:"leave_date"`
}

func chargeResponse(charge *models.TuitionCharge) interface{} {
	if charge == nil {
		return nil
	}
	return charge.ToResponse()
}

// @Summary Enroll student
// @Description Add a student to a group and compute the join-month charge
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param request body EnrollRequest true "Enrollment data"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req EnrollRequest
	if err := bindBody(c, "enrollment", &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	joinDate, err := parseOptionalDate(req.JoinDate)
	if err != nil {
		badRequest(c, "Invalid join_date")
		return
	}

	enrollment, charge, err := h.enrollmentService.Enroll(c.Request.Context(), actorFromContext(c), services.EnrollInput{
		StudentID: uuid.MustParse(req.StudentID),
		GroupID:   uuid.MustParse(req.GroupID),
		JoinDate:  joinDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"enrollment": enrollment.ToResponse(), "charge": chargeResponse(charge)})
}

// @Summary Transfer student
// @Description Move a student to another group and settle the transfer month
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Transfer data"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /enrollments/transfer [post]
func (h *EnrollmentHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := bindBody(c, "transfer", &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	transferDate, err := parseOptionalDate(req.TransferDate)
	if err != nil {
		badRequest(c, "Invalid transfer_date")
		return
	}

	enrollment, charge, err := h.enrollmentService.Transfer(c.Request.Context(), actorFromContext(c), services.TransferInput{
		StudentID:    uuid.MustParse(req.StudentID),
		OldGroupID:   uuid.MustParse(req.OldGroupID),
		NewGroupID:   uuid.MustParse(req.NewGroupID),
		TransferDate: transferDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollment": enrollment.ToResponse(), "charge": chargeResponse(charge)})
}

// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param student_id query string false "Filter by student"
// @Param group_id query string false "Filter by group"
// @Param status query string false "ACTIVE, PAUSED or LEFT"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /enrollments [get]
func (h *EnrollmentHandler) Index(c *gin.Context) {
	query := listQuery(c, "student_id", "group_id", "status")

	enrollments, total, err := h.enrollmentService.List(c.Request.Context(), query)
	if err != nil {
		handleError(c, err)
		return
	}

	responses := make([]models.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		responses = append(responses, enrollments[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"enrollments": responses, "pagination": pagination(query, total)})
}

// @Summary Get enrollment
// @Tags Enrollments
// @Produce json
// @Param enrollment_id path string true "Enrollment ID"
// @Success 200 {object} models.EnrollmentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /enrollments/{enrollment_id} [get]
func (h *EnrollmentHandler) Show(c *gin.Context) {
	id, ok := uuidParam(c, "enrollment_id")
	if !ok {
		return
	}
	enrollment, err := h.enrollmentService.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollment.ToResponse())
}

// @Summary Update enrollment status
// @Description ACTIVE, PAUSED or LEFT. LEFT records leave_date (default today). Charges are not changed.
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param enrollment_id path string true "Enrollment ID"
// @Param request body UpdateEnrollmentRequest true "Status"
// @Success 200 {object} models.EnrollmentResponse
// @Security BearerAuth
// @Router /enrollments/{enrollment_id} [patch]
func (h *EnrollmentHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "enrollment_id")
	if !ok {
		return
	}
	var req UpdateEnrollmentRequest
	if err := bindBody(c, "enrollment", &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	leaveDate, err := parseOptionalDate(req.LeaveDate)
	if err != nil {
		badRequest(c, "Invalid leave_date")
		return
	}

	enrollment, err := h.enrollmentService.UpdateStatus(c.Request.Context(), actorFromContext(c), id, req.Status, leaveDate)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollment.ToResponse())
}

// @Summary Delete enrollment
// @Tags Enrollments
// @Param enrollment_id path string true "Enrollment ID"
// @Success 204
// @Security BearerAuth
// @Router /enrollments/{enrollment_id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "enrollment_id")
	if !ok {
		return
	}
	if err := h.enrollmentService.Delete(c.Request.Context(), actorFromContext(c), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

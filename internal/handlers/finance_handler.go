package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FinanceHandler struct {
	ledgerService    *services.LedgerService
	paymentService   *services.PaymentService
	expenseService   *services.ExpenseService
	reportService    *services.ReportService
	exportService    *services.ExportService
	statementService *services.StatementService
	reconcileService *services.ReconcileService
}

func NewFinanceHandler(svcs *services.Services) *FinanceHandler {
	return &FinanceHandler{
		ledgerService:    svcs.Ledger,
		paymentService:   svcs.Payment,
		expenseService:   svcs.Expense,
		reportService:    svcs.Report,
		exportService:    svcs.Export,
		statementService: svcs.Statement,
		reconcileService: svcs.Reconcile,
	}
}

type ComputeChargeRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	GroupID   string `json:"group_id" binding:"required,uuid"`
	JoinDate  string `json:"join_date" binding:"required"`
}

// @Summary Compute initial charge
// @Description Create or replace the join-month charge of a student in a group
// @Tags Finance
// @Accept json
// @Produce json
// @Param request body ComputeChargeRequest true "Charge data"
// @Success 200 {object} models.TuitionChargeResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /finance/charges [post]
func (h *FinanceHandler) ComputeCharge(c *gin.Context) {
	var req ComputeChargeRequest
	if err := bindBody(c, "charge", &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	joinDate, err := parseDate(req.JoinDate)
	if err != nil {
		badRequest(c, "Invalid join_date")
		return
	}

	charge, err := h.ledgerService.ComputeInitialCharge(c.Request.Context(),
		uuid.MustParse(req.StudentID), uuid.MustParse(req.GroupID), joinDate)
	if err != nil {
		handleError(c, err)
		return
	}
	if charge == nil {
		c.JSON(http.StatusOK, gin.H{"charge": nil, "message": "Group has no monthly fee, nothing to charge"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"charge": charge.ToResponse()})
}

type RecordPaymentRequest struct {
	StudentID string  `json:"student_id" binding:"required,uuid"`
	GroupID   *string `json:"group_id" binding:"omitempty,uuid"`
	Amount    int64   `json:"amount"`
	Method    string  `json:"method" binding:"required"`
	PaidAt    *string `json:"paid_at"`
	Reference *string `json:"reference"`
	Comment   *string `json:"comment"`
}

// @Summary Record payment
// @Description Store a payment and allocate it to open charges, oldest month first
// @Tags Finance
// @Accept json
// @Produce json
// @Param request body RecordPaymentRequest true "Payment data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /finance/payments [post]
func (h *FinanceHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := bindBody(c, "payment", &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	groupID, err := parseOptionalUUID(req.GroupID)
	if err != nil {
		badRequest(c, "Invalid group_id")
		return
	}
	paidAt, err := parseOptionalDate(req.PaidAt)
	if err != nil {
		badRequest(c, "Invalid paid_at")
		return
	}

	payment, summary, err := h.paymentService.RecordPayment(c.Request.Context(), actorFromContext(c), services.RecordPaymentInput{
		StudentID: uuid.MustParse(req.StudentID),
		GroupID:   groupID,
		Amount:    req.Amount,
		Method:    req.Method,
		PaidAt:    paidAt,
		Reference: req.Reference,
		Comment:   req.Comment,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment.ToResponse(), "summary": summary})
}

type RecordExpenseRequest struct {
	Title    string  `json:"title" binding:"required"`
	Category string  `json:"category"`
	Amount   int64   `json:"amount"`
	Method   string  `json:"method" binding:"required"`
	PaidAt   *string `json:"paid_at"`
	Note     *string `json:"note"`
}

// @Summary Record expense
// @Tags Finance
// @Accept json
// @Produce json
// @Param request body RecordExpenseRequest true "Expense data"
// @Success 201 {object} models.Expense
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /finance/expenses [post]
func (h *FinanceHandler) RecordExpense(c *gin.Context) {
	var req RecordExpenseRequest
	if err := bindBody(c, "expense", &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	paidAt, err := parseOptionalDate(req.PaidAt)
	if err != nil {
		badRequest(c, "Invalid paid_at")
		return
	}

	expense, err := h.expenseService.RecordExpense(c.Request.Context(), actorFromContext(c), services.RecordExpenseInput{
		Title:    req.Title,
		Category: req.Category,
		Amount:   req.Amount,
		Method:   req.Method,
		PaidAt:   paidAt,
		Note:     req.Note,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

type DiscountRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	GroupID   string `json:"group_id" binding:"required,uuid"`
	Year      int    `json:"year" binding:"required,min=2000"`
	Month     int    `json:"month" binding:"required,min=1,max=12"`
	Discount  int64  `json:"discount"`
}

// @Summary Apply discount
// @Description Set the discount of one monthly charge; the value is rounded to the nearest thousand
// @Tags Finance
// @Accept json
// @Produce json
// @Param request body DiscountRequest true "Discount data"
// @Success 200 {object} models.TuitionChargeResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /finance/discount [post]
func (h *FinanceHandler) ApplyDiscount(c *gin.Context) {
	var req DiscountRequest
	if err := bindBody(c, "discount", &req); err != nil {
		badRequest(c, err.Error())
		return
	}

	charge, err := h.ledgerService.ApplyDiscount(c.Request.Context(), actorFromContext(c),
		uuid.MustParse(req.StudentID), uuid.MustParse(req.GroupID), req.Year, req.Month, req.Discount)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"charge": charge.ToResponse()})
}

// @Summary Group charges
// @Description Every student's charge in a group for one month, as JSON or an xlsx workbook
// @Tags Finance
// @Produce json
// @Param group_id path string true "Group ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param format query string false "xlsx for a spreadsheet"
// @Success 200 {object} models.GroupChargesReport
// @Security BearerAuth
// @Router /finance/groups/{group_id}/charges [get]
func (h *FinanceHandler) GroupCharges(c *gin.Context) {
	groupID, ok := uuidParam(c, "group_id")
	if !ok {
		return
	}
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		badRequest(c, "year and month are required")
		return
	}

	if c.Query("format") == services.FormatXLSX {
		file, err := h.exportService.ExportGroupCharges(c.Request.Context(), groupID, year, month)
		if err != nil {
			handleError(c, err)
			return
		}
		sendFile(c, file)
		return
	}

	report, err := h.reportService.GetGroupCharges(c.Request.Context(), groupID, year, month)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Debtors
// @Description Students whose total debt is at least min_debt, largest first
// @Tags Finance
// @Produce json
// @Param min_debt query int false "Minimum debt" default(0)
// @Param format query string false "csv, xlsx or pdf"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /finance/debtors [get]
func (h *FinanceHandler) Debtors(c *gin.Context) {
	minDebt, err := strconv.ParseInt(c.DefaultQuery("min_debt", "0"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid min_debt")
		return
	}

	if format := c.Query("format"); format != "" {
		file, err := h.exportService.ExportDebtors(c.Request.Context(), minDebt, format)
		if err != nil {
			handleError(c, err)
			return
		}
		sendFile(c, file)
		return
	}

	debtors, err := h.reportService.GetDebtors(c.Request.Context(), minDebt)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debtors": debtors, "count": len(debtors)})
}

// @Summary Student summary
// @Description Current month position of a student in their current group, with recent payments
// @Tags Finance
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} models.StudentSummary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /finance/students/{student_id}/summary [get]
func (h *FinanceHandler) StudentSummary(c *gin.Context) {
	studentID, ok := uuidParam(c, "student_id")
	if !ok {
		return
	}
	summary, err := h.reportService.GetStudentSummary(c.Request.Context(), studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Student history
// @Tags Finance
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} models.StudentHistory
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /finance/students/{student_id}/history [get]
func (h *FinanceHandler) StudentHistory(c *gin.Context) {
	studentID, ok := uuidParam(c, "student_id")
	if !ok {
		return
	}
	history, err := h.reportService.GetStudentHistory(c.Request.Context(), studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// @Summary Student statement
// @Description Statement of account as PDF
// @Tags Finance
// @Produce application/pdf
// @Param student_id path string true "Student ID"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /finance/students/{student_id}/statement [get]
func (h *FinanceHandler) StudentStatement(c *gin.Context) {
	studentID, ok := uuidParam(c, "student_id")
	if !ok {
		return
	}
	file, err := h.statementService.GenerateStatementPDF(c.Request.Context(), studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	sendFile(c, file)
}

// @Summary Global balance
// @Tags Finance
// @Produce json
// @Success 200 {object} models.GlobalBalance
// @Security BearerAuth
// @Router /finance/balance [get]
func (h *FinanceHandler) Balance(c *gin.Context) {
	balance, err := h.reportService.GetGlobalBalance(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// @Summary Finance overview
// @Description Income, expenses and profit in a date range. Defaults to January 1st of this year until now.
// @Tags Finance
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive (YYYY-MM-DD)"
// @Param method query string false "CASH, CARD or TRANSFER"
// @Success 200 {object} models.FinanceOverview
// @Security BearerAuth
// @Router /finance/overview [get]
func (h *FinanceHandler) Overview(c *gin.Context) {
	from, to := h.reportService.DefaultOverviewRange()
	loc := h.reportService.Location()
	if raw := c.Query("from"); raw != "" {
		t, err := parseDateIn(raw, loc)
		if err != nil {
			badRequest(c, "Invalid from")
			return
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDateIn(raw, loc)
		if err != nil {
			badRequest(c, "Invalid to")
			return
		}
		if len(raw) == len(models.DateLayout) {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		to = t
	}

	overview, err := h.reportService.GetFinanceOverview(c.Request.Context(), from, to, c.Query("method"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// @Summary Reconcile charges
// @Description Re-round legacy amounts and recompute statuses. dry_run reports without writing.
// @Tags Finance
// @Produce json
// @Param dry_run query bool false "Report only"
// @Success 200 {object} services.ReconcileReport
// @Security BearerAuth
// @Router /finance/reconcile [post]
func (h *FinanceHandler) Reconcile(c *gin.Context) {
	dryRun, _ := strconv.ParseBool(c.DefaultQuery("dry_run", "false"))
	report, err := h.reconcileService.Run(c.Request.Context(), dryRun)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

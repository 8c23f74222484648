package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	frusecases "vigil/internal/application/fieldreport/usecases"
	incusecases "vigil/internal/application/incident/usecases"
	"vigil/internal/domain/report"
	"vigil/internal/interfaces/http/middleware"
	"vigil/internal/shared/logger"
	"vigil/internal/shared/utils"
)

type FieldReportHandler struct {
	createFieldReport frusecases.CreateFieldReportExecutor
	updateFieldReport frusecases.UpdateFieldReportExecutor
	getFieldReport    frusecases.GetFieldReportExecutor
	listFieldReports  frusecases.ListFieldReportsExecutor
	attachFieldReport frusecases.AttachFieldReportExecutor
	detachFieldReport frusecases.DetachFieldReportExecutor
	appendEntry       incusecases.AppendEntryExecutor
	logger            logger.Interface
}

func NewFieldReportHandler(
	createFieldReport frusecases.CreateFieldReportExecutor,
	updateFieldReport frusecases.UpdateFieldReportExecutor,
	getFieldReport frusecases.GetFieldReportExecutor,
	listFieldReports frusecases.ListFieldReportsExecutor,
	attachFieldReport frusecases.AttachFieldReportExecutor,
	detachFieldReport frusecases.DetachFieldReportExecutor,
	appendEntry incusecases.AppendEntryExecutor,
	logger logger.Interface,
) *FieldReportHandler {
	return &FieldReportHandler{
		createFieldReport: createFieldReport,
		updateFieldReport: updateFieldReport,
		getFieldReport:    getFieldReport,
		listFieldReports:  listFieldReports,
		attachFieldReport: attachFieldReport,
		detachFieldReport: detachFieldReport,
		appendEntry:       appendEntry,
		logger:            logger,
	}
}

type createFieldReportRequest struct {
	Summary       string `json:"summary"`
	InitialReport string `json:"initial_report"`
}

func (h *FieldReportHandler) CreateFieldReport(c *gin.Context) {
	var req createFieldReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create field report", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := frusecases.CreateFieldReportCommand{
		EventID:       middleware.EventIDFromContext(c),
		Author:        middleware.HandleFromContext(c),
		Summary:       req.Summary,
		InitialReport: req.InitialReport,
	}
	result, err := h.createFieldReport.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header(numberHeader, strconv.Itoa(result.Number))
	utils.CreatedResponse(c, result, "Field report created successfully")
}

type updateFieldReportRequest struct {
	Summary *string `json:"summary"`
}

func (h *FieldReportHandler) UpdateFieldReport(c *gin.Context) {
	number, err := utils.ParseIntParam(c, "number")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req updateFieldReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update field report", "number", number, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := frusecases.UpdateFieldReportCommand{
		EventID: middleware.EventIDFromContext(c),
		Number:  number,
		Author:  middleware.HandleFromContext(c),
		Summary: req.Summary,
	}
	result, err := h.updateFieldReport.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Field report updated successfully", result)
}

func (h *FieldReportHandler) GetFieldReport(c *gin.Context) {
	number, err := utils.ParseIntParam(c, "number")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := frusecases.GetFieldReportQuery{
		EventID:     middleware.EventIDFromContext(c),
		Number:      number,
		ShowHistory: utils.ParseBoolQuery(c, "history"),
	}
	result, err := h.getFieldReport.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *FieldReportHandler) ListFieldReports(c *gin.Context) {
	query := frusecases.ListFieldReportsQuery{
		EventID: middleware.EventIDFromContext(c),
	}
	result, err := h.listFieldReports.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.FieldReports, result.Total)
}

func (h *FieldReportHandler) AppendEntry(c *gin.Context) {
	number, err := utils.ParseIntParam(c, "number")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req appendEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for append entry", "number", number, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := incusecases.AppendEntryCommand{
		EventID:      middleware.EventIDFromContext(c),
		ParentKind:   string(report.ParentFieldReport),
		ParentNumber: number,
		Author:       middleware.HandleFromContext(c),
		Text:         req.Text,
		Attachment:   req.Attachment,
	}
	result, err := h.appendEntry.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Entry appended successfully")
}

type attachRequest struct {
	IncidentNumber int `json:"incident_number" binding:"required,gte=1"`
}

// Attach binds the field report to an incident. Attaching to the same
// incident again is a no-op; attaching elsewhere supersedes the previous
// attachment.
func (h *FieldReportHandler) Attach(c *gin.Context) {
	number, err := utils.ParseIntParam(c, "number")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req attachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for attach field report", "number", number, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := frusecases.AttachFieldReportCommand{
		EventID:        middleware.EventIDFromContext(c),
		Number:         number,
		IncidentNumber: req.IncidentNumber,
		Author:         middleware.HandleFromContext(c),
	}
	if err := h.attachFieldReport.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Field report attached", nil)
}

func (h *FieldReportHandler) Detach(c *gin.Context) {
	number, err := utils.ParseIntParam(c, "number")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req attachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for detach field report", "number", number, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := frusecases.DetachFieldReportCommand{
		EventID:        middleware.EventIDFromContext(c),
		Number:         number,
		IncidentNumber: req.IncidentNumber,
		Author:         middleware.HandleFromContext(c),
	}
	if err := h.detachFieldReport.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Field report detached", nil)
}

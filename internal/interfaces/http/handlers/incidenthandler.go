package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vigil/internal/application/incident/usecases"
	"vigil/internal/domain/report"
	"vigil/internal/interfaces/http/middleware"
	"vigil/internal/shared/logger"
	"vigil/internal/shared/utils"
)

// numberHeader carries the server-assigned number back to the creating
// client out of band, so it can address the entity before re-fetching.
const numberHeader = "X-Vigil-Number"

type IncidentHandler struct {
	createIncident usecases.CreateIncidentExecutor
	updateIncident usecases.UpdateIncidentExecutor
	getIncident    usecases.GetIncidentExecutor
	listIncidents  usecases.ListIncidentsExecutor
	appendEntry    usecases.AppendEntryExecutor
	setStricken    usecases.SetStrickenExecutor
	logger         logger.Interface
}

func NewIncidentHandler(
	createIncident usecases.CreateIncidentExecutor,
	updateIncident usecases.UpdateIncidentExecutor,
	getIncident usecases.GetIncidentExecutor,
	listIncidents usecases.ListIncidentsExecutor,
	appendEntry usecases.AppendEntryExecutor,
	setStricken usecases.SetStrickenExecutor,
	logger logger.Interface,
) *IncidentHandler {
	return &IncidentHandler{
		createIncident: createIncident,
		updateIncident: updateIncident,
		getIncident:    getIncident,
		listIncidents:  listIncidents,
		appendEntry:    appendEntry,
		setStricken:    setStricken,
		logger:         logger,
	}
}

type createIncidentRequest struct {
	Priority int     `json:"priority" binding:"required,gte=1,lte=5"`
	Summary  string  `json:"summary"`
	State    *string `json:"state"`

	LocationName        *string `json:"location_name"`
	LocationDescription *string `json:"location_description"`
	RadialHour          *int    `json:"radial_hour"`
	RadialMinute        *int    `json:"radial_minute"`
	Concentric          *string `json:"concentric"`

	Rangers       []string `json:"rangers"`
	IncidentTypes []string `json:"incident_types"`

	InitialReport string `json:"initial_report"`
}

func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	var req createIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create incident", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreateIncidentCommand{
		EventID:             middleware.EventIDFromContext(c),
		EventName:           middleware.EventNameFromContext(c),
		Author:              middleware.HandleFromContext(c),
		Priority:            req.Priority,
		Summary:             req.Summary,
		State:               req.State,
		LocationName:        req.LocationName,
		LocationDescription: req.LocationDescription,
		RadialHour:          req.RadialHour,
		RadialMinute:        req.RadialMinute,
		Concentric:          req.Concentric,
		Rangers:             req.Rangers,
		IncidentTypes:       req.IncidentTypes,
		InitialReport:       req.InitialReport,
	}

	result, err := h.createIncident.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header(numberHeader, strconv.Itoa(result.Number))
	utils.CreatedResponse(c, result, "Incident created successfully")
}

type updateIncidentRequest struct {
	State    *string `json:"state"`
	Priority *int    `json:"priority"`
	Summary  *string `json:"summary"`

	LocationName        *string `json:"location_name"`
	LocationDescription *string `json:"location_description"`
	RadialHour          *int    `json:"radial_hour"`
	RadialMinute        *int    `json:"radial_minute"`
	Concentric          *string `json:"concentric"`

	Rangers       []string `json:"rangers"`
	IncidentTypes []string `json:"incident_types"`
}

func (h *IncidentHandler) UpdateIncident(c *gin.Context) {
	number, err := utils.ParseIntParam(c, "number")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req updateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update incident", "number", number, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.UpdateIncidentCommand{
		EventID:             middleware.EventIDFromContext(c),
		EventName:           middleware.EventNameFromContext(c),
		Number:              number,
		Author:              middleware.HandleFromContext(c),
		State:               req.State,
		Priority:            req.Priority,
		Summary:             req.Summary,
		LocationName:        req.LocationName,
		LocationDescription: req.LocationDescription,
		RadialHour:          req.RadialHour,
		RadialMinute:        req.RadialMinute,
		Concentric:          req.Concentric,
		Rangers:             req.Rangers,
		IncidentTypes:       req.IncidentTypes,
	}

	result, err := h.updateIncident.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Incident updated successfully", result)
}

func (h *IncidentHandler) GetIncident(c *gin.Context) {
	number, err := utils.ParseIntParam(c, "number")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetIncidentQuery{
		EventID:     middleware.EventIDFromContext(c),
		Number:      number,
		ShowHistory: utils.ParseBoolQuery(c, "history"),
	}
	result, err := h.getIncident.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	query := usecases.ListIncidentsQuery{
		EventID: middleware.EventIDFromContext(c),
	}
	result, err := h.listIncidents.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Incidents, result.Total)
}

type appendEntryRequest struct {
	Text       string `json:"text" binding:"required"`
	Attachment string `json:"attachment"`
}

func (h *IncidentHandler) AppendEntry(c *gin.Context) {
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

	cmd := usecases.AppendEntryCommand{
		EventID:      middleware.EventIDFromContext(c),
		ParentKind:   string(report.ParentIncident),
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

type setStrickenRequest struct {
	Stricken *bool `json:"stricken" binding:"required"`
}

// SetEntryStricken toggles the stricken flag on any entry in the event,
// incident and field report entries alike.
func (h *IncidentHandler) SetEntryStricken(c *gin.Context) {
	entryID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req setStrickenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set stricken", "entry_id", entryID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.SetStrickenCommand{
		EventID:  middleware.EventIDFromContext(c),
		EntryID:  entryID,
		Stricken: *req.Stricken,
		Author:   middleware.HandleFromContext(c),
	}
	if err := h.setStricken.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Entry updated", nil)
}

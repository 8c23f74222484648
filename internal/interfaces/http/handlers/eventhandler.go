package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vigil/internal/application/event/usecases"
	"vigil/internal/interfaces/http/middleware"
	"vigil/internal/shared/logger"
	"vigil/internal/shared/utils"
)

// EventHandler serves the event catalogue and its access entries. The
// access entry routes are admin only; listing events is open to any
// authenticated principal.
type EventHandler struct {
	createEvent       usecases.CreateEventExecutor
	listEvents        usecases.ListEventsExecutor
	setAccessEntry    usecases.SetAccessEntryExecutor
	removeAccessEntry usecases.RemoveAccessEntryExecutor
	listAccessEntries usecases.ListAccessEntriesExecutor
	logger            logger.Interface
}

func NewEventHandler(
	createEvent usecases.CreateEventExecutor,
	listEvents usecases.ListEventsExecutor,
	setAccessEntry usecases.SetAccessEntryExecutor,
	removeAccessEntry usecases.RemoveAccessEntryExecutor,
	listAccessEntries usecases.ListAccessEntriesExecutor,
	logger logger.Interface,
) *EventHandler {
	return &EventHandler{
		createEvent:       createEvent,
		listEvents:        listEvents,
		setAccessEntry:    setAccessEntry,
		removeAccessEntry: removeAccessEntry,
		listAccessEntries: listAccessEntries,
		logger:            logger,
	}
}

type createEventRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create event", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createEvent.Execute(c.Request.Context(), usecases.CreateEventCommand{Name: req.Name})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Event created successfully")
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	result, err := h.listEvents.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Events, int64(len(result.Events)))
}

type setAccessEntryRequest struct {
	Mode       string `json:"mode" binding:"required" validate:"oneof=read write report"`
	Expression string `json:"expression" binding:"required"`
	Validity   string `json:"validity" binding:"required" validate:"oneof=always onsite"`
}

func (h *EventHandler) SetAccessEntry(c *gin.Context) {
	var req setAccessEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set access entry", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.SetAccessEntryCommand{
		EventID:    middleware.EventIDFromContext(c),
		Mode:       req.Mode,
		Expression: req.Expression,
		Validity:   req.Validity,
	}
	if err := h.setAccessEntry.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Access entry set", nil)
}

type removeAccessEntryRequest struct {
	Mode       string `json:"mode" binding:"required" validate:"oneof=read write report"`
	Expression string `json:"expression" binding:"required"`
}

func (h *EventHandler) RemoveAccessEntry(c *gin.Context) {
	var req removeAccessEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for remove access entry", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RemoveAccessEntryCommand{
		EventID:    middleware.EventIDFromContext(c),
		Mode:       req.Mode,
		Expression: req.Expression,
	}
	if err := h.removeAccessEntry.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Access entry removed", nil)
}

func (h *EventHandler) ListAccessEntries(c *gin.Context) {
	query := usecases.ListAccessEntriesQuery{
		EventID: middleware.EventIDFromContext(c),
		Mode:    c.Query("mode"),
	}
	result, err := h.listAccessEntries.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Entries, int64(len(result.Entries)))
}

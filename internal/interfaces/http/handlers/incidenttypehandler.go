package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vigil/internal/application/incidenttype/usecases"
	"vigil/internal/interfaces/http/middleware"
	"vigil/internal/shared/errors"
	"vigil/internal/shared/logger"
	"vigil/internal/shared/utils"
)

type IncidentTypeHandler struct {
	createType usecases.CreateIncidentTypeExecutor
	setHidden  usecases.SetIncidentTypeHiddenExecutor
	listTypes  usecases.ListIncidentTypesExecutor
	logger     logger.Interface
}

func NewIncidentTypeHandler(
	createType usecases.CreateIncidentTypeExecutor,
	setHidden usecases.SetIncidentTypeHiddenExecutor,
	listTypes usecases.ListIncidentTypesExecutor,
	logger logger.Interface,
) *IncidentTypeHandler {
	return &IncidentTypeHandler{
		createType: createType,
		setHidden:  setHidden,
		listTypes:  listTypes,
		logger:     logger,
	}
}

type createIncidentTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *IncidentTypeHandler) CreateIncidentType(c *gin.Context) {
	var req createIncidentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create incident type", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreateIncidentTypeCommand{
		EventID: middleware.EventIDFromContext(c),
		Name:    req.Name,
	}
	result, err := h.createType.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Incident type created successfully")
}

type setIncidentTypeHiddenRequest struct {
	Hidden *bool `json:"hidden" binding:"required"`
}

func (h *IncidentTypeHandler) SetIncidentTypeHidden(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("incident type name is required"))
		return
	}

	var req setIncidentTypeHiddenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set incident type hidden", "name", name, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.SetIncidentTypeHiddenCommand{
		EventID: middleware.EventIDFromContext(c),
		Name:    name,
		Hidden:  *req.Hidden,
	}
	if err := h.setHidden.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Incident type updated", nil)
}

func (h *IncidentTypeHandler) ListIncidentTypes(c *gin.Context) {
	query := usecases.ListIncidentTypesQuery{
		EventID:       middleware.EventIDFromContext(c),
		IncludeHidden: utils.ParseBoolQuery(c, "include_hidden"),
	}
	result, err := h.listTypes.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Types, int64(len(result.Types)))
}

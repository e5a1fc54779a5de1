package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bmya/odoo-gateway/internal/api/dto"
	"github.com/bmya/odoo-gateway/internal/api/middleware"
	"github.com/bmya/odoo-gateway/internal/domain/errors"
	"github.com/bmya/odoo-gateway/internal/tools"
)

// ToolsHandler handles tool listing and invocation requests.
type ToolsHandler struct {
	dispatcher *tools.Dispatcher
}

// NewToolsHandler creates a new ToolsHandler.
func NewToolsHandler(dispatcher *tools.Dispatcher) *ToolsHandler {
	return &ToolsHandler{
		dispatcher: dispatcher,
	}
}

// ListTools godoc
// @Summary List available tools
// @Description Returns the definitions of all Odoo tools, including their JSON input schemas
// @Tags tools
// @Produce json
// @Success 200 {object} dto.ListToolsResponse
// @Router /tools [get]
func (h *ToolsHandler) ListTools(c *gin.Context) {
	infos := h.dispatcher.Tools()

	resp := dto.ListToolsResponse{
		Tools: make([]dto.ToolInfoResponse, 0, len(infos)),
	}
	for _, info := range infos {
		resp.Tools = append(resp.Tools, dto.ToolInfoResponse{
			Name:        info.Name,
			Description: info.Description,
			InputSchema: info.InputSchema,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// CallTool godoc
// @Summary Invoke a tool
// @Description Validates the arguments against the tool's input schema and executes the matching Odoo operation
// @Tags tools
// @Accept json
// @Produce json
// @Param name path string true "Tool name"
// @Param request body dto.CallToolRequest true "Tool arguments"
// @Success 200 {object} dto.CallToolResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /tools/{name} [post]
func (h *ToolsHandler) CallTool(c *gin.Context) {
	name := c.Param("name")

	var req dto.CallToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err))
		return
	}

	args := req.Arguments
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	logger := middleware.GetRequestLogger(c)
	logger.Info().Str("tool", name).Msg("tool invocation")

	result, err := h.dispatcher.Dispatch(c.Request.Context(), name, args)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CallToolResponse{Content: result})
}

package handler

import (
	"github.com/gin-gonic/gin"

	importerapp "github.com/zencrm/backend/internal/application/importer"
)

// ImportHandler handles the external listings feed relay
type ImportHandler struct {
	BaseHandler
	importService *importerapp.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *importerapp.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// Relay runs one import relay action: "test" probes the feed, "import"
// pulls the feed and stores new listings
func (h *ImportHandler) Relay(c *gin.Context) {
	var req importerapp.RelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.importService.Relay(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

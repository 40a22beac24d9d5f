package usagehandler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/B3N14M1N/ChatAI/internal/domain/usage"
)

// UsageHandler exposes the pricing catalog
type UsageHandler struct{}

// NewUsageHandler creates a new UsageHandler
func NewUsageHandler() *UsageHandler {
	return &UsageHandler{}
}

type modelRate struct {
	Model       string `json:"model"`
	Input       string `json:"input"`
	CachedInput string `json:"cached_input"`
	Output      string `json:"output"`
}

// GetModels godoc
// @Summary List billable models
// @Description Returns the known models and their USD rates per one million tokens.
// @Tags Usage
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /v1/usage/models [get]
func (h *UsageHandler) GetModels(c *gin.Context) {
	rates := usage.Models()

	models := make([]modelRate, 0, len(rates))
	for name, rate := range rates {
		models = append(models, modelRate{
			Model:       name,
			Input:       rate.Input.String(),
			CachedInput: rate.CachedInput.String(),
			Output:      rate.Output.String(),
		})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Model < models[j].Model })

	c.JSON(http.StatusOK, gin.H{"models": models})
}

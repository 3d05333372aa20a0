package handlers

import (
	"errors"
	"net/http"
	"strings"

	"dyslexibrowse/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistHandler fronts the local AI gateway for the reading aids:
// summarization, image captioning, and text-to-speech.
type AssistHandler struct {
	log     *zap.Logger
	gateway *services.GatewayClient
}

func NewAssistHandler(log *zap.Logger, gateway *services.GatewayClient) *AssistHandler {
	return &AssistHandler{log: log, gateway: gateway}
}

func (h *AssistHandler) Summarize(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
		return
	}

	summary, err := h.gateway.Summarize(c.Request.Context(), req.Text)
	if err != nil {
		h.gatewayError(c, "summarize", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (h *AssistHandler) Caption(c *gin.Context) {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image URL provided"})
		return
	}

	caption, err := h.gateway.Caption(c.Request.Context(), req.URL)
	if err != nil {
		h.gatewayError(c, "caption", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"caption": caption})
}

func (h *AssistHandler) Speak(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
		return
	}

	audio, err := h.gateway.Speak(c.Request.Context(), req.Text)
	if err != nil {
		h.gatewayError(c, "tts", err)
		return
	}
	c.Data(http.StatusOK, "audio/mpeg", audio)
}

// gatewayError maps gateway failures onto responses the shell can surface
// inline. Timeouts get their own status so the UI can suggest retrying.
func (h *AssistHandler) gatewayError(c *gin.Context, op string, err error) {
	if errors.Is(err, services.ErrGatewayTimeout) {
		h.log.Warn("Gateway request timed out", zap.String("op", op))
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "The assistant took too long to respond"})
		return
	}
	h.log.Error("Gateway request failed", zap.String("op", op), zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": "The assistant is unavailable"})
}

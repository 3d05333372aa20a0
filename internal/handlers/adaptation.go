package handlers

import (
	"errors"
	"net/http"
	"sync"

	"dyslexibrowse/internal/bridge"
	"dyslexibrowse/internal/engine"
	"dyslexibrowse/internal/metrics"
	"dyslexibrowse/internal/models"
	"dyslexibrowse/internal/policy"
	"dyslexibrowse/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdaptationHandler drives the adaptation engine. The engine itself is
// lock-free and expects one logical controller, so the handler serializes
// Enable/ApplyDynamic/Disable behind a mutex.
type AdaptationHandler struct {
	log     *zap.Logger
	queue   *bridge.Queue
	tracker *metrics.Tracker

	mu     sync.Mutex
	engine *engine.Engine
}

func NewAdaptationHandler(log *zap.Logger, eng *engine.Engine, queue *bridge.Queue, tracker *metrics.Tracker) *AdaptationHandler {
	return &AdaptationHandler{log: log, engine: eng, queue: queue, tracker: tracker}
}

// Enable turns adaptations on from the stored profile (or a profile label
// supplied inline, for previewing a variant before re-assessment).
func (h *AdaptationHandler) Enable(c *gin.Context) {
	var req struct {
		Profile models.ProfileLabel `json:"profile"`
	}
	// Body is optional; an empty body means "use the stored profile".
	_ = c.ShouldBindJSON(&req)

	var profile *models.DyslexiaProfile
	if req.Profile != "" {
		if !req.Profile.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown profile label"})
			return
		}
		profile = &models.DyslexiaProfile{Profile: req.Profile}
	} else {
		stored, err := repository.LoadProfile(c.Request.Context())
		if errors.Is(err, repository.ErrNoProfile) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No profile stored; complete the assessment first"})
			return
		}
		if err != nil {
			h.log.Error("Failed to load profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
			return
		}
		profile = stored
	}

	h.mu.Lock()
	h.engine.Enable(c.Request.Context(), profile)
	settings := h.engine.Settings()
	h.mu.Unlock()

	if err := h.tracker.TrackAdaptation("profile styling"); err != nil && !errors.Is(err, metrics.ErrNoActiveSession) {
		h.log.Warn("Failed to track adaptation usage", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"enabled": true, "settings": settings})
}

// ApplyDynamic merges a partial dynamic update over the current override
// state and applies it.
func (h *AdaptationHandler) ApplyDynamic(c *gin.Context) {
	var patch models.DynamicPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.log.Error("Failed to bind dynamic settings", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dynamic settings"})
		return
	}

	h.mu.Lock()
	if !h.engine.Enabled() {
		h.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "Adaptations are not enabled"})
		return
	}
	next := policy.Merge(h.engine.Dynamic(), patch)
	h.engine.ApplyDynamic(c.Request.Context(), next)
	h.mu.Unlock()

	for name, used := range map[string]bool{
		"bionic reading": next.BionicReading,
		"focus mode":     next.FocusMode,
	} {
		if !used {
			continue
		}
		if err := h.tracker.TrackAdaptation(name); err != nil && !errors.Is(err, metrics.ErrNoActiveSession) {
			h.log.Warn("Failed to track adaptation usage", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"dynamic": next})
}

// Disable turns all adaptations off. Safe to call when already disabled.
func (h *AdaptationHandler) Disable(c *gin.Context) {
	h.mu.Lock()
	h.engine.Disable(c.Request.Context())
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"enabled": false})
}

// Status reports the engine's requested state.
func (h *AdaptationHandler) Status(c *gin.Context) {
	h.mu.Lock()
	enabled := h.engine.Enabled()
	dynamic := h.engine.Dynamic()
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"enabled": enabled, "dynamic": dynamic})
}

// DrainCommands hands the shell every pending injection command, oldest
// first. The shell polls this at a fixed interval and executes each
// command against the active view.
func (h *AdaptationHandler) DrainCommands(c *gin.Context) {
	commands := h.queue.Drain()
	if commands == nil {
		commands = []bridge.Command{}
	}
	c.JSON(http.StatusOK, gin.H{"commands": commands})
}

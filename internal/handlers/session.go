package handlers

import (
	"errors"
	"net/http"

	"dyslexibrowse/internal/metrics"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionIDKey = "reading_session_id"

// SessionHandler records reading sessions and serves the improvement
// summary built from the session log.
type SessionHandler struct {
	log     *zap.Logger
	tracker *metrics.Tracker
}

func NewSessionHandler(log *zap.Logger, tracker *metrics.Tracker) *SessionHandler {
	return &SessionHandler{log: log, tracker: tracker}
}

func (h *SessionHandler) Start(c *gin.Context) {
	id := h.tracker.StartSession()

	session := sessions.Default(c)
	session.Set(sessionIDKey, id)
	if err := session.Save(); err != nil {
		h.log.Warn("Failed to persist session cookie", zap.Error(err))
	}

	h.log.Info("Reading session started", zap.String("session_id", id))
	c.JSON(http.StatusOK, gin.H{"sessionId": id})
}

func (h *SessionHandler) PageVisit(c *gin.Context) {
	var req struct {
		WordCount int `json:"wordCount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.WordCount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid word count"})
		return
	}

	if err := h.tracker.TrackPageVisit(req.WordCount); err != nil {
		h.noSession(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recorded": true})
}

func (h *SessionHandler) Comprehension(c *gin.Context) {
	var req struct {
		TotalQuestions   int     `json:"totalQuestions"`
		CorrectAnswers   int     `json:"correctAnswers"`
		TotalTimeSeconds float64 `json:"totalTimeSeconds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.TotalQuestions <= 0 || req.CorrectAnswers < 0 || req.CorrectAnswers > req.TotalQuestions {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comprehension result"})
		return
	}

	if err := h.tracker.TrackComprehension(req.TotalQuestions, req.CorrectAnswers, req.TotalTimeSeconds); err != nil {
		h.noSession(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recorded": true})
}

func (h *SessionHandler) Adaptation(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No adaptation name provided"})
		return
	}

	if err := h.tracker.TrackAdaptation(req.Name); err != nil {
		h.noSession(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recorded": true})
}

func (h *SessionHandler) End(c *gin.Context) {
	var req struct {
		ComfortRating float64 `json:"comfortRating"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ComfortRating < 0 || req.ComfortRating > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comfort rating must be between 0 and 10"})
		return
	}

	record, err := h.tracker.EndSession(c.Request.Context(), req.ComfortRating)
	if err != nil {
		if errors.Is(err, metrics.ErrNoActiveSession) {
			h.noSession(c, err)
			return
		}
		h.log.Error("Failed to save reading session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reading session"})
		return
	}

	session := sessions.Default(c)
	session.Delete(sessionIDKey)
	if err := session.Save(); err != nil {
		h.log.Warn("Failed to clear session cookie", zap.Error(err))
	}

	h.log.Info("Reading session ended",
		zap.String("session_id", record.SessionID),
		zap.Float64("wpm", record.ReadingSpeed))
	c.JSON(http.StatusOK, record)
}

func (h *SessionHandler) Improvement(c *gin.Context) {
	summary, err := h.tracker.Improvement(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to compute improvement summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute improvement summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *SessionHandler) noSession(c *gin.Context, err error) {
	if errors.Is(err, metrics.ErrNoActiveSession) {
		c.JSON(http.StatusConflict, gin.H{"error": "No active reading session"})
		return
	}
	h.log.Error("Session tracking failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Session tracking failed"})
}

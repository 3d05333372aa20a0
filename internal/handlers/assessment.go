package handlers

import (
	"errors"
	"net/http"

	"dyslexibrowse/internal/classifier"
	"dyslexibrowse/internal/models"
	"dyslexibrowse/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssessmentHandler struct {
	log     *zap.Logger
	Battery *models.Battery
}

func NewAssessmentHandler(log *zap.Logger, battery *models.Battery) *AssessmentHandler {
	return &AssessmentHandler{log: log, Battery: battery}
}

// ShowBattery returns the onboarding battery content the shell renders.
func (h *AssessmentHandler) ShowBattery(c *gin.Context) {
	c.JSON(http.StatusOK, h.Battery)
}

// Submit accepts a completed assessment battery, classifies it and stores
// the resulting profile in the single slot. The raw assessment is consumed
// here and discarded; only the profile persists.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	var assessment models.AssessmentResult
	if err := c.ShouldBindJSON(&assessment); err != nil {
		h.log.Error("Failed to bind assessment data", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment data"})
		return
	}

	profile := classifier.Classify(&assessment)

	// A variance-forced mixed profile can still carry a large dominance
	// gap; log it so the two measures stay distinguishable in the data.
	if gap := classifier.DominanceGap(profile.Scores); profile.Profile == models.ProfileMixed && gap >= 25 {
		h.log.Debug("Mixed profile with high dominance gap",
			zap.Float64("gap", gap),
			zap.Float64("confidence", profile.Confidence),
		)
	}

	if err := repository.SaveProfile(c.Request.Context(), profile); err != nil {
		h.log.Error("Failed to save profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}

	h.log.Info("Assessment classified",
		zap.String("profile", string(profile.Profile)),
		zap.Float64("confidence", profile.Confidence),
	)
	c.JSON(http.StatusOK, profile)
}

// ResetProfile clears the stored profile so the onboarding battery can be
// retaken from scratch.
func (h *AssessmentHandler) ResetProfile(c *gin.Context) {
	if err := repository.DeleteProfile(c.Request.Context()); err != nil {
		h.log.Error("Failed to delete profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ShowProfile returns the stored profile, if any.
func (h *AssessmentHandler) ShowProfile(c *gin.Context) {
	profile, err := repository.LoadProfile(c.Request.Context())
	if errors.Is(err, repository.ErrNoProfile) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No profile stored; complete the assessment first"})
		return
	}
	if err != nil {
		h.log.Error("Failed to load profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

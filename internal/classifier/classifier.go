package classifier

import (
	"time"

	"dyslexibrowse/internal/models"
)

// varianceThreshold is the population variance below which the four
// dimension scores are considered too closely clustered for any single
// dimension to dominate, forcing the "mixed" profile.
const varianceThreshold = 100.0

// confidenceGap is the score separation between the top two dimensions at
// which confidence saturates at 100.
const confidenceGap = 50.0

// Classify turns a completed assessment battery into a dyslexia profile.
// It is deterministic: the same assessment always produces the same
// profile, scores and confidence (only the timestamp differs).
func Classify(assessment *models.AssessmentResult) *models.DyslexiaProfile {
	scores := CalculateScores(assessment)
	profile := determineProfile(scores)

	return &models.DyslexiaProfile{
		Profile:             profile,
		Confidence:          Confidence(scores),
		Scores:              scores,
		RecommendedFeatures: RecommendedFeatures(profile),
		Timestamp:           time.Now(),
	}
}

// CalculateScores computes all four dimension scores for an assessment.
func CalculateScores(assessment *models.AssessmentResult) models.Scores {
	return models.Scores{
		Phonological:  calculatePhonologicalScore(assessment),
		Surface:       calculateSurfaceScore(assessment),
		Visual:        calculateVisualScore(assessment),
		Comprehension: calculateComprehensionScore(assessment),
	}
}

// Each score is a sum of independently weighted penalties. The coefficients
// are fixed design constants tuned so each formula tops out near 100 under
// the worst observed inputs; the recommended-feature mappings depend on
// these exact values.

func calculatePhonologicalScore(a *models.AssessmentResult) float64 {
	// High phonological errors + slow naming = phonological dyslexia
	errorWeight := float64(a.LexicalDecision.PhonologicalErrors) / 20 * 40
	namingWeight := capAt(a.RapidNaming.AvgTime/1000*30, 30)
	hesitationWeight := float64(a.RapidNaming.Hesitations) / 10 * 30

	return clampScore(errorWeight + namingWeight + hesitationWeight)
}

func calculateSurfaceScore(a *models.AssessmentResult) float64 {
	// Slow reading + visual word form issues = surface dyslexia
	speedPenalty := (150 - a.ReadingSpeed.WPM) / 150 * 40
	if speedPenalty < 0 {
		speedPenalty = 0
	}
	accuracyPenalty := (1 - a.LexicalDecision.Accuracy) * 40
	errorWeight := float64(a.ReadingSpeed.Errors) / 10 * 20

	return clampScore(speedPenalty + accuracyPenalty + errorWeight)
}

func calculateVisualScore(a *models.AssessmentResult) float64 {
	// Poor tracking + self-reported visual stress = visual dyslexia
	trackingPenalty := (1 - a.VisualTracking.HitRate) * 35
	focusLossWeight := float64(a.VisualTracking.LostFocus) / 5 * 25
	selfReportWeight := (a.SelfReport.VisualStress + a.SelfReport.WordBlurring) / 20 * 40

	return clampScore(trackingPenalty + focusLossWeight + selfReportWeight)
}

func calculateComprehensionScore(a *models.AssessmentResult) float64 {
	// Poor comprehension despite decent decoding
	accuracyPenalty := (1 - a.Comprehension.Accuracy) * 50
	timeWeight := capAt(a.Comprehension.TimePerQuestion/30*30, 30)
	fatigueWeight := a.SelfReport.ReadingFatigue / 10 * 20

	return clampScore(accuracyPenalty + timeWeight + fatigueWeight)
}

// determineProfile picks the profile label from the computed scores. When
// the population variance of the four scores falls under the threshold, no
// dimension dominates and the profile is "mixed" regardless of the maximum.
// Otherwise the highest-scoring dimension wins, ties resolved by the fixed
// order phonological, surface, visual, comprehension.
func determineProfile(scores models.Scores) models.ProfileLabel {
	dims := scores.Dimensions()

	var sum float64
	for _, d := range dims {
		sum += d.Score
	}
	mean := sum / float64(len(dims))

	var variance float64
	for _, d := range dims {
		diff := d.Score - mean
		variance += diff * diff
	}
	variance /= float64(len(dims))

	if variance < varianceThreshold {
		return models.ProfileMixed
	}

	best := dims[0]
	for _, d := range dims[1:] {
		if d.Score > best.Score {
			best = d
		}
	}
	return best.Label
}

// Confidence measures how decisively the top dimension separates from the
// runner-up: 100 at a gap of 50 points or more, scaled linearly below.
// Note that a "mixed" profile chosen by the variance rule still reports the
// gap-derived confidence; the two deliberately measure different things.
func Confidence(scores models.Scores) float64 {
	var max, second float64
	for _, d := range scores.Dimensions() {
		if d.Score > max {
			second = max
			max = d.Score
		} else if d.Score > second {
			second = d.Score
		}
	}
	return capAt((max-second)/confidenceGap*100, 100)
}

// DominanceGap returns the raw separation between the top two scores.
// Exposed so callers can distinguish "classification confidence" from
// dimension dominance when the variance rule forced a mixed profile.
func DominanceGap(scores models.Scores) float64 {
	var max, second float64
	for _, d := range scores.Dimensions() {
		if d.Score > max {
			second = max
			max = d.Score
		} else if d.Score > second {
			second = d.Score
		}
	}
	return max - second
}

// RecommendedFeatures returns the fixed assistive-feature list for a
// profile. Static data, never derived from scores.
func RecommendedFeatures(profile models.ProfileLabel) []string {
	switch profile {
	case models.ProfilePhonological:
		return []string{"Text-to-Speech with Highlighting", "Phonetic Word Breakdown", "Audio Support", "Syllable Emphasis", "Increased Font Size"}
	case models.ProfileSurface:
		return []string{"OpenDyslexic Font", "Increased Letter Spacing", "Word Tracking Ruler", "Larger Line Height", "High Contrast Mode"}
	case models.ProfileVisual:
		return []string{"Color Overlays", "Line Focus Mode", "Tinted Background", "Reduced Animation", "Sans-serif Fonts"}
	case models.ProfileComprehension:
		return []string{"Text Chunking", "Auto-Summarization", "Key Point Highlighting", "Reading Time Estimation", "Simplified Language"}
	default:
		return []string{"Reader View", "Customizable Font", "TTS Support", "Line Highlighting", "Adjustable Spacing"}
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func capAt(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}

package metrics

import (
	"math"

	"dyslexibrowse/internal/models"
)

// recentWindow is how many trailing sessions feed the "recent" average.
const recentWindow = 5

// CalculateImprovement derives the trend summary from the ordered session
// log. Each trend is the percentage change between the first-ever session
// and the mean of the most recent sessions (up to the window size),
// computed independently for speed, comprehension and comfort. Fewer than
// two sessions means every trend is zero by definition; the totals are
// summed regardless of count.
func CalculateImprovement(sessions []models.ReadingSession) models.ImprovementSummary {
	summary := models.ImprovementSummary{SessionsCount: len(sessions)}
	for _, s := range sessions {
		summary.TotalWordsRead += s.WordsRead
		summary.TotalPagesVisited += s.PagesVisited
	}

	if len(sessions) < 2 {
		return summary
	}

	first := sessions[0]
	recent := sessions[len(sessions)-min(recentWindow, len(sessions)):]

	var speedSum, compSum, comfortSum float64
	for _, s := range recent {
		speedSum += s.ReadingSpeed
		compSum += s.ComprehensionScore
		comfortSum += s.ComfortRating
	}
	n := float64(len(recent))

	summary.ReadingSpeed = trend(first.ReadingSpeed, speedSum/n, false)
	summary.Comprehension = trend(first.ComprehensionScore, compSum/n, true)
	summary.Comfort = trend(first.ComfortRating, comfortSum/n, true)
	return summary
}

// trend computes the rounded percentage change from a baseline. A zero
// baseline yields zero, except for metrics that start from nothing
// (comprehension, comfort) where any recent signal counts as full
// improvement.
func trend(baseline, recentAvg float64, fullOnZeroBaseline bool) float64 {
	if baseline > 0 {
		return math.Round((recentAvg - baseline) / baseline * 100)
	}
	if fullOnZeroBaseline && recentAvg > 0 {
		return 100
	}
	return 0
}

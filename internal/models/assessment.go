// assessment.go
package models

// AssessmentResult aggregates the six sub-test measurements captured by the
// onboarding battery. The shell builds it incrementally as each sub-test
// finishes and submits the frozen record once the battery is complete.
type AssessmentResult struct {
	ReadingSpeed    ReadingSpeedResult    `json:"readingSpeed"`
	LexicalDecision LexicalDecisionResult `json:"lexicalDecision"`
	VisualTracking  VisualTrackingResult  `json:"visualTracking"`
	RapidNaming     RapidNamingResult     `json:"rapidNaming"`
	Comprehension   ComprehensionResult   `json:"comprehension"`
	SelfReport      SelfReportResult      `json:"selfReport"`
}

// ReadingSpeedResult holds the timed passage reading measurements.
type ReadingSpeedResult struct {
	WPM      float64 `json:"wpm"`
	Errors   int     `json:"errors"`
	Duration float64 `json:"duration"` // seconds
}

// LexicalDecisionResult holds the word/pseudoword decision measurements.
type LexicalDecisionResult struct {
	Accuracy           float64 `json:"accuracy"`     // [0,1]
	ReactionTime       float64 `json:"reactionTime"` // ms
	PhonologicalErrors int     `json:"phonologicalErrors"`
}

// VisualTrackingResult holds the moving-target tracking measurements.
type VisualTrackingResult struct {
	HitRate         float64 `json:"hitRate"`         // [0,1]
	LatencyVariance float64 `json:"latencyVariance"` // ms^2
	LostFocus       int     `json:"lostFocus"`
}

// RapidNamingResult holds the rapid automatized naming measurements.
type RapidNamingResult struct {
	AvgTime     float64 `json:"avgTime"` // ms
	Hesitations int     `json:"hesitations"`
	TotalTime   float64 `json:"totalTime"` // ms
}

// ComprehensionResult holds the passage comprehension measurements.
type ComprehensionResult struct {
	Accuracy        float64 `json:"accuracy"`        // [0,1]
	TimePerQuestion float64 `json:"timePerQuestion"` // seconds
	TotalQuestions  int     `json:"totalQuestions"`
}

// SelfReportResult holds the five Likert ratings, each in [1,10].
type SelfReportResult struct {
	VisualStress     float64 `json:"visualStress"`
	ReadingFatigue   float64 `json:"readingFatigue"`
	WordBlurring     float64 `json:"wordBlurring"`
	LineTracking     float64 `json:"lineTracking"`
	ColorSensitivity float64 `json:"colorSensitivity"`
}

package models

import "time"

// ProfileLabel is the classified dyslexia subtype. The five labels are the
// complete set; nothing extends them at runtime.
type ProfileLabel string

const (
	ProfilePhonological  ProfileLabel = "phonological"
	ProfileSurface       ProfileLabel = "surface"
	ProfileVisual        ProfileLabel = "visual"
	ProfileComprehension ProfileLabel = "comprehension"
	ProfileMixed         ProfileLabel = "mixed"
)

// Valid reports whether the label is one of the five known profiles.
func (p ProfileLabel) Valid() bool {
	switch p {
	case ProfilePhonological, ProfileSurface, ProfileVisual, ProfileComprehension, ProfileMixed:
		return true
	}
	return false
}

// Scores maps the four profile dimensions to a [0,100] severity value.
// Recomputed on every classification, never mutated afterwards.
type Scores struct {
	Phonological  float64 `json:"phonological"`
	Surface       float64 `json:"surface"`
	Visual        float64 `json:"visual"`
	Comprehension float64 `json:"comprehension"`
}

// Dimensions returns the scores in the fixed tie-break order used by the
// classifier: phonological, surface, visual, comprehension.
func (s Scores) Dimensions() []ScoredDimension {
	return []ScoredDimension{
		{ProfilePhonological, s.Phonological},
		{ProfileSurface, s.Surface},
		{ProfileVisual, s.Visual},
		{ProfileComprehension, s.Comprehension},
	}
}

// ScoredDimension pairs a dimension label with its computed score.
type ScoredDimension struct {
	Label ProfileLabel
	Score float64
}

// DyslexiaProfile is the persisted decision artifact produced by the
// classifier. One profile exists per user and a re-assessment overwrites it.
type DyslexiaProfile struct {
	ID                  uint         `json:"-" gorm:"primaryKey"`
	Profile             ProfileLabel `json:"profile"`
	Confidence          float64      `json:"confidence"`
	Scores              Scores       `json:"scores" gorm:"serializer:json"`
	RecommendedFeatures []string     `json:"recommendedFeatures" gorm:"serializer:json"`
	Timestamp           time.Time    `json:"timestamp"`
}

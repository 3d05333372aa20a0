package classifier_test

import (
	"math"
	"testing"

	"dyslexibrowse/internal/classifier"
	"dyslexibrowse/internal/models"
)

func TestClassifyIsDeterministic(t *testing.T) {
	t.Parallel()

	a := surfaceHeavyAssessment()
	first := classifier.Classify(a)
	second := classifier.Classify(a)

	if first.Profile != second.Profile {
		t.Fatalf("profile changed between runs: %q vs %q", first.Profile, second.Profile)
	}
	if first.Confidence != second.Confidence {
		t.Fatalf("confidence changed between runs: %v vs %v", first.Confidence, second.Confidence)
	}
	if first.Scores != second.Scores {
		t.Fatalf("scores changed between runs: %+v vs %+v", first.Scores, second.Scores)
	}
}

func TestScoresStayWithinBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		assessment *models.AssessmentResult
	}{
		{"all zero", &models.AssessmentResult{}},
		{"all maximal", &models.AssessmentResult{
			ReadingSpeed:    models.ReadingSpeedResult{WPM: 0, Errors: 50, Duration: 600},
			LexicalDecision: models.LexicalDecisionResult{Accuracy: 0, ReactionTime: 5000, PhonologicalErrors: 100},
			VisualTracking:  models.VisualTrackingResult{HitRate: 0, LatencyVariance: 1e6, LostFocus: 50},
			RapidNaming:     models.RapidNamingResult{AvgTime: 10000, Hesitations: 100, TotalTime: 100000},
			Comprehension:   models.ComprehensionResult{Accuracy: 0, TimePerQuestion: 300, TotalQuestions: 5},
			SelfReport:      models.SelfReportResult{VisualStress: 10, ReadingFatigue: 10, WordBlurring: 10, LineTracking: 10, ColorSensitivity: 10},
		}},
		{"fast fluent reader", &models.AssessmentResult{
			ReadingSpeed:    models.ReadingSpeedResult{WPM: 300, Duration: 60},
			LexicalDecision: models.LexicalDecisionResult{Accuracy: 1, ReactionTime: 400},
			VisualTracking:  models.VisualTrackingResult{HitRate: 1},
			Comprehension:   models.ComprehensionResult{Accuracy: 1, TimePerQuestion: 5, TotalQuestions: 5},
			SelfReport:      models.SelfReportResult{VisualStress: 1, ReadingFatigue: 1, WordBlurring: 1, LineTracking: 1, ColorSensitivity: 1},
		}},
	}

	for _, tc := range cases {
		scores := classifier.CalculateScores(tc.assessment)
		for _, d := range scores.Dimensions() {
			if d.Score < 0 || d.Score > 100 {
				t.Errorf("%s: %s score %v out of [0,100]", tc.name, d.Label, d.Score)
			}
		}
	}
}

func TestClusteredScoresProduceMixedProfile(t *testing.T) {
	t.Parallel()

	// This battery yields scores {50, 52, 49, 51}: population variance
	// ~1.25, well under the threshold, so the profile must be mixed even
	// though surface is the numeric maximum.
	a := &models.AssessmentResult{
		ReadingSpeed:    models.ReadingSpeedResult{WPM: 0, Errors: 0, Duration: 120},   // surface +40
		LexicalDecision: models.LexicalDecisionResult{Accuracy: 0.7, PhonologicalErrors: 25}, // surface +12, phonological +50
		VisualTracking:  models.VisualTrackingResult{HitRate: 1, LostFocus: 5},         // visual +25
		RapidNaming:     models.RapidNamingResult{AvgTime: 0, Hesitations: 0},
		Comprehension:   models.ComprehensionResult{Accuracy: 0.5, TimePerQuestion: 20, TotalQuestions: 5}, // comprehension +45
		SelfReport:      models.SelfReportResult{VisualStress: 6, WordBlurring: 6, ReadingFatigue: 3},      // visual +24, comprehension +6
	}

	want := models.Scores{Phonological: 50, Surface: 52, Visual: 49, Comprehension: 51}
	got := classifier.CalculateScores(a)
	for i, d := range got.Dimensions() {
		if math.Abs(d.Score-want.Dimensions()[i].Score) > 1e-9 {
			t.Fatalf("fixture scores %+v, wanted %+v", got, want)
		}
	}

	p := classifier.Classify(a)
	if p.Profile != models.ProfileMixed {
		t.Fatalf("expected mixed profile for clustered scores, got %q (scores %+v)", p.Profile, p.Scores)
	}
}

func TestDominantDimensionWinsWithFullConfidence(t *testing.T) {
	t.Parallel()

	a := &models.AssessmentResult{
		// Drive phonological to ~90: 20 phonological errors is the full 40
		// points, 1s naming caps at 30, then hesitations add the rest.
		LexicalDecision: models.LexicalDecisionResult{Accuracy: 0.98, PhonologicalErrors: 20},
		RapidNaming:     models.RapidNamingResult{AvgTime: 1000, Hesitations: 7},
		ReadingSpeed:    models.ReadingSpeedResult{WPM: 160, Errors: 0, Duration: 60},
		VisualTracking:  models.VisualTrackingResult{HitRate: 0.95},
		Comprehension:   models.ComprehensionResult{Accuracy: 0.95, TimePerQuestion: 4, TotalQuestions: 5},
		SelfReport:      models.SelfReportResult{VisualStress: 1, ReadingFatigue: 1, WordBlurring: 1, LineTracking: 1, ColorSensitivity: 1},
	}

	p := classifier.Classify(a)
	if p.Profile != models.ProfilePhonological {
		t.Fatalf("expected phonological profile, got %q (scores %+v)", p.Profile, p.Scores)
	}
	if p.Scores.Phonological < 85 {
		t.Fatalf("expected phonological score near 90, got %v", p.Scores.Phonological)
	}
	// Gap of 80+ points saturates confidence at 100.
	if p.Confidence != 100 {
		t.Fatalf("expected confidence 100, got %v", p.Confidence)
	}
}

func TestConfidenceMonotonicInGap(t *testing.T) {
	t.Parallel()

	prev := -1.0
	for gap := 0.0; gap <= 80; gap += 5 {
		scores := models.Scores{Phonological: 10 + gap, Surface: 10, Visual: 0, Comprehension: 0}
		c := classifier.Confidence(scores)
		if c < 0 || c > 100 {
			t.Fatalf("confidence %v out of range at gap %v", c, gap)
		}
		if c < prev {
			t.Fatalf("confidence decreased from %v to %v at gap %v", prev, c, gap)
		}
		prev = c
	}
}

func TestSurfaceHeavyEndToEnd(t *testing.T) {
	t.Parallel()

	p := classifier.Classify(surfaceHeavyAssessment())
	if p.Profile != models.ProfileSurface {
		t.Fatalf("expected surface profile, got %q (scores %+v)", p.Profile, p.Scores)
	}
	if len(p.RecommendedFeatures) != 5 {
		t.Fatalf("expected five recommended features, got %d", len(p.RecommendedFeatures))
	}
	if p.RecommendedFeatures[0] != "OpenDyslexic Font" {
		t.Fatalf("unexpected first surface feature: %q", p.RecommendedFeatures[0])
	}
}

func TestRecommendedFeaturesAreFixedPerLabel(t *testing.T) {
	t.Parallel()

	labels := []models.ProfileLabel{
		models.ProfilePhonological,
		models.ProfileSurface,
		models.ProfileVisual,
		models.ProfileComprehension,
		models.ProfileMixed,
	}
	seen := make(map[string]bool)
	for _, label := range labels {
		features := classifier.RecommendedFeatures(label)
		if len(features) != 5 {
			t.Fatalf("%s: expected 5 features, got %d", label, len(features))
		}
		key := features[0]
		if seen[key] {
			t.Fatalf("%s: feature list not distinct (leads with %q)", label, key)
		}
		seen[key] = true
	}
}

// surfaceHeavyAssessment is the surface-dominant case: very slow reading,
// poor lexical accuracy, several reading errors, low signal elsewhere.
func surfaceHeavyAssessment() *models.AssessmentResult {
	return &models.AssessmentResult{
		ReadingSpeed:    models.ReadingSpeedResult{WPM: 40, Errors: 5, Duration: 120},
		LexicalDecision: models.LexicalDecisionResult{Accuracy: 0.5, ReactionTime: 900, PhonologicalErrors: 1},
		VisualTracking:  models.VisualTrackingResult{HitRate: 0.9, LostFocus: 0},
		RapidNaming:     models.RapidNamingResult{AvgTime: 200, Hesitations: 0, TotalTime: 4000},
		Comprehension:   models.ComprehensionResult{Accuracy: 0.9, TimePerQuestion: 5, TotalQuestions: 5},
		SelfReport:      models.SelfReportResult{VisualStress: 1, ReadingFatigue: 1, WordBlurring: 1, LineTracking: 1, ColorSensitivity: 1},
	}
}

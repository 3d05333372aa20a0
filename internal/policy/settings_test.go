package policy_test

import (
	"testing"

	"dyslexibrowse/internal/models"
	"dyslexibrowse/internal/policy"
)

func TestDeriveCoversAllLabels(t *testing.T) {
	t.Parallel()

	labels := []models.ProfileLabel{
		models.ProfilePhonological,
		models.ProfileSurface,
		models.ProfileVisual,
		models.ProfileComprehension,
		models.ProfileMixed,
	}

	type affordances struct{ tts, highlight, reader bool }
	seen := make(map[affordances][]models.ProfileLabel)
	for _, label := range labels {
		s := policy.Derive(label)
		if s.FontFamily == "" || s.BackgroundColor == "" {
			t.Fatalf("%s: incomplete settings %+v", label, s)
		}
		if s.FontSize < 16 || s.FontSize > 18 {
			t.Errorf("%s: font size %d outside 16-18px", label, s.FontSize)
		}
		if s.LineHeight < 1.6 || s.LineHeight > 2.1 {
			t.Errorf("%s: line height %v outside 1.6-2.1", label, s.LineHeight)
		}
		combo := affordances{s.EnableTTS, s.EnableLineHighlight, s.EnableReaderView}
		seen[combo] = append(seen[combo], label)
	}

	// Visual and surface share highlight-only booleans but differ in
	// overlay; all other combinations must be unique outright.
	for combo, who := range seen {
		if len(who) < 2 {
			continue
		}
		overlays := make(map[string]bool)
		for _, label := range who {
			overlays[policy.Derive(label).ColorOverlay] = true
		}
		if len(overlays) != len(who) {
			t.Errorf("labels %v share affordance combination %+v", who, combo)
		}
	}
}

func TestDeriveSurfaceVariant(t *testing.T) {
	t.Parallel()

	s := policy.Derive(models.ProfileSurface)
	if !s.EnableLineHighlight || s.EnableTTS || s.EnableReaderView {
		t.Fatalf("surface variant booleans wrong: %+v", s)
	}
	if s.WordSpacing != 0.28 || s.LetterSpacing != 0.14 {
		t.Fatalf("surface variant spacing wrong: %+v", s)
	}
}

func TestDerivePhonologicalEnablesTTS(t *testing.T) {
	t.Parallel()

	s := policy.Derive(models.ProfilePhonological)
	if !s.EnableTTS || !s.EnableLineHighlight {
		t.Fatalf("phonological variant booleans wrong: %+v", s)
	}
}

func TestMergeKeepsAbsentFields(t *testing.T) {
	t.Parallel()

	prior := models.DynamicSettings{
		FontSize:      18,
		LineHeight:    1.9,
		LetterSpacing: 0.08,
		WordSpacing:   0.15,
		BionicReading: true,
		FocusMode:     false,
	}

	size := 24
	next := policy.Merge(prior, models.DynamicPatch{FontSize: &size})

	if next.FontSize != 24 {
		t.Fatalf("patched field not applied: %+v", next)
	}
	prior.FontSize = 24
	if next != prior {
		t.Fatalf("unpatched fields changed: %+v", next)
	}
}

func TestMergeIsLastWriterWins(t *testing.T) {
	t.Parallel()

	var s models.DynamicSettings
	on, off := true, false
	s = policy.Merge(s, models.DynamicPatch{BionicReading: &on, FocusMode: &on})
	s = policy.Merge(s, models.DynamicPatch{FocusMode: &off})

	if !s.BionicReading {
		t.Fatalf("bionic flag lost across merges: %+v", s)
	}
	if s.FocusMode {
		t.Fatalf("focus flag should reflect last write: %+v", s)
	}
}

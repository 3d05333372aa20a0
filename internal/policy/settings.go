// Package policy maps a classified profile to a concrete rendering
// configuration, and merges live user adjustments over it. Pure lookup
// logic; the adaptation engine turns the result into injectable payloads.
package policy

import "dyslexibrowse/internal/models"

// dyslexiaFontStack enforces OpenDyslexic as the primary font for every
// profile while adaptations are enabled.
const dyslexiaFontStack = "'OpenDyslexic', system-ui, sans-serif"

// Derive returns the adaptation settings for a profile label. Each of the
// five labels activates a distinct combination of assistive affordances
// matching its recommended-feature list; "mixed" and any unknown label fall
// back to the balanced default variant.
func Derive(label models.ProfileLabel) models.AdaptationSettings {
	base := models.AdaptationSettings{
		FontFamily:      dyslexiaFontStack,
		FontSize:        16,
		LineHeight:      1.6,
		LetterSpacing:   0.05,
		WordSpacing:     0.1,
		BackgroundColor: "#FFFFFF",
		TextColor:       "#333333",
		ColorOverlay:    "none",
	}

	switch label {
	case models.ProfilePhonological:
		// Audio-first: TTS with line highlighting for tracking along.
		base.FontSize = 18
		base.LineHeight = 1.9
		base.LetterSpacing = 0.08
		base.WordSpacing = 0.15
		base.BackgroundColor = "#FDFDF8"
		base.EnableTTS = true
		base.EnableLineHighlight = true
	case models.ProfileSurface:
		// Maximum spacing to separate visually similar word forms.
		base.FontSize = 17
		base.LineHeight = 2.1
		base.LetterSpacing = 0.14
		base.WordSpacing = 0.28
		base.BackgroundColor = "#F9F9F9"
		base.EnableLineHighlight = true
	case models.ProfileVisual:
		// Tinted background and overlay to reduce visual stress.
		base.FontSize = 17
		base.LineHeight = 1.8
		base.LetterSpacing = 0.06
		base.BackgroundColor = "#F5F5DC"
		base.TextColor = "#2C2C2C"
		base.ColorOverlay = "rgba(255, 248, 220, 0.25)"
		base.EnableLineHighlight = true
	case models.ProfileComprehension:
		// Reader-view chunking to break text into digestible blocks.
		base.FontSize = 17
		base.LineHeight = 2.0
		base.LetterSpacing = 0.04
		base.WordSpacing = 0.12
		base.EnableReaderView = true
	default:
		base.FontSize = 17
		base.LineHeight = 1.8
		base.LetterSpacing = 0.06
		base.WordSpacing = 0.12
		base.BackgroundColor = "#FAFAFA"
	}

	return base
}

// DefaultDynamic returns the dynamic override state used before the user
// has touched any control, seeded from the profile baseline.
func DefaultDynamic(base models.AdaptationSettings) models.DynamicSettings {
	return models.DynamicSettings{
		FontSize:      base.FontSize,
		LineHeight:    base.LineHeight,
		LetterSpacing: base.LetterSpacing,
		WordSpacing:   base.WordSpacing,
	}
}

// Merge applies a partial update over prior dynamic settings. Absent fields
// retain their prior value; set fields win. Range validation is the
// caller's contract, not enforced here.
func Merge(prior models.DynamicSettings, patch models.DynamicPatch) models.DynamicSettings {
	next := prior
	if patch.FontSize != nil {
		next.FontSize = *patch.FontSize
	}
	if patch.LineHeight != nil {
		next.LineHeight = *patch.LineHeight
	}
	if patch.LetterSpacing != nil {
		next.LetterSpacing = *patch.LetterSpacing
	}
	if patch.WordSpacing != nil {
		next.WordSpacing = *patch.WordSpacing
	}
	if patch.BionicReading != nil {
		next.BionicReading = *patch.BionicReading
	}
	if patch.FocusMode != nil {
		next.FocusMode = *patch.FocusMode
	}
	return next
}

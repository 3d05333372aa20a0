package engine

import (
	"fmt"
	"strings"

	"dyslexibrowse/internal/models"
)

// fontFaceCSS registers the OpenDyslexic faces. Installed once per enable
// under its own id so the profile stylesheet can be replaced without
// re-downloading fonts.
const fontFaceCSS = `@font-face {
  font-family: 'OpenDyslexic';
  src: url('https://cdn.jsdelivr.net/gh/antijingoist/open-dyslexic/otf/OpenDyslexic3-Regular.otf') format('opentype');
  font-weight: 400;
  font-style: normal;
}
@font-face {
  font-family: 'OpenDyslexic';
  src: url('https://cdn.jsdelivr.net/gh/antijingoist/open-dyslexic/otf/OpenDyslexic3-Bold.otf') format('opentype');
  font-weight: 700;
  font-style: normal;
}`

// BuildProfileCSS renders the profile-derived stylesheet: global font,
// spacing and color rules, plus the line-highlight, color-overlay and
// reader-view blocks when the corresponding flags are set.
func BuildProfileCSS(s models.AdaptationSettings) string {
	var b strings.Builder

	fmt.Fprintf(&b, `/* DyslexiBrowse - adaptive reading styles */
:root {
  --dyslexia-font: %s;
  --dyslexia-size: %dpx;
  --dyslexia-line-height: %g;
  --dyslexia-letter-spacing: %gem;
  --dyslexia-word-spacing: %gem;
  --dyslexia-bg: %s;
  --dyslexia-color: %s;
}

body, body *,
p, span, div, a, li, td, th, h1, h2, h3, h4, h5, h6,
input, textarea, button, select {
  font-family: var(--dyslexia-font) !important;
  line-height: var(--dyslexia-line-height) !important;
  letter-spacing: var(--dyslexia-letter-spacing) !important;
  word-spacing: var(--dyslexia-word-spacing) !important;
}

body {
  background-color: var(--dyslexia-bg) !important;
  color: var(--dyslexia-color) !important;
  font-size: var(--dyslexia-size) !important;
}

p, article, main {
  max-width: 75ch !important;
  margin-left: auto !important;
  margin-right: auto !important;
}

.dyslexia-tts-highlight {
  background-color: rgba(255, 235, 59, 0.6) !important;
  padding: 2px 4px !important;
  border-radius: 3px !important;
  box-shadow: 0 0 0 2px rgba(255, 193, 7, 0.3) !important;
  transition: all 0.2s ease !important;
}
`, s.FontFamily, s.FontSize, s.LineHeight, s.LetterSpacing, s.WordSpacing, s.BackgroundColor, s.TextColor)

	if s.EnableLineHighlight {
		b.WriteString(`
p:hover, li:hover, div:hover {
  background: linear-gradient(
    to bottom,
    transparent 0%,
    transparent 20%,
    rgba(227, 242, 253, 0.4) 20%,
    rgba(227, 242, 253, 0.4) 80%,
    transparent 80%,
    transparent 100%
  ) !important;
}
`)
	}

	if s.ColorOverlay != "none" && s.ColorOverlay != "" {
		fmt.Fprintf(&b, `
body::before {
  content: '';
  position: fixed;
  top: 0;
  left: 0;
  right: 0;
  bottom: 0;
  background: %s !important;
  pointer-events: none !important;
  z-index: 999999 !important;
  mix-blend-mode: multiply;
}
`, s.ColorOverlay)
	}

	if s.EnableReaderView {
		b.WriteString(`
article p,
main p,
.content p {
  margin-bottom: 1.8em !important;
  padding: 0.8em !important;
  border-left: 4px solid rgba(102, 126, 234, 0.3) !important;
  background: rgba(245, 247, 250, 0.5) !important;
  border-radius: 4px !important;
}

h1, h2, h3 {
  margin-top: 1.5em !important;
  margin-bottom: 0.8em !important;
  padding-bottom: 0.4em !important;
  border-bottom: 2px solid rgba(102, 126, 234, 0.2) !important;
}
`)
	}

	// Calm animations and keep focus/links legible regardless of profile.
	b.WriteString(`
*, *::before, *::after {
  animation-duration: 0.01ms !important;
  animation-iteration-count: 1 !important;
  transition-duration: 0.15s !important;
}

*:focus {
  outline: 3px solid #667eea !important;
  outline-offset: 3px !important;
  border-radius: 2px !important;
}

a {
  text-decoration: underline !important;
  text-decoration-thickness: 2px !important;
  text-underline-offset: 3px !important;
  font-weight: 500 !important;
}

ul, ol { padding-left: 2em !important; }
li { margin-bottom: 0.8em !important; padding-left: 0.5em !important; }

table { border-collapse: separate !important; border-spacing: 4px !important; }
td, th {
  padding: 0.8em 1em !important;
  background: rgba(255, 255, 255, 0.6) !important;
  border: 1px solid rgba(0, 0, 0, 0.1) !important;
}
th { font-weight: 600 !important; background: rgba(102, 126, 234, 0.1) !important; }
`)

	return b.String()
}

// BuildDynamicCSS renders the user-control stylesheet. It carries only
// size and spacing so it can be toggled without recomputing the profile
// stylesheet, and vice versa.
func BuildDynamicCSS(d models.DynamicSettings) string {
	return fmt.Sprintf(`/* DyslexiBrowse - dynamic user controls */
body, body *, p, span, div, a, li, td, th, h1, h2, h3, h4, h5, h6 {
  font-size: %dpx !important;
  line-height: %g !important;
  letter-spacing: %gem !important;
  word-spacing: %gem !important;
}
`, d.FontSize, d.LineHeight, d.LetterSpacing, d.WordSpacing)
}

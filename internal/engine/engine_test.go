package engine_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"dyslexibrowse/internal/engine"
	"dyslexibrowse/internal/models"

	"go.uber.org/zap"
)

// fakeSink records every sink call so tests can assert on exactly which
// named resources and scripts the engine produced.
type fakeSink struct {
	styles  map[string]string // id -> last injected css
	removed []string
	scripts []string
	fail    bool
}

func newFakeSink() *fakeSink {
	return &fakeSink{styles: make(map[string]string)}
}

func (f *fakeSink) InjectStyle(_ context.Context, id, css string) error {
	if f.fail {
		return errors.New("sink unavailable")
	}
	f.styles[id] = css
	return nil
}

func (f *fakeSink) RemoveStyle(_ context.Context, id string) error {
	if f.fail {
		return errors.New("sink unavailable")
	}
	delete(f.styles, id)
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeSink) RunScript(_ context.Context, code string) error {
	if f.fail {
		return errors.New("sink unavailable")
	}
	f.scripts = append(f.scripts, code)
	return nil
}

func newTestEngine() (*engine.Engine, *fakeSink) {
	sink := newFakeSink()
	return engine.New(zap.NewNop(), sink, sink), sink
}

func phonologicalProfile() *models.DyslexiaProfile {
	return &models.DyslexiaProfile{
		Profile:    models.ProfilePhonological,
		Confidence: 80,
	}
}

func TestEnableInstallsNamedResourcesAndWatch(t *testing.T) {
	t.Parallel()

	eng, sink := newTestEngine()
	eng.Enable(context.Background(), phonologicalProfile())

	if !eng.Enabled() {
		t.Fatalf("engine should report enabled")
	}
	if _, ok := sink.styles[engine.StyleIDProfile]; !ok {
		t.Fatalf("profile style resource not installed; have %v", keys(sink.styles))
	}
	if _, ok := sink.styles[engine.StyleIDFontFace]; !ok {
		t.Fatalf("font-face resource not installed")
	}
	if len(sink.scripts) != 1 || !strings.Contains(sink.scripts[0], "MutationObserver") {
		t.Fatalf("expected a single mutation watch script, got %d scripts", len(sink.scripts))
	}
	// The watch must skip elements the engine injects itself.
	if !strings.Contains(sink.scripts[0], "lexi-focus-tooltip") {
		t.Fatalf("watch script does not exclude engine-injected elements")
	}
}

func TestEnableTwiceReplacesInsteadOfStacking(t *testing.T) {
	t.Parallel()

	eng, sink := newTestEngine()
	eng.Enable(context.Background(), phonologicalProfile())
	first := sink.styles[engine.StyleIDProfile]

	eng.Enable(context.Background(), &models.DyslexiaProfile{Profile: models.ProfileVisual})
	second := sink.styles[engine.StyleIDProfile]

	if first == second {
		t.Fatalf("re-enable with another profile should replace the payload")
	}
	if len(sink.styles) != 2 {
		t.Fatalf("expected exactly the two fixed style ids, got %v", keys(sink.styles))
	}
}

func TestProfileCSSConditionalBlocks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label        models.ProfileLabel
		wantOverlay  bool
		wantReader   bool
		wantHighlight bool
	}{
		{models.ProfilePhonological, false, false, true},
		{models.ProfileSurface, false, false, true},
		{models.ProfileVisual, true, false, true},
		{models.ProfileComprehension, false, true, false},
		{models.ProfileMixed, false, false, false},
	}

	for _, tc := range cases {
		eng, sink := newTestEngine()
		eng.Enable(context.Background(), &models.DyslexiaProfile{Profile: tc.label})
		css := sink.styles[engine.StyleIDProfile]

		if got := strings.Contains(css, "mix-blend-mode"); got != tc.wantOverlay {
			t.Errorf("%s: overlay block present=%v, want %v", tc.label, got, tc.wantOverlay)
		}
		if got := strings.Contains(css, "border-left"); got != tc.wantReader {
			t.Errorf("%s: reader-view block present=%v, want %v", tc.label, got, tc.wantReader)
		}
		if got := strings.Contains(css, "p:hover"); got != tc.wantHighlight {
			t.Errorf("%s: line-highlight block present=%v, want %v", tc.label, got, tc.wantHighlight)
		}
	}
}

func TestApplyDynamicUsesIndependentResource(t *testing.T) {
	t.Parallel()

	eng, sink := newTestEngine()
	eng.Enable(context.Background(), phonologicalProfile())
	profileCSS := sink.styles[engine.StyleIDProfile]

	eng.ApplyDynamic(context.Background(), models.DynamicSettings{
		FontSize: 24, LineHeight: 2.0, LetterSpacing: 0.1, WordSpacing: 0.2,
	})

	dynamicCSS, ok := sink.styles[engine.StyleIDDynamic]
	if !ok {
		t.Fatalf("dynamic style resource not installed")
	}
	if !strings.Contains(dynamicCSS, "24px") {
		t.Fatalf("dynamic css missing requested font size: %s", dynamicCSS)
	}
	if sink.styles[engine.StyleIDProfile] != profileCSS {
		t.Fatalf("profile resource must not be recomputed by dynamic apply")
	}
}

func TestBionicTogglesAndFocusCleanup(t *testing.T) {
	t.Parallel()

	eng, sink := newTestEngine()
	eng.Enable(context.Background(), phonologicalProfile())

	eng.ApplyDynamic(context.Background(), models.DynamicSettings{BionicReading: true})
	applied := sink.scripts[len(sink.scripts)-2]
	if !strings.Contains(applied, "__lexiBionicApplied") || !strings.Contains(applied, "data-lexi-bionic") {
		t.Fatalf("bionic apply script missing document-scoped idempotency markers")
	}

	// Turning it off must emit the restore script.
	eng.ApplyDynamic(context.Background(), models.DynamicSettings{BionicReading: false})
	restored := sink.scripts[len(sink.scripts)-2]
	if !strings.Contains(restored, "replaceWith(document.createTextNode") {
		t.Fatalf("bionic removal script does not restore plain text: %s", restored)
	}

	// Every dynamic apply re-evaluates focus mode via its cleanup-first script.
	focus := sink.scripts[len(sink.scripts)-1]
	if !strings.Contains(focus, "__lexiFocusCleanup") {
		t.Fatalf("focus script missing cleanup handle")
	}
}

func TestBionicOffEmitsRemovalWithoutPriorApply(t *testing.T) {
	t.Parallel()

	// A fresh engine over a page that may still carry the transform from a
	// previous run. The off toggle must reach the document regardless of
	// what this instance remembers applying.
	eng, sink := newTestEngine()
	eng.Enable(context.Background(), phonologicalProfile())

	eng.ApplyDynamic(context.Background(), models.DynamicSettings{BionicReading: false})

	joined := strings.Join(sink.scripts, "\n")
	if !strings.Contains(joined, "replaceWith(document.createTextNode") {
		t.Fatalf("bionic removal must be emitted even when this engine never applied it")
	}
}

func TestApplyDynamicWhileDisabledIsIgnored(t *testing.T) {
	t.Parallel()

	eng, sink := newTestEngine()
	eng.ApplyDynamic(context.Background(), models.DynamicSettings{FontSize: 24, FocusMode: true})

	if len(sink.styles) != 0 || len(sink.scripts) != 0 {
		t.Fatalf("disabled engine must not touch the document")
	}
	if eng.Dynamic() != (models.DynamicSettings{}) {
		t.Fatalf("disabled engine must not retain override state")
	}
}

func TestDisableReversesEverything(t *testing.T) {
	t.Parallel()

	eng, sink := newTestEngine()
	eng.Enable(context.Background(), phonologicalProfile())
	eng.ApplyDynamic(context.Background(), models.DynamicSettings{BionicReading: true, FocusMode: true})

	sink.scripts = nil
	eng.Disable(context.Background())

	if eng.Enabled() {
		t.Fatalf("engine should report disabled")
	}
	if len(sink.styles) != 0 {
		t.Fatalf("style resources left behind: %v", keys(sink.styles))
	}
	joined := strings.Join(sink.scripts, "\n")
	for _, marker := range []string{"__lexiWatchCleanup", "data-lexi-bionic", "__lexiFocusCleanup"} {
		if !strings.Contains(joined, marker) {
			t.Errorf("disable did not emit cleanup for %s", marker)
		}
	}
}

func TestDisableWhenDisabledIsNoOp(t *testing.T) {
	t.Parallel()

	eng, sink := newTestEngine()
	eng.Disable(context.Background())

	if len(sink.scripts) != 0 || len(sink.removed) != 0 {
		t.Fatalf("disable on a disabled engine must not touch the document")
	}
}

func TestInjectionFailuresAreSwallowed(t *testing.T) {
	t.Parallel()

	eng, sink := newTestEngine()
	sink.fail = true

	eng.Enable(context.Background(), phonologicalProfile())
	eng.ApplyDynamic(context.Background(), models.DynamicSettings{FocusMode: true})

	// Best effort: the toggle reflects the requested state even though
	// nothing reached the document.
	if !eng.Enabled() {
		t.Fatalf("engine must stay enabled after injection failures")
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

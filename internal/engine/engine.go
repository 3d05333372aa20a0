package engine

import (
	"context"

	"dyslexibrowse/internal/models"
	"dyslexibrowse/internal/policy"

	"go.uber.org/zap"
)

// Engine drives one target document. It holds no locks: exactly one
// logical controller may call Enable/ApplyDynamic/Disable at a time, and
// racing calls on the same target are undefined by design. State that must
// survive an engine restart or a page reload lives on the document itself,
// inside the injected scripts.
type Engine struct {
	log     *zap.Logger
	styles  StyleSink
	scripts ScriptSink

	enabled  bool
	profile  *models.DyslexiaProfile
	settings models.AdaptationSettings
	dynamic  models.DynamicSettings
}

// New creates an engine over the given sinks.
func New(log *zap.Logger, styles StyleSink, scripts ScriptSink) *Engine {
	return &Engine{log: log, styles: styles, scripts: scripts}
}

// Enabled reports whether adaptations are currently applied. This reflects
// the requested state: a partially failed injection still counts as
// enabled.
func (e *Engine) Enabled() bool { return e.enabled }

// Settings returns the current profile-derived baseline.
func (e *Engine) Settings() models.AdaptationSettings { return e.settings }

// Dynamic returns the current dynamic override state.
func (e *Engine) Dynamic() models.DynamicSettings { return e.dynamic }

// Enable derives settings for the profile, installs the font-face and
// profile style resources and starts the mutation watch. Calling it while
// already enabled re-runs the full apply; the fixed resource ids make the
// second application replace the first. Injection failures are logged and
// swallowed: page content must never crash the host, so adaptation is
// allowed to partially fail silently.
func (e *Engine) Enable(ctx context.Context, profile *models.DyslexiaProfile) {
	e.profile = profile
	e.settings = policy.Derive(profile.Profile)
	if !e.enabled {
		// Seed the user controls from the fresh baseline; an already
		// enabled engine keeps the user's live adjustments.
		e.dynamic = policy.DefaultDynamic(e.settings)
	}
	e.enabled = true

	e.injectStyle(ctx, StyleIDFontFace, fontFaceCSS)
	e.injectStyle(ctx, StyleIDProfile, BuildProfileCSS(e.settings))
	e.runScript(ctx, "mutation watch", BuildWatchScript(e.settings))

	e.log.Info("Adaptations enabled",
		zap.String("profile", string(profile.Profile)),
		zap.Float64("confidence", profile.Confidence),
	)
}

// ApplyDynamic installs the user-control style resource and toggles the
// bionic-reading and focus-mode behaviors. Independent of Enable as long
// as adaptations are on: the dynamic resource has its own id, so either
// layer can change without recomputing the other. A disabled engine
// ignores the call; there is no baseline for the overrides to layer on.
func (e *Engine) ApplyDynamic(ctx context.Context, settings models.DynamicSettings) {
	if !e.enabled {
		e.log.Debug("Dynamic settings ignored while disabled")
		return
	}
	e.dynamic = settings

	e.injectStyle(ctx, StyleIDDynamic, BuildDynamicCSS(settings))

	// The off branches always emit: the document may carry a transform
	// this engine instance never applied (restart, reload race), and the
	// removal scripts are idempotent against a clean page.
	if settings.BionicReading {
		e.runScript(ctx, "bionic reading", bionicApplyScript)
	} else {
		e.runScript(ctx, "bionic reading removal", bionicRemoveScript)
	}

	e.runScript(ctx, "focus mode", BuildFocusModeScript(settings.FocusMode))
}

// Disable removes both style resources, disconnects the mutation watch,
// reverses the bionic transform, tears down focus mode and clears cached
// state. Safe to call when already disabled.
func (e *Engine) Disable(ctx context.Context) {
	if !e.enabled {
		return
	}

	e.removeStyle(ctx, StyleIDProfile)
	e.removeStyle(ctx, StyleIDDynamic)
	e.removeStyle(ctx, StyleIDFontFace)
	e.runScript(ctx, "mutation watch stop", watchStopScript)
	e.runScript(ctx, "bionic reading removal", bionicRemoveScript)
	e.runScript(ctx, "focus mode teardown", BuildFocusModeScript(false))

	e.enabled = false
	e.profile = nil
	e.settings = models.AdaptationSettings{}
	e.dynamic = models.DynamicSettings{}

	e.log.Info("Adaptations disabled")
}

func (e *Engine) injectStyle(ctx context.Context, id, css string) {
	if err := e.styles.InjectStyle(ctx, id, css); err != nil {
		e.log.Warn("Style injection failed, continuing degraded",
			zap.String("style_id", id), zap.Error(err))
	}
}

func (e *Engine) removeStyle(ctx context.Context, id string) {
	if err := e.styles.RemoveStyle(ctx, id); err != nil {
		e.log.Warn("Style removal failed, shell may fall back to reload",
			zap.String("style_id", id), zap.Error(err))
	}
}

func (e *Engine) runScript(ctx context.Context, name, code string) {
	if err := e.scripts.RunScript(ctx, code); err != nil {
		e.log.Warn("Script injection failed, continuing degraded",
			zap.String("script", name), zap.Error(err))
	}
}

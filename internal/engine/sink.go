// Package engine applies a derived rendering configuration to a live,
// externally mutating document and guarantees every effect it causes can be
// reversed. It never touches the document directly: all mutation goes
// through named, replaceable style resources and self-cleaning scripts
// delivered via the injection sinks.
package engine

import "context"

// StyleSink installs and removes named style resources on the target
// document. Re-injecting an id replaces the prior payload, which is what
// makes every apply operation reentrant.
type StyleSink interface {
	InjectStyle(ctx context.Context, id, css string) error
	RemoveStyle(ctx context.Context, id string) error
}

// ScriptSink executes a script against the target document. Scripts carry
// their own installed/cleanup state in document-scoped flags so that a
// reloaded document never desyncs from engine-local memory.
type ScriptSink interface {
	RunScript(ctx context.Context, code string) error
}

// Fixed resource identifiers. Reusing the same names on every apply means a
// second application simply replaces the first.
const (
	StyleIDFontFace = "dyslexibrowse-font-face"
	StyleIDProfile  = "dyslexibrowse-adaptive-styles"
	StyleIDDynamic  = "dyslexibrowse-dynamic-controls"
)

package engine

import (
	"fmt"

	"dyslexibrowse/internal/models"
)

// The scripts below own every DOM-behavior effect the engine causes. Each
// one keeps its installed/cleanup state on the document itself (window
// flags plus marker attributes), never in engine memory: the document can
// be reloaded out from under the engine, and a fresh script run must be
// able to tell what a previous run left behind.

// BuildWatchScript returns the mutation-watch installer. It observes
// subtree child additions and applies the baseline font, size and line
// height inline to each new element, because global rules do not always
// win against inline styles on elements the page creates later. Elements
// the engine itself injects are skipped. Re-running the script replaces
// any prior watch via its own cleanup handle.
func BuildWatchScript(s models.AdaptationSettings) string {
	return fmt.Sprintf(`(function(){
  try { if (window.__lexiWatchCleanup) { window.__lexiWatchCleanup(); } } catch(e) {}

  var OWN_IDS = {'%s':1,'%s':1,'%s':1,'lexi-focus-tooltip':1};
  function isOwn(el) {
    return !!(el.id && OWN_IDS[el.id]);
  }
  function apply(el) {
    if (el.nodeType !== Node.ELEMENT_NODE || isOwn(el)) return;
    var tag = el.nodeName;
    if (tag === 'SCRIPT' || tag === 'STYLE' || tag === 'LINK') return;
    el.style.fontFamily = %q;
    el.style.fontSize = '%dpx';
    el.style.lineHeight = '%g';
  }

  var observer = new MutationObserver(function(mutations){
    mutations.forEach(function(m){
      if (m.type !== 'childList') return;
      m.addedNodes.forEach(apply);
    });
  });
  observer.observe(document.body, { childList: true, subtree: true });
  document.documentElement.setAttribute('data-lexi-watch', 'true');

  window.__lexiWatchCleanup = function(){
    try { observer.disconnect(); } catch(e) {}
    document.documentElement.removeAttribute('data-lexi-watch');
    window.__lexiWatchCleanup = null;
  };
})();`, StyleIDFontFace, StyleIDProfile, StyleIDDynamic,
		s.FontFamily, s.FontSize, s.LineHeight)
}

// watchStopScript disconnects the mutation watch through its cleanup
// handle. The handle lives on the document, so this works even when the
// engine instance that installed the watch is gone.
const watchStopScript = `(function(){
  try { if (window.__lexiWatchCleanup) { window.__lexiWatchCleanup(); } } catch(e) {}
})();`

// bionicApplyScript performs the one-shot bionic-reading transform: every
// prose text node is rewrapped with the first ceil(len/2) characters of
// each word bolded. The window flag plus the per-node marker attribute make
// repeat runs no-ops, so repeated enables never double-wrap.
const bionicApplyScript = `(function(){
  if (window.__lexiBionicApplied) return;
  window.__lexiBionicApplied = true;
  var SKIP = {SCRIPT:1,STYLE:1,CODE:1,PRE:1,IFRAME:1,TEXTAREA:1,INPUT:1};
  function bionicWord(word) {
    if (word.length < 2) return word;
    var split = Math.ceil(word.length / 2);
    return '<strong>' + word.slice(0, split) + '</strong>' + word.slice(split);
  }
  function processNode(node) {
    if (node.nodeType === Node.TEXT_NODE && node.textContent.trim()) {
      var parent = node.parentElement;
      if (parent && !parent.hasAttribute('data-lexi-bionic') && !SKIP[parent.tagName]) {
        var html = node.textContent.split(/(\s+)/).map(function(w){
          return /\s/.test(w) ? w : bionicWord(w);
        }).join('');
        var span = document.createElement('span');
        span.setAttribute('data-lexi-bionic', 'true');
        span.innerHTML = html;
        parent.replaceChild(span, node);
      }
    } else if (node.nodeType === Node.ELEMENT_NODE && !SKIP[node.tagName]) {
      Array.prototype.slice.call(node.childNodes).forEach(processNode);
    }
  }
  processNode(document.body);
})();`

// bionicRemoveScript reverses the transform by locating every marked node
// and restoring its plain text content.
const bionicRemoveScript = `(function(){
  window.__lexiBionicApplied = false;
  document.querySelectorAll('[data-lexi-bionic]').forEach(function(el){
    el.replaceWith(document.createTextNode(el.textContent));
  });
})();`

// BuildFocusModeScript returns the focus-mode toggle. Enabling installs a
// single pointer-move listener that resolves the caret under the cursor,
// extracts the contiguous alphanumeric run at that offset and floats it in
// a tooltip. The script always tears down any prior installation first, so
// it is idempotent, and the cleanup handle it leaves on the document works
// across engine instances.
func BuildFocusModeScript(enable bool) string {
	return fmt.Sprintf(`(function(enable){
  try { if (window.__lexiFocusCleanup) { window.__lexiFocusCleanup(); } } catch(e) {}
  if (!enable) return;

  var id = 'lexi-focus-tooltip';
  var tooltip = document.getElementById(id);
  if (!tooltip) {
    tooltip = document.createElement('div');
    tooltip.id = id;
    tooltip.style.cssText = [
      'position:fixed','left:0','top:0',
      'transform:translate(-9999px,-9999px)',
      'pointer-events:none',
      'background:#111','color:#fff',
      'padding:6px 8px','border-radius:6px',
      'font-size:16px','font-weight:700',
      'box-shadow:0 4px 12px rgba(0,0,0,0.25)',
      'z-index:2147483647'
    ].join(';');
    document.body.appendChild(tooltip);
  }

  var SKIP = {SCRIPT:1,STYLE:1,CODE:1,PRE:1,IFRAME:1,CANVAS:1,VIDEO:1,AUDIO:1,INPUT:1,TEXTAREA:1};

  function wordAtPoint(x, y) {
    var range = null;
    try {
      if (document.caretRangeFromPoint) {
        range = document.caretRangeFromPoint(x, y);
      } else if (document.caretPositionFromPoint) {
        var pos = document.caretPositionFromPoint(x, y);
        if (pos) {
          range = document.createRange();
          range.setStart(pos.offsetNode, pos.offset);
        }
      }
    } catch(e) { return ''; }
    if (!range || !range.startContainer || range.startContainer.nodeType !== Node.TEXT_NODE) return '';
    var parent = range.startContainer.parentElement;
    if (!parent || SKIP[parent.nodeName]) return '';
    var text = range.startContainer.textContent || '';
    var i = Math.max(0, Math.min(range.startOffset, text.length));
    var start = i, end = i;
    while (start > 0 && /[A-Za-z0-9']/.test(text[start-1])) start--;
    while (end < text.length && /[A-Za-z0-9']/.test(text[end])) end++;
    return text.slice(start, end).trim();
  }

  function onMove(e) {
    try {
      var word = wordAtPoint(e.clientX, e.clientY);
      if (word) {
        tooltip.textContent = word;
        tooltip.style.transform = 'translate(' + (e.clientX + 14) + 'px,' + (e.clientY + 14) + 'px)';
      } else {
        tooltip.style.transform = 'translate(-9999px,-9999px)';
      }
    } catch(err) {
      tooltip.style.transform = 'translate(-9999px,-9999px)';
    }
  }

  document.addEventListener('mousemove', onMove, { passive: true });

  window.__lexiFocusCleanup = function(){
    try { document.removeEventListener('mousemove', onMove); } catch(e) {}
    try {
      var t = document.getElementById(id);
      if (t) t.remove();
    } catch(e) {}
    window.__lexiFocusCleanup = null;
  };
})(%t);`, enable)
}

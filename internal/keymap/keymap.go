// Package keymap normalizes button values and key presses into engine tokens.
//
// Keyboard keys follow the browser KeyboardEvent.key names: "Enter" evaluates,
// "Delete" and "Escape" clear. Full-width forms are folded to ASCII and the
// usual calculator glyphs (× ÷ −) map to their operators. Extra bindings can be
// layered on top from configuration.
package keymap

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/roach88/abacus/internal/calc"
)

// Action is what a key press asks for.
type Action int

const (
	// ActionIgnore means the key has no binding.
	ActionIgnore Action = iota
	// ActionToken means the key produces an engine token.
	ActionToken
	// ActionToggleHistory shows or hides the history panel.
	ActionToggleHistory
)

func (a Action) String() string {
	switch a {
	case ActionToken:
		return "token"
	case ActionToggleHistory:
		return "toggle_history"
	default:
		return "ignore"
	}
}

// Binding is the result of looking up a key.
type Binding struct {
	Action Action
	Token  calc.Token
}

var namedKeys = map[string]calc.Token{
	"Enter":  calc.Equals,
	"Delete": calc.Clear,
	"Escape": calc.Clear,
}

var glyphs = map[string]calc.Token{
	"×": calc.Token(calc.OpMul),
	"÷": calc.Token(calc.OpDiv),
	"−": calc.Token(calc.OpSub),
	"c": calc.Clear,
}

var toggleKeys = map[string]bool{
	"h": true,
	"H": true,
}

// Keymap resolves keys to bindings.
type Keymap struct {
	extra map[string]calc.Token
}

// New creates a keymap with extra bindings layered over the defaults.
// Every extra binding must map to a valid token.
func New(extra map[string]string) (*Keymap, error) {
	k := &Keymap{extra: make(map[string]calc.Token, len(extra))}
	for key, tok := range extra {
		if key == "" {
			return nil, fmt.Errorf("keymap: empty key bound to %q", tok)
		}
		t := calc.Token(tok)
		if !t.Valid() {
			return nil, fmt.Errorf("keymap: key %q bound to unknown token %q", key, tok)
		}
		k.extra[key] = t
	}
	return k, nil
}

// Default returns a keymap with only the built-in bindings.
func Default() *Keymap {
	return &Keymap{extra: map[string]calc.Token{}}
}

// Lookup resolves a single key.
func (k *Keymap) Lookup(key string) Binding {
	if tok, ok := k.extra[key]; ok {
		return Binding{Action: ActionToken, Token: tok}
	}

	folded := width.Fold.String(key)
	if tok, ok := k.extra[folded]; ok {
		return Binding{Action: ActionToken, Token: tok}
	}
	if tok, ok := namedKeys[folded]; ok {
		return Binding{Action: ActionToken, Token: tok}
	}
	if tok, ok := glyphs[folded]; ok {
		return Binding{Action: ActionToken, Token: tok}
	}
	if toggleKeys[folded] {
		return Binding{Action: ActionToggleHistory}
	}
	if tok := calc.Token(folded); tok.Valid() {
		return Binding{Action: ActionToken, Token: tok}
	}
	return Binding{Action: ActionIgnore}
}

// Bindings returns the extra bindings sorted by key.
func (k *Keymap) Bindings() []string {
	out := make([]string, 0, len(k.extra))
	for key, tok := range k.extra {
		out = append(out, key+"="+string(tok))
	}
	sort.Strings(out)
	return out
}

// Split breaks command-line words into individual keys. A word that names a key
// (Enter, Escape, Delete, or an extra binding) is kept whole; any other word is
// split into characters. Whitespace is dropped.
func (k *Keymap) Split(words ...string) []string {
	var keys []string
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, ok := namedKeys[w]; ok {
			keys = append(keys, w)
			continue
		}
		if _, ok := k.extra[w]; ok {
			keys = append(keys, w)
			continue
		}
		for _, r := range w {
			if unicode.IsSpace(r) {
				continue
			}
			keys = append(keys, string(r))
		}
	}
	return keys
}

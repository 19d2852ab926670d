// Package template holds the conversation template registry: named,
// model-family-specific rules for flattening (system, history, query) into a
// single prompt string the generation engine understands.
package template

import (
	"strings"
	"sync"

	"github.com/Laisky/errors/v2"
)

// ErrNotFound is returned by Get for unregistered template names.
var ErrNotFound = errors.New("conversation template not found")

// queryPlaceholder is substituted with the user text inside Prompt patterns.
const queryPlaceholder = "{query}"

// Conversation is one prompt-formatting rule set. Immutable once registered.
type Conversation struct {
	// Name is the unique registry key.
	Name string
	// SystemPrompt is the default system text, overridable per request.
	SystemPrompt string
	// Roles are the speaker labels (user, assistant). Informational; the
	// Prompt pattern carries the actual role tokens.
	Roles [2]string
	// Prompt is the per-turn pattern; {query} is replaced with the user text.
	// The pattern ends with the assistant role token so a generation prompt
	// can stop right before the model's reply.
	Prompt string
	// Sep separates consecutive turns.
	Sep string
	// StopStr signals end of an assistant reply. Empty means the engine's
	// default end-of-sequence token.
	StopStr string
}

// Dialog renders the turns as an alternating list: element 2k is the
// rendered user turn, element 2k+1 the raw assistant text. The system text
// (override when non-empty, else the template default) plus separator is
// prefixed exactly once, on turn 0; later turns are prefixed with the
// separator instead.
func (c *Conversation) Dialog(turns [][2]string, systemOverride string) []string {
	system := systemOverride
	if system == "" {
		system = c.SystemPrompt
	}
	if system != "" {
		system += c.Sep
	}

	convs := make([]string, 0, 2*len(turns))
	for i, turn := range turns {
		rendered := strings.ReplaceAll(c.Prompt, queryPlaceholder, turn[0])
		if i == 0 {
			convs = append(convs, system+rendered)
		} else {
			convs = append(convs, c.Sep+rendered)
		}
		convs = append(convs, turn[1])
	}
	return convs
}

// PromptFor concatenates the rendered dialog into a single generation
// prompt. A trailing turn with an empty reply leaves the prompt ending at
// the assistant role token, ready for completion.
func (c *Conversation) PromptFor(turns [][2]string, systemOverride string) string {
	return strings.Join(c.Dialog(turns, systemOverride), "")
}

var (
	mu        sync.RWMutex
	templates = make(map[string]*Conversation)
)

// Register inserts a template by name, overwriting any previous entry.
// Intended for startup-time population only; the registry is read-only once
// the process serves traffic.
func Register(c *Conversation) {
	mu.Lock()
	defer mu.Unlock()
	templates[c.Name] = c
}

// Get returns the template registered under name.
func Get(name string) (*Conversation, error) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := templates[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "template %q", name)
	}
	return c, nil
}

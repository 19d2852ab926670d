// Package compiler validates an OpenAI-style chat transcript and linearizes
// it into the (query, history, system) form the prompt templates consume,
// splicing in the ReAct tool instruction when a function manifest is present.
//
// Every error returned by Compile is a client error: the transcript itself
// violated the protocol, so callers surface it as a 400 without attempting
// generation.
package compiler

import (
	"strings"

	"github.com/Laisky/errors/v2"

	"github.com/modelgate/modelgate/relay/model"
	"github.com/modelgate/modelgate/relay/react"
)

const defaultSystem = "You are a helpful assistant."

// Compiled is the linearized form of a chat transcript.
type Compiled struct {
	// Query is the pending user question. Empty with TextCompletion set
	// means the request asks to continue the last assistant turn instead of
	// answering a new question.
	Query string
	// TextCompletion marks a continuation request (no trailing user turn).
	TextCompletion bool
	// History holds strictly alternating (user, assistant) pairs.
	History [][2]string
	// System is the effective system text.
	System string
}

// trimContent normalizes message content the way the prompt templates
// expect: leading newlines dropped, trailing whitespace dropped.
func trimContent(s string) string {
	return strings.TrimRight(strings.TrimLeft(s, "\n"), " \t\n\r")
}

// Compile validates and folds messages per the ReAct conventions:
//
//   - a leading system message becomes the effective system text;
//   - function results are appended to the preceding assistant turn as
//     "Observation:" lines (plus a trailing "Thought:" cue when last);
//   - assistant function calls are rewritten into Thought/Action/Action
//     Input lines; consecutive assistant segments collapse into one turn;
//   - when a manifest is present, the ReAct instruction is spliced onto the
//     last history turn, or onto the query when no history exists.
//
// The fold is a pure function of its inputs; input messages are not mutated.
func Compile(messages []model.Message, functions []model.Function) (*Compiled, error) {
	hasUser := false
	for i := range messages {
		if messages[i].Role == model.RoleUser {
			hasUser = true
			break
		}
	}
	if !hasUser {
		return nil, errors.New("invalid request: expecting at least one user message")
	}

	system := defaultSystem
	rest := messages
	if len(rest) > 0 && rest[0].Role == model.RoleSystem {
		system = trimContent(rest[0].Content)
		rest = rest[1:]
	}

	instruction := ""
	if len(functions) > 0 {
		var err error
		instruction, err = react.BuildInstruction(functions)
		if err != nil {
			return nil, errors.Wrap(err, "build tool instruction")
		}
	}

	folded, err := fold(rest, len(functions) > 0)
	if err != nil {
		return nil, err
	}

	query := ""
	textCompletion := true
	if n := len(folded); n > 0 && folded[n-1].Role == model.RoleUser {
		query = folded[n-1].Content
		textCompletion = false
		folded = folded[:n-1]
	}

	if len(folded)%2 != 0 {
		return nil, errors.New("invalid request: transcript does not alternate user/assistant turns")
	}

	history := make([][2]string, 0, len(folded)/2)
	for i := 0; i < len(folded); i += 2 {
		if folded[i].Role != model.RoleUser || folded[i+1].Role != model.RoleAssistant {
			return nil, errors.New("invalid request: expecting exactly one user (or function) role before every assistant role")
		}
		userMsg := trimContent(folded[i].Content)
		botMsg := trimContent(folded[i+1].Content)
		if instruction != "" && i == len(folded)-2 {
			userMsg = instruction + "\n\nQuestion: " + userMsg
			instruction = ""
		}
		history = append(history, [2]string{userMsg, botMsg})
	}

	if instruction != "" && !textCompletion {
		query = instruction + "\n\nQuestion: " + query
	}

	return &Compiled{
		Query:          query,
		TextCompletion: textCompletion,
		History:        history,
		System:         system,
	}, nil
}

// fold collapses function results and consecutive assistant segments into
// single logical turns, producing a user/assistant-only sequence.
func fold(messages []model.Message, withFunctions bool) ([]model.Message, error) {
	out := make([]model.Message, 0, len(messages))
	for idx := range messages {
		m := &messages[idx]
		content := trimContent(m.Content)

		switch m.Role {
		case model.RoleFunction:
			if len(out) == 0 || out[len(out)-1].Role != model.RoleAssistant {
				return nil, errors.New("invalid request: expecting role assistant before role function")
			}
			out[len(out)-1].Content += "\nObservation: " + content
			if idx == len(messages)-1 {
				// Prime the model to continue reasoning from the result.
				out[len(out)-1].Content += "\nThought:"
			}

		case model.RoleAssistant:
			if len(out) == 0 {
				return nil, errors.New("invalid request: expecting role user before role assistant")
			}
			if m.FunctionCall == nil {
				if withFunctions {
					content = "Thought: I now know the final answer.\nFinal Answer: " + content
				}
			} else {
				if !strings.HasPrefix(content, "Thought:") {
					content = "Thought: " + content
				}
				content += "\nAction: " + m.FunctionCall.Name + "\nAction Input: " + m.FunctionCall.Arguments
			}
			if out[len(out)-1].Role == model.RoleUser {
				out = append(out, model.Message{
					Role:    model.RoleAssistant,
					Content: trimContent(content),
				})
			} else {
				// A function-call loop and its final answer collapse into
				// one logical assistant turn.
				out[len(out)-1].Content += "\n" + content
			}

		case model.RoleUser:
			out = append(out, model.Message{
				Role:    model.RoleUser,
				Content: content,
			})

		default:
			return nil, errors.Errorf("invalid request: incorrect role %q", m.Role)
		}
	}
	return out, nil
}

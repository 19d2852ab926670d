// Package react implements the textual tool-invocation grammar spliced into
// prompts when the client supplies a function manifest, and the parser that
// extracts tool calls back out of generated text.
//
// The grammar interleaves "Thought / Action / Action Input / Observation"
// segments and terminates with "Final Answer". Models trained on it emit
// tool calls as plain text; no token-level tool-call channel is assumed.
package react

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Laisky/errors/v2"

	"github.com/modelgate/modelgate/relay/model"
)

const toolDescTemplate = "%s: Call this tool to interact with the %s API." +
	" What is the %s API useful for? %s Parameters: %s"

const instructionTemplate = `Answer the following questions as best you can. You have access to the following APIs:

%s

Use the following format:

Question: the input question you must answer
Thought: you should always think about what to do
Action: the action to take, should be one of [%s]
Action Input: the input to the action
Observation: the result of the action
... (this Thought/Action/Action Input/Observation can be repeated zero or more times)
Thought: I now know the final answer
Final Answer: the final answer to the original input question

Begin!`

// Literal markers of the grammar as they appear in generated text.
const (
	actionMarker      = "\nAction:"
	actionInputMarker = "\nAction Input:"
	observationMarker = "\nObservation:"
	finalAnswerMarker = "\nFinal Answer: "
	thoughtMarker     = "Thought: "

	// ObservationStopWord halts generation before the model hallucinates a
	// tool result. Added to the stop set whenever functions are present.
	ObservationStopWord = "Observation:"
)

// BuildInstruction renders the tool catalogue and task instruction block for
// the given manifest. The result is trimmed of leading/trailing blank lines
// and ready to be spliced ahead of the question.
func BuildInstruction(functions []model.Function) (string, error) {
	toolsText := make([]string, 0, len(functions))
	toolsName := make([]string, 0, len(functions))
	for i := range functions {
		f := &functions[i]
		params := f.Parameters
		if params == nil {
			params = map[string]any{}
		}
		paramsJSON, err := json.Marshal(params)
		if err != nil {
			return "", errors.Wrapf(err, "marshal parameters of function %q", f.Name)
		}
		toolsText = append(toolsText, fmt.Sprintf(toolDescTemplate,
			f.ModelName(), f.HumanName(), f.HumanName(), f.ModelDescription(), string(paramsJSON)))
		toolsName = append(toolsName, f.ModelName())
	}

	instruction := fmt.Sprintf(instructionTemplate,
		strings.Join(toolsText, "\n\n"), strings.Join(toolsName, ", "))
	return strings.TrimRight(strings.TrimLeft(instruction, "\n"), " \t\n\r"), nil
}

// ParseResponse splits generated text into either a function-call choice or
// a plain-answer choice.
//
// It locates the first "\nAction:", "\nAction Input:" and "\nObservation:"
// markers. When an Action precedes its Action Input, the function name and
// argument text are cut out between the markers; a missing Observation is
// synthesized at the end of the text first, since stop-word handling usually
// eats it. The visible content is truncated at the Action marker and
// stripped of a leading "Thought: ".
//
// Malformed ordering (Action Input before Action, or no Action at all) falls
// through to the plain-answer path: keep everything after the last
// "\nFinal Answer: " if present, finish reason "stop". Never an error.
func ParseResponse(text string) model.Choice {
	var funcName, funcArgs string
	i := strings.Index(text, actionMarker)
	j := strings.Index(text, actionInputMarker)
	k := strings.Index(text, observationMarker)
	if 0 <= i && i < j {
		if k < j {
			// The Observation marker was likely discarded as a stop word;
			// add it back so the argument span has a right edge.
			text = strings.TrimRight(text, " \t\n\r") + observationMarker
			k = strings.Index(text, observationMarker)
		}
		funcName = strings.TrimSpace(text[i+len(actionMarker) : j])
		funcArgs = strings.TrimSpace(text[j+len(actionInputMarker) : k])
	}

	if funcName != "" {
		content := text[:i]
		if t := strings.Index(content, thoughtMarker); t >= 0 {
			content = content[t+len(thoughtMarker):]
		}
		return model.Choice{
			Index: 0,
			Message: model.Message{
				Role:    model.RoleAssistant,
				Content: strings.TrimSpace(content),
				FunctionCall: &model.FunctionCall{
					Name:      funcName,
					Arguments: funcArgs,
				},
			},
			FinishReason: model.FinishReasonFunctionCall,
		}
	}

	if z := strings.LastIndex(text, finalAnswerMarker); z >= 0 {
		text = text[z+len(finalAnswerMarker):]
	}
	return model.Choice{
		Index: 0,
		Message: model.Message{
			Role:    model.RoleAssistant,
			Content: text,
		},
		FinishReason: model.FinishReasonStop,
	}
}

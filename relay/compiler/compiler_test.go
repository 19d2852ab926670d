package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/relay/model"
)

func user(content string) model.Message {
	return model.Message{Role: model.RoleUser, Content: content}
}

func assistant(content string) model.Message {
	return model.Message{Role: model.RoleAssistant, Content: content}
}

func TestCompileSingleQuery(t *testing.T) {
	compiled, err := Compile([]model.Message{user("hi")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", compiled.Query)
	assert.False(t, compiled.TextCompletion)
	assert.Empty(t, compiled.History)
	assert.Equal(t, "You are a helpful assistant.", compiled.System)
}

func TestCompileSystemOverride(t *testing.T) {
	compiled, err := Compile([]model.Message{
		{Role: model.RoleSystem, Content: "\nYou are a pirate. \n"},
		user("hi"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "You are a pirate.", compiled.System)
}

func TestCompileHistory(t *testing.T) {
	compiled, err := Compile([]model.Message{
		user("one"),
		assistant("first answer"),
		user("two"),
		assistant("second answer"),
		user("three"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "three", compiled.Query)
	assert.False(t, compiled.TextCompletion)
	require.Equal(t, [][2]string{
		{"one", "first answer"},
		{"two", "second answer"},
	}, compiled.History)
}

func TestCompileTurnAccounting(t *testing.T) {
	// Without folding, every non-system message lands in exactly one slot:
	// history pairs plus the pending query.
	messages := []model.Message{
		{Role: model.RoleSystem, Content: "sys"},
		user("a"), assistant("b"),
		user("c"), assistant("d"),
		user("e"),
	}
	compiled, err := Compile(messages, nil)
	require.NoError(t, err)
	assert.Equal(t, len(messages)-1, len(compiled.History)*2+1)
}

func TestCompileTextCompletion(t *testing.T) {
	compiled, err := Compile([]model.Message{
		user("continue this"),
		assistant("Once upon a time"),
	}, nil)
	require.NoError(t, err)
	assert.True(t, compiled.TextCompletion)
	assert.Empty(t, compiled.Query)
	require.Equal(t, [][2]string{{"continue this", "Once upon a time"}}, compiled.History)
}

func TestCompileContentTrimming(t *testing.T) {
	compiled, err := Compile([]model.Message{
		user("\n\n  padded  \n"),
		assistant("\nreply \t\n"),
		user("next"),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"  padded", "reply"}}, compiled.History)
}

func TestCompileRejectsNoUser(t *testing.T) {
	_, err := Compile([]model.Message{
		{Role: model.RoleSystem, Content: "sys"},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one user message")
}

func TestCompileRejectsAssistantFirst(t *testing.T) {
	_, err := Compile([]model.Message{
		assistant("hello"),
		user("hi"),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expecting role user before role assistant")
}

func TestCompileRejectsFunctionWithoutAssistant(t *testing.T) {
	_, err := Compile([]model.Message{
		user("hi"),
		{Role: model.RoleFunction, Content: "result"},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expecting role assistant before role function")
}

func TestCompileRejectsUnknownRole(t *testing.T) {
	_, err := Compile([]model.Message{
		user("hi"),
		{Role: "tool", Content: "x"},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `incorrect role "tool"`)
}

func TestCompileRejectsBrokenAlternation(t *testing.T) {
	_, err := Compile([]model.Message{
		user("one"),
		user("two"),
		assistant("answer"),
	}, nil)
	require.Error(t, err)
}

func weatherManifest() []model.Function {
	return []model.Function{{
		Name:        "get_weather",
		Description: "Look up the current weather.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"city": map[string]any{"type": "string"},
			},
		},
	}}
}

func TestCompileInstructionOnQuery(t *testing.T) {
	compiled, err := Compile([]model.Message{user("What is the weather in SF?")},
		weatherManifest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(compiled.Query,
		"Answer the following questions as best you can."))
	assert.True(t, strings.HasSuffix(compiled.Query,
		"\n\nQuestion: What is the weather in SF?"))
	assert.Contains(t, compiled.Query, "get_weather")
}

func TestCompileInstructionOnLastHistoryPair(t *testing.T) {
	compiled, err := Compile([]model.Message{
		user("earlier question"),
		assistant("earlier answer"),
		user("current question"),
	}, weatherManifest())
	require.NoError(t, err)
	// The instruction lands on the last history pair, not the query.
	require.Len(t, compiled.History, 1)
	assert.True(t, strings.HasPrefix(compiled.History[0][0],
		"Answer the following questions as best you can."))
	assert.True(t, strings.HasSuffix(compiled.History[0][0],
		"\n\nQuestion: earlier question"))
	assert.Equal(t, "current question", compiled.Query)
}

func TestCompileFoldsFunctionCallLoop(t *testing.T) {
	compiled, err := Compile([]model.Message{
		user("weather in SF?"),
		{
			Role:    model.RoleAssistant,
			Content: "I should check the weather.",
			FunctionCall: &model.FunctionCall{
				Name:      "get_weather",
				Arguments: `{"city": "SF"}`,
			},
		},
		{Role: model.RoleFunction, Content: "sunny, 20C"},
		assistant("It is sunny and 20C."),
	}, weatherManifest())
	require.NoError(t, err)
	assert.True(t, compiled.TextCompletion)
	require.Len(t, compiled.History, 1)

	bot := compiled.History[0][1]
	assert.Contains(t, bot, "Thought: I should check the weather.")
	assert.Contains(t, bot, "\nAction: get_weather")
	assert.Contains(t, bot, "\nAction Input: {\"city\": \"SF\"}")
	assert.Contains(t, bot, "\nObservation: sunny, 20C")
	// The final answer collapses into the same logical assistant turn.
	assert.Contains(t, bot, "Thought: I now know the final answer.\nFinal Answer: It is sunny and 20C.")
}

func TestCompileTrailingFunctionPrimesThought(t *testing.T) {
	compiled, err := Compile([]model.Message{
		user("weather in SF?"),
		{
			Role:    model.RoleAssistant,
			Content: "Thought: check the weather",
			FunctionCall: &model.FunctionCall{
				Name:      "get_weather",
				Arguments: `{"city": "SF"}`,
			},
		},
		{Role: model.RoleFunction, Content: "sunny, 20C"},
	}, weatherManifest())
	require.NoError(t, err)
	assert.True(t, compiled.TextCompletion)
	require.Len(t, compiled.History, 1)
	assert.True(t, strings.HasSuffix(compiled.History[0][1],
		"\nObservation: sunny, 20C\nThought:"))
	// An existing Thought prefix is not doubled.
	assert.Equal(t, 1, strings.Count(compiled.History[0][1], "Thought: check the weather"))
}

func TestCompileFinalAnswerRewriteOnlyWithFunctions(t *testing.T) {
	messages := []model.Message{
		user("hello"),
		assistant("hi there"),
		user("next"),
	}

	plain, err := Compile(messages, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi there", plain.History[0][1])

	withTools, err := Compile(messages, weatherManifest())
	require.NoError(t, err)
	assert.Equal(t,
		"Thought: I now know the final answer.\nFinal Answer: hi there",
		withTools.History[0][1])
}

func TestCompileDoesNotMutateInput(t *testing.T) {
	messages := []model.Message{
		user("weather?"),
		{
			Role:    model.RoleAssistant,
			Content: "checking",
			FunctionCall: &model.FunctionCall{
				Name:      "get_weather",
				Arguments: "{}",
			},
		},
		{Role: model.RoleFunction, Content: "sunny"},
	}
	_, err := Compile(messages, weatherManifest())
	require.NoError(t, err)
	assert.Equal(t, "checking", messages[1].Content)
	assert.Equal(t, "sunny", messages[2].Content)
}

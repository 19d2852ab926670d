package template

import (
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	conv, err := Get("chatml")
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.Equal(t, "chatml", conv.Name)
	assert.Equal(t, "<|im_end|>", conv.StopStr)

	_, err = Get("no-such-template")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRegisterOverride(t *testing.T) {
	Register(&Conversation{
		Name:   "test-override",
		Prompt: "A: {query}\nB: ",
		Sep:    "\n",
	})
	Register(&Conversation{
		Name:   "test-override",
		Prompt: "X: {query}\nY: ",
		Sep:    "\n",
	})

	conv, err := Get("test-override")
	require.NoError(t, err)
	assert.Equal(t, "X: {query}\nY: ", conv.Prompt)
}

func TestPromptForSingleQuery(t *testing.T) {
	conv, err := Get("chatml")
	require.NoError(t, err)

	prompt := conv.PromptFor([][2]string{{"hi", ""}}, "")
	assert.Equal(t,
		"You are a helpful assistant.<|im_end|>\n"+
			"<|im_start|>user\nhi<|im_end|>\n<|im_start|>assistant\n",
		prompt)
}

func TestPromptForMultiTurn(t *testing.T) {
	conv := &Conversation{
		Name:         "test-multi",
		SystemPrompt: "SYS",
		Prompt:       "U: {query}\nA: ",
		Sep:          "\n",
	}

	prompt := conv.PromptFor([][2]string{
		{"first", "one"},
		{"second", ""},
	}, "")
	assert.Equal(t, "SYS\nU: first\nA: one\nU: second\nA: ", prompt)
}

func TestDialogSystemOverride(t *testing.T) {
	conv := &Conversation{
		Name:         "test-system",
		SystemPrompt: "DEFAULT",
		Prompt:       "{query}",
		Sep:          "|",
	}

	convs := conv.Dialog([][2]string{{"q1", "a1"}, {"q2", ""}}, "CUSTOM")
	require.Len(t, convs, 4)
	// The system text and separator are prefixed exactly once.
	assert.Equal(t, "CUSTOM|q1", convs[0])
	assert.Equal(t, "a1", convs[1])
	assert.Equal(t, "|q2", convs[2])
	assert.Equal(t, "", convs[3])
}

func TestDialogNoSystem(t *testing.T) {
	conv := &Conversation{
		Name:   "test-nosystem",
		Prompt: "{query}",
		Sep:    "|",
	}

	convs := conv.Dialog([][2]string{{"q", ""}}, "")
	require.Len(t, convs, 2)
	assert.Equal(t, "q", convs[0])
}

func TestBuiltinStopStrings(t *testing.T) {
	// Families without a dedicated end-of-reply token stop at "</s>".
	for _, name := range []string{
		"vicuna", "base", "alpaca", "baichuan", "baichuan2", "ziya",
		"linly", "chatglm", "chatglm2", "phoenix", "belle", "aquila",
		"llama2", "llama2-zh", "mistral", "xverse", "deepseek", "orion",
		"cohere",
	} {
		conv, err := Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, "</s>", conv.StopStr, name)
	}

	for name, stop := range map[string]string{
		"chatglm3":      "<|user|>",
		"intern":        "<eoa>",
		"starchat":      "<|end|>",
		"llama3":        "<|eot_id|>",
		"chatml":        "<|im_end|>",
		"deepseekcoder": "<|EOT|>",
		"yi":            "<|im_end|>",
		"qwen":          "<|im_end|>",
	} {
		conv, err := Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, stop, conv.StopStr, name)
	}
}

func TestBuiltinCatalogue(t *testing.T) {
	for _, name := range []string{
		"vicuna", "base", "alpaca", "baichuan", "baichuan2", "ziya",
		"linly", "chatglm", "chatglm2", "chatglm3", "phoenix", "belle",
		"aquila", "intern", "starchat", "llama2", "llama3", "llama2-zh",
		"mistral", "xverse", "chatml", "deepseek", "deepseekcoder", "yi",
		"orion", "cohere", "qwen",
	} {
		conv, err := Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, conv.Name)
		assert.NotEmpty(t, conv.Prompt, name)
	}
}

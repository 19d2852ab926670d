package template

// Built-in template catalogue, one entry per supported model family.
// Populated at init; Register may still be called afterwards during startup
// to add or override entries before the server begins accepting requests.
//
// Families without a dedicated end-of-reply token use the common "</s>"
// sentence terminator as their stop string.

func init() {
	// Vicuna v1.1
	Register(&Conversation{
		Name: "vicuna",
		SystemPrompt: "A chat between a curious user and an artificial intelligence assistant. " +
			"The assistant gives helpful, detailed, and polite answers to the user's questions.",
		Roles:   [2]string{"USER", "ASSISTANT"},
		Prompt:  "USER: {query} ASSISTANT:",
		Sep:     "</s>",
		StopStr: "</s>",
	})

	// Base model, for few-shot completion
	Register(&Conversation{
		Name:    "base",
		Roles:   [2]string{"USER", "ASSISTANT"},
		Prompt:  "{query}",
		Sep:     "</s>",
		StopStr: "</s>",
	})

	// Alpaca instruction format
	Register(&Conversation{
		Name: "alpaca",
		SystemPrompt: "Below is an instruction that describes a task. " +
			"Write a response that appropriately completes the request.",
		Roles:   [2]string{"### Instruction", "### Response"},
		Prompt:  "### Instruction:\n{query}\n\n### Response:\n",
		Sep:     "\n\n",
		StopStr: "</s>",
	})

	// Baichuan-13B-Chat
	Register(&Conversation{
		Name:    "baichuan",
		Roles:   [2]string{"<reserved_102>", "<reserved_103>"},
		Prompt:  "<reserved_102>{query}<reserved_103>",
		Sep:     "</s>",
		StopStr: "</s>",
	})

	// Baichuan2
	Register(&Conversation{
		Name:    "baichuan2",
		Roles:   [2]string{"<reserved_106>", "<reserved_107>"},
		Prompt:  "<reserved_106>{query}<reserved_107>",
		Sep:     "</s>",
		StopStr: "</s>",
	})

	Register(&Conversation{
		Name:    "ziya",
		Roles:   [2]string{"<human>", "<bot>"},
		Prompt:  "<human>:{query}\n<bot>:",
		Sep:     "\n",
		StopStr: "</s>",
	})

	Register(&Conversation{
		Name:    "linly",
		Roles:   [2]string{"User", "Bot"},
		Prompt:  "User: {query}\nBot: ",
		Sep:     "\n",
		StopStr: "</s>",
	})

	// ChatGLM-6B
	Register(&Conversation{
		Name:    "chatglm",
		Roles:   [2]string{"问", "答"},
		Prompt:  "问：{query}\n答：",
		Sep:     "\n",
		StopStr: "</s>",
	})

	// ChatGLM2-6B
	Register(&Conversation{
		Name:    "chatglm2",
		Roles:   [2]string{"问", "答"},
		Prompt:  "问：{query}\n\n答：",
		Sep:     "\n\n",
		StopStr: "</s>",
	})

	// ChatGLM3-6B
	Register(&Conversation{
		Name:    "chatglm3",
		Roles:   [2]string{"<|user|>", "<|assistant|>"},
		Prompt:  "<|user|>\n{query}<|assistant|>",
		Sep:     "\n",
		StopStr: "<|user|>",
	})

	Register(&Conversation{
		Name: "phoenix",
		SystemPrompt: "A chat between a curious human and an artificial intelligence assistant. " +
			"The assistant gives helpful, detailed, and polite answers to the human's questions.\n\n",
		Roles:   [2]string{"Human", "Assistant"},
		Prompt:  "Human: <s>{query}</s>Assistant: ",
		Sep:     "</s>",
		StopStr: "</s>",
	})

	Register(&Conversation{
		Name:    "belle",
		Roles:   [2]string{"Human", "Belle"},
		Prompt:  "Human: {query}\n\nBelle: ",
		Sep:     "\n\n",
		StopStr: "</s>",
	})

	Register(&Conversation{
		Name: "aquila",
		SystemPrompt: "A chat between a curious human and an artificial intelligence assistant. " +
			"The assistant gives helpful, detailed, and polite answers to the human's questions.",
		Roles:   [2]string{"Human", "Assistant"},
		Prompt:  "Human: {query}###Assistant:",
		Sep:     "###",
		StopStr: "</s>",
	})

	// InternLM chat
	Register(&Conversation{
		Name:    "intern",
		Roles:   [2]string{"<|User|>", "<|Bot|>"},
		Prompt:  "<|User|>:{query}<eoh>\n<|Bot|>:",
		Sep:     "<eoa>\n",
		StopStr: "<eoa>",
	})

	Register(&Conversation{
		Name:         "starchat",
		SystemPrompt: "<system>\n",
		Roles:        [2]string{"<|user|>", "<|assistant|>"},
		Prompt:       "<|user|>\n{query}<|end|>\n<|assistant|>\n",
		Sep:          "<|end|>\n",
		StopStr:      "<|end|>",
	})

	// Llama-2 chat
	Register(&Conversation{
		Name: "llama2",
		SystemPrompt: "<<SYS>>\nYou are a helpful, respectful and honest assistant. " +
			"Always answer as helpfully as possible, while being safe. " +
			"Your answers should not include any harmful, unethical, racist, sexist, " +
			"toxic, dangerous, or illegal content. " +
			"Please ensure that your responses are socially unbiased and positive in nature.\n\n" +
			"If a question does not make any sense, or is not factually coherent, " +
			"explain why instead of answering something not correct. " +
			"If you don't know the answer to a question, please don't share false information.\n<</SYS>>\n\n",
		Roles:   [2]string{"[INST]", "[/INST]"},
		Prompt:  "[INST] {query} [/INST]",
		Sep:     "</s>",
		StopStr: "</s>",
	})

	// Meta-Llama-3 instruct
	Register(&Conversation{
		Name: "llama3",
		SystemPrompt: "<|start_header_id|>system<|end_header_id|>\n\n" +
			"You are a helpful, excellent and smart assistant.",
		Roles: [2]string{"user", "assistant"},
		Prompt: "<|start_header_id|>user<|end_header_id|>\n\n{query}<|eot_id|>" +
			"<|start_header_id|>assistant<|end_header_id|>\n\n",
		Sep:     "<|eot_id|>",
		StopStr: "<|eot_id|>",
	})

	// Chinese-LLaMA-Alpaca-2
	Register(&Conversation{
		Name:         "llama2-zh",
		SystemPrompt: "[INST] <<SYS>>\nYou are a helpful assistant. 你是一个乐于助人的助手。\n<</SYS>>\n\n [/INST]",
		Roles:        [2]string{"[INST]", "[/INST]"},
		Prompt:       "[INST] {query} [/INST]",
		Sep:          "</s>",
		StopStr:      "</s>",
	})

	Register(&Conversation{
		Name:    "mistral",
		Roles:   [2]string{"[INST]", "[/INST]"},
		Prompt:  "[INST] {query} [/INST]",
		Sep:     "</s>",
		StopStr: "</s>",
	})

	Register(&Conversation{
		Name:    "xverse",
		Roles:   [2]string{"Human", "Assistant"},
		Prompt:  "Human: {query}\n\nAssistant: ",
		Sep:     "</s>",
		StopStr: "</s>",
	})

	// ChatML, the Qwen-Chat convention
	Register(&Conversation{
		Name:         "chatml",
		SystemPrompt: "You are a helpful assistant.",
		Roles:        [2]string{"user", "assistant"},
		Prompt:       "<|im_start|>user\n{query}<|im_end|>\n<|im_start|>assistant\n",
		Sep:          "<|im_end|>\n",
		StopStr:      "<|im_end|>",
	})

	Register(&Conversation{
		Name:    "deepseek",
		Roles:   [2]string{"User", "Assistant"},
		Prompt:  "User: {query}\n\nAssistant:",
		Sep:     "</s>",
		StopStr: "</s>",
	})

	Register(&Conversation{
		Name: "deepseekcoder",
		SystemPrompt: "You are an AI programming assistant, utilizing the Deepseek Coder model, " +
			"developed by Deepseek Company, and you only answer questions related to computer science. " +
			"For politically sensitive questions, security and privacy issues, " +
			"and other non-computer science questions, you will refuse to answer\n",
		Roles:   [2]string{"### Instruction", "### Response"},
		Prompt:  "### Instruction:\n{query}\n### Response:\n",
		Sep:     "\n",
		StopStr: "<|EOT|>",
	})

	Register(&Conversation{
		Name:    "yi",
		Roles:   [2]string{"user", "assistant"},
		Prompt:  "<|im_start|>user\n{query}<|im_end|>\n<|im_start|>assistant\n",
		Sep:     "\n",
		StopStr: "<|im_end|>",
	})

	Register(&Conversation{
		Name:    "orion",
		Roles:   [2]string{"Human", "Assistant"},
		Prompt:  "Human: {query}\n\nAssistant: </s>",
		Sep:     "</s>",
		StopStr: "</s>",
	})

	Register(&Conversation{
		Name:         "cohere",
		SystemPrompt: "<BOS_TOKEN>",
		Roles:        [2]string{"User", "Assistant"},
		Prompt: "<|START_OF_TURN_TOKEN|><|USER_TOKEN|>{query}<|END_OF_TURN_TOKEN|>" +
			"<|START_OF_TURN_TOKEN|><|CHATBOT_TOKEN|>",
		Sep:     "</s>",
		StopStr: "</s>",
	})

	// CodeQwen1.5 chat
	Register(&Conversation{
		Name:         "qwen",
		SystemPrompt: "<|im_start|>system\nYou are a helpful assistant.<|im_end|>\n",
		Roles:        [2]string{"user", "assistant"},
		Prompt:       "<|im_start|>user\n{query}<|im_end|>\n<|im_start|>assistant\n",
		Sep:          "\n",
		StopStr:      "<|im_end|>",
	})
}

package model

// Function describes one entry of the tool manifest supplied by the client.
// The *_for_model / *_for_human variants mirror the Qwen function-calling
// convention; when absent they fall back to Name / Description.
type Function struct {
	Name                string `json:"name"`
	NameForModel        string `json:"name_for_model,omitempty"`
	NameForHuman        string `json:"name_for_human,omitempty"`
	Description         string `json:"description,omitempty"`
	DescriptionForModel string `json:"description_for_model,omitempty"`
	Parameters          any    `json:"parameters,omitempty"`
}

// ModelName returns the identifier the model should use in Action: lines.
func (f *Function) ModelName() string {
	if f.NameForModel != "" {
		return f.NameForModel
	}
	return f.Name
}

// HumanName returns the display name used in the tool catalogue text.
func (f *Function) HumanName() string {
	if f.NameForHuman != "" {
		return f.NameForHuman
	}
	return f.Name
}

// ModelDescription returns the description rendered into the prompt.
func (f *Function) ModelDescription() string {
	if f.DescriptionForModel != "" {
		return f.DescriptionForModel
	}
	return f.Description
}

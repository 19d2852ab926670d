package model

// ModelCard is one entry of the /v1/models listing.
type ModelCard struct {
	Id         string  `json:"id"`
	Object     string  `json:"object"`
	Created    int64   `json:"created"`
	OwnedBy    string  `json:"owned_by"`
	Root       string  `json:"root,omitempty"`
	Parent     *string `json:"parent,omitempty"`
	Permission []any   `json:"permission,omitempty"`
}

type ModelList struct {
	Object string      `json:"object"`
	Data   []ModelCard `json:"data"`
}

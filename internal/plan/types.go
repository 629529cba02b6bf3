package plan

import (
	"encoding/json"
)

// Document is the parsed representation of a terraform plan as produced by
// `terraform show -json`. Only the fields the analyzer consumes are modeled;
// everything else in the document is ignored on decode.
type Document struct {
	FormatVersion    string           `json:"format_version,omitempty"`
	TerraformVersion string           `json:"terraform_version,omitempty"`
	ResourceChanges  []ResourceChange `json:"resource_changes,omitempty"`
}

// ResourceChange describes the planned change for a single resource instance.
type ResourceChange struct {
	Address       string `json:"address,omitempty"`
	ModuleAddress string `json:"module_address,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Type          string `json:"type,omitempty"`
	Name          string `json:"name,omitempty"`
	ProviderName  string `json:"provider_name,omitempty"`
	Change        Change `json:"change"`
}

// Change carries the action list and the before/after attribute snapshots.
// Before and After are null in the document for creations and destructions
// respectively; a nil map here means the same thing as an empty one.
type Change struct {
	Actions []string       `json:"actions,omitempty"`
	Before  map[string]any `json:"before,omitempty"`
	After   map[string]any `json:"after,omitempty"`
}

// Decode parses a plan document from raw JSON.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

package terraform

import (
	"encoding/json"
	"os"

	"github.com/provos/terraform-secure/internal/plan"
	secerrors "github.com/provos/terraform-secure/pkg/errors"
)

// Result captures everything a plan invocation produced: the human-readable
// plan output, the machine-readable plan JSON, and how the tool exited. The
// JSON field names match the on-disk format used by saved results.
type Result struct {
	Stdout     string          `json:"stdout"`
	Stderr     string          `json:"stderr"`
	JSONPlan   json.RawMessage `json:"json_plan,omitempty"`
	ReturnCode int             `json:"return_code"`
	Error      string          `json:"error,omitempty"`
}

// HasChanges reports whether the plan proposed any change. With
// -detailed-exitcode terraform exits 2 when the plan is non-empty.
func (r *Result) HasChanges() bool {
	return r != nil && r.ReturnCode == 2
}

// Plan decodes the stored plan JSON into a document. Returns nil without
// error when no JSON plan was captured.
func (r *Result) Plan() (*plan.Document, error) {
	if r == nil || len(r.JSONPlan) == 0 {
		return nil, nil
	}
	return plan.Decode(r.JSONPlan)
}

// Save writes the result to path as indented JSON.
func (r *Result) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadResult reads a previously saved result from path.
func LoadResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, secerrors.NewParseError(path, 0, err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, secerrors.NewParseError(path, 0, err)
	}
	return &result, nil
}

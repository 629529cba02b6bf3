// Package analyze turns an extracted change set into a narrative security
// assessment by prompting a language model with the serialized deltas.
package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/provos/terraform-secure/internal/extract"
	"github.com/provos/terraform-secure/internal/llm"
	"github.com/provos/terraform-secure/internal/logger"
	secerrors "github.com/provos/terraform-secure/pkg/errors"
)

// SecurityIssue is a single finding in the assessment.
type SecurityIssue struct {
	Severity       string `json:"severity"`
	Resource       string `json:"resource"`
	Issue          string `json:"issue"`
	Explanation    string `json:"explanation"`
	Recommendation string `json:"recommendation"`
}

// SecurityAnalysis is the full model response: individual findings plus a
// markdown summary.
type SecurityAnalysis struct {
	Issues  []SecurityIssue `json:"issues"`
	Summary string          `json:"summary"`
}

// severityRank orders findings for display; unknown severities sort last.
var severityRank = map[string]int{"HIGH": 0, "MEDIUM": 1, "LOW": 2}

// SeverityRank returns the display rank of a severity label.
func SeverityRank(severity string) int {
	if rank, ok := severityRank[severity]; ok {
		return rank
	}
	return len(severityRank)
}

const schemaName = "security_analysis"

// analysisSchema constrains generation so the response always decodes into
// SecurityAnalysis.
var analysisSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "issues": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "severity": {"type": "string", "enum": ["HIGH", "MEDIUM", "LOW"]},
          "resource": {"type": "string"},
          "issue": {"type": "string"},
          "explanation": {"type": "string"},
          "recommendation": {"type": "string"}
        },
        "required": ["severity", "resource", "issue", "explanation", "recommendation"],
        "additionalProperties": false
      }
    },
    "summary": {"type": "string"}
  },
  "required": ["issues", "summary"],
  "additionalProperties": false
}`)

var promptTemplate = template.Must(template.New("security").Parse(`You are a security expert analyzing Terraform infrastructure changes.
Please analyze the following Terraform resource changes for security implications:

{{.Changes}}

Focus on:
1. Network security (firewall rules, open ports, CIDR ranges)
2. Access controls and permissions
3. Resource exposure to the internet
4. Security best practices
5. Compliance concerns

For each security-relevant change:
1. Assess the severity
2. Explain the security implications
3. Provide specific recommendations

Format your response according to the provided schema, including a markdown summary.
Consider both direct and indirect security impacts of the changes.
`))

// Analyzer generates security assessments for change sets.
type Analyzer struct {
	client      llm.Client
	provider    string
	temperature float32
	log         *logger.Logger
}

// New constructs an Analyzer on top of the given client.
func New(client llm.Client, provider string, temperature float32, log *logger.Logger) *Analyzer {
	return &Analyzer{client: client, provider: provider, temperature: temperature, log: log}
}

// Analyze prompts the model with the serialized change set and decodes its
// structured response. The caller is expected to skip the call entirely for
// an empty change set.
func (a *Analyzer) Analyze(ctx context.Context, changes extract.ChangeSet) (*SecurityAnalysis, error) {
	prompt, err := BuildPrompt(changes)
	if err != nil {
		return nil, secerrors.NewAnalysisError(a.provider, err)
	}

	a.log.WithFields(map[string]any{"resources": len(changes)}).Debug("requesting security analysis")

	raw, err := a.client.Generate(ctx, llm.Request{
		Prompt:      prompt,
		SchemaName:  schemaName,
		Schema:      analysisSchema,
		Temperature: a.temperature,
	})
	if err != nil {
		return nil, err
	}

	var analysis SecurityAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, secerrors.NewAnalysisError(a.provider, err)
	}

	for i := range analysis.Issues {
		analysis.Issues[i].Severity = strings.ToUpper(strings.TrimSpace(analysis.Issues[i].Severity))
	}
	return &analysis, nil
}

// BuildPrompt renders the analysis prompt around the serialized change set.
func BuildPrompt(changes extract.ChangeSet) (string, error) {
	serialized, err := json.MarshalIndent(map[string]extract.ChangeSet{"changes": changes}, "", "  ")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, struct{ Changes string }{Changes: string(serialized)}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

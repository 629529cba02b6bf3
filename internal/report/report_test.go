package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/provos/terraform-secure/internal/analyze"
	"github.com/provos/terraform-secure/internal/extract"
)

func sampleChanges() extract.ChangeSet {
	return extract.ChangeSet{
		"google_compute_firewall.allow-http-https": {
			Type:   "google_compute_firewall",
			Name:   "allow-http-https",
			Action: []string{"update"},
			Changes: map[string]extract.AttributeDelta{
				"source_ranges": {Before: []any{"10.0.0.0/8"}, After: []any{"0.0.0.0/0"}},
			},
		},
	}
}

func sampleAnalysis() *analyze.SecurityAnalysis {
	return &analyze.SecurityAnalysis{
		Summary: "One high severity exposure was found.",
		Issues: []analyze.SecurityIssue{
			{
				Severity:       "LOW",
				Resource:       "aws_s3_bucket.logs",
				Issue:          "Bucket created without lifecycle rules",
				Recommendation: "Consider expiration rules",
			},
			{
				Severity:       "HIGH",
				Resource:       "google_compute_firewall.allow-http-https",
				Issue:          "Firewall opened to the world",
				Explanation:    "source_ranges now includes 0.0.0.0/0",
				Recommendation: "Restrict to known CIDR ranges",
			},
		},
	}
}

func TestRenderIncludesAllSections(t *testing.T) {
	t.Parallel()

	out := Render(sampleAnalysis(), sampleChanges(), Metadata{
		Directory: "./prod",
		Revision:  "abc123def456",
	}, false)

	require.Contains(t, out, "Security Analysis Summary")
	require.Contains(t, out, "configuration: ./prod")
	require.Contains(t, out, "revision: abc123def456")
	require.Contains(t, out, "resources changed: 1")
	require.Contains(t, out, "One high severity exposure was found.")
	require.Contains(t, out, "Security Issues")
	require.Contains(t, out, "Resource Changes")
	require.Contains(t, out, "google_compute_firewall.allow-http-https (update)")
	require.Contains(t, out, "source_ranges")
	require.Contains(t, out, "0.0.0.0/0")
}

func TestRenderOrdersIssuesBySeverity(t *testing.T) {
	t.Parallel()

	out := Render(sampleAnalysis(), sampleChanges(), Metadata{}, false)

	highIdx := strings.Index(out, "[HIGH]")
	lowIdx := strings.Index(out, "[LOW]")
	require.GreaterOrEqual(t, highIdx, 0)
	require.GreaterOrEqual(t, lowIdx, 0)
	require.Less(t, highIdx, lowIdx)
}

func TestRenderWithoutAnalysis(t *testing.T) {
	t.Parallel()

	out := Render(nil, sampleChanges(), Metadata{}, false)
	require.Contains(t, out, "Resource Changes")
	require.NotContains(t, out, "Security Issues")
}

func TestRenderEmptyChangeSet(t *testing.T) {
	t.Parallel()

	out := Render(nil, extract.ChangeSet{}, Metadata{}, false)
	require.Contains(t, out, "No changes detected")
}

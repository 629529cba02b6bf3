// Package report renders change sets and security assessments for the
// console.
package report

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/provos/terraform-secure/internal/analyze"
	"github.com/provos/terraform-secure/internal/extract"
	"github.com/provos/terraform-secure/pkg/diff"
)

// Metadata names the inputs a report was produced from.
type Metadata struct {
	Directory string
	Revision  string
	PlanFile  string
}

// Render produces the full console report: run metadata, the assessment
// summary and findings, and per-resource attribute diffs. Colors are
// disabled for non-interactive output.
func Render(analysis *analyze.SecurityAnalysis, changes extract.ChangeSet, meta Metadata, colored bool) string {
	st := plainStyles()
	if colored {
		st = coloredStyles()
	}

	var b strings.Builder
	b.WriteString(st.title.Render("Security Analysis Summary"))
	b.WriteString("\n")

	writeMetadata(&b, st, meta, changes)

	if analysis != nil && analysis.Summary != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(analysis.Summary))
		b.WriteString("\n")
	}

	if analysis != nil && len(analysis.Issues) > 0 {
		b.WriteString(st.section.Render("Security Issues"))
		b.WriteString("\n")
		writeIssues(&b, st, analysis.Issues)
	}

	b.WriteString(st.section.Render("Resource Changes"))
	b.WriteString("\n")
	writeChanges(&b, st, changes)

	return b.String()
}

func writeMetadata(b *strings.Builder, st styles, meta Metadata, changes extract.ChangeSet) {
	if meta.Directory != "" {
		b.WriteString(st.meta.Render(fmt.Sprintf("configuration: %s", meta.Directory)))
		b.WriteString("\n")
	}
	if meta.Revision != "" {
		b.WriteString(st.meta.Render(fmt.Sprintf("revision: %s", meta.Revision)))
		b.WriteString("\n")
	}
	if meta.PlanFile != "" {
		b.WriteString(st.meta.Render(fmt.Sprintf("plan file: %s", meta.PlanFile)))
		b.WriteString("\n")
	}
	b.WriteString(st.meta.Render(fmt.Sprintf("resources changed: %d", len(changes))))
	b.WriteString("\n")
}

func writeIssues(b *strings.Builder, st styles, issues []analyze.SecurityIssue) {
	ordered := make([]analyze.SecurityIssue, len(issues))
	copy(ordered, issues)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := analyze.SeverityRank(ordered[i].Severity), analyze.SeverityRank(ordered[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return ordered[i].Resource < ordered[j].Resource
	})

	for _, issue := range ordered {
		badge := st.severity(issue.Severity).Render(fmt.Sprintf("[%s]", issue.Severity))
		fmt.Fprintf(b, "\n%s %s\n", badge, st.resource.Render(issue.Resource))
		fmt.Fprintf(b, "  %s\n", issue.Issue)
		if issue.Explanation != "" {
			fmt.Fprintf(b, "  %s\n", issue.Explanation)
		}
		if issue.Recommendation != "" {
			fmt.Fprintf(b, "  Recommendation: %s\n", issue.Recommendation)
		}
	}
}

func writeChanges(b *strings.Builder, st styles, changes extract.ChangeSet) {
	if len(changes) == 0 {
		b.WriteString("No changes detected\n")
		return
	}

	for _, address := range slices.Sorted(maps.Keys(changes)) {
		resource := changes[address]
		fmt.Fprintf(b, "\n%s (%s)\n", st.resource.Render(address), strings.Join(resource.Action, ", "))

		for _, attribute := range slices.Sorted(maps.Keys(resource.Changes)) {
			delta := resource.Changes[attribute]
			fmt.Fprintf(b, "  %s:\n", attribute)

			rendered := diff.Values(delta.Before, delta.After, "before", "after")
			for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
				switch {
				case strings.HasPrefix(line, "-"):
					line = st.removed.Render(line)
				case strings.HasPrefix(line, "+"):
					line = st.added.Render(line)
				}
				fmt.Fprintf(b, "    %s\n", line)
			}
		}
	}
}

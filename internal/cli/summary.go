package cli

import (
	"fmt"
	"strconv"

	"github.com/indaco/hubbump/internal/operations"
	"github.com/indaco/hubbump/internal/printer"
)

// summaryRows turns a report into table rows, one per module.
func summaryRows(report *operations.Report) [][]string {
	merges := make(map[int]operations.MergeResult, len(report.Merges))
	for _, m := range report.Merges {
		merges[m.PullRequest.Number] = m
	}

	rows := make([][]string, 0, len(report.Modules))
	for _, m := range report.Modules {
		version := m.OldVersion
		if m.NewVersion != "" {
			version = m.OldVersion + " -> " + m.NewVersion
		}

		pr, merge := "", ""
		if m.PullRequest != nil {
			pr = "#" + strconv.Itoa(m.PullRequest.Number)
			if r, ok := merges[m.PullRequest.Number]; ok {
				merge = string(r.State)
				if r.State != operations.MergeStateMerged {
					merge = fmt.Sprintf("%s (%d attempts)", r.State, r.Attempts)
				}
			}
		}
		rows = append(rows, []string{m.Module, version, string(m.Outcome), pr, merge})
	}
	return rows
}

func printSummary(report *operations.Report) {
	printer.Println("")
	printer.PrintBold(fmt.Sprintf("Core version %s", report.CoreVersion))
	printer.PrintTable([]string{"MODULE", "VERSION", "OUTCOME", "PULL REQUEST", "MERGE"}, summaryRows(report))

	created := report.Count(operations.OutcomePRCreated)
	reused := report.Count(operations.OutcomePRReused)
	skipped := report.Count(operations.OutcomeSkipped)
	ambiguous := report.Count(operations.OutcomeSkippedOnAmbiguity)
	printer.PrintFaint(fmt.Sprintf("%d created, %d reused, %d up to date, %d ambiguous", created, reused, skipped, ambiguous))

	for _, m := range report.Merges {
		if m.Err != nil {
			printer.PrintWarning(fmt.Sprintf("pull request %s: %v", m.PullRequest, m.Err))
			printHint(m.Err)
		}
	}
}

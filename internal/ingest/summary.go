package ingest

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/voyo-music/canonizer/internal/models"
)

// errorSampleCap bounds how many individual failures the console summary
// enumerates; beyond it, only the sample plus a total is shown.
const errorSampleCap = 10

// WriteSummary renders the human-readable run summary.
func WriteSummary(w io.Writer, report *models.RunReport) {
	mode := "ingest"
	if report.DryRun {
		mode = "dry run"
	}
	fmt.Fprintf(w, "VOYO canonizer run (%s), started %s, took %s\n\n",
		mode, report.StartedAt.Format("2006-01-02 15:04:05 UTC"), report.Duration)

	overview := [][]string{
		{"Files scanned", fmt.Sprintf("%d", report.FilesScanned)},
		{"Parse failures", fmt.Sprintf("%d", len(report.ParseFailures))},
		{"Moments prepared", fmt.Sprintf("%d", report.MomentsPrepared)},
		{"Duplicates dropped", fmt.Sprintf("%d", report.DuplicatesDropped)},
		{"Moments after dedup", fmt.Sprintf("%d", report.MomentsDeduped)},
	}
	if !report.DryRun {
		overview = append(overview,
			[]string{"Upsert succeeded", fmt.Sprintf("%d", report.UpsertSucceeded)},
			[]string{"Upsert failed", fmt.Sprintf("%d", report.UpsertFailed)},
		)
	}
	renderTable(w, []string{"Stage", "Count"}, overview)

	writeBreakdown(w, "Platform", report.ByPlatform)
	writeBreakdown(w, "Content type", report.ByContentType)
	writeBreakdown(w, "Cultural tag", report.ByCulturalTag)

	if len(report.TopByVirality) > 0 {
		fmt.Fprintf(w, "\nTop moments by virality:\n")
		rows := make([][]string, 0, len(report.TopByVirality))
		for _, m := range report.TopByVirality {
			rows = append(rows, []string{
				string(m.SourcePlatform),
				m.SourceID,
				truncateTitle(m.Title, 40),
				fmt.Sprintf("%d", m.ViralityScore),
				fmt.Sprintf("%d", m.HeatScore),
			})
		}
		renderTable(w, []string{"Platform", "Source ID", "Title", "Virality", "Heat"}, rows)
	}

	writeParseFailures(w, report.ParseFailures)
	writeRecordFailures(w, report.FailedRecords)
}

func writeBreakdown(w io.Writer, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	fmt.Fprintf(w, "\n%s distribution:\n", label)
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, fmt.Sprintf("%d", counts[key])})
	}
	renderTable(w, []string{label, "Moments"}, rows)
}

func writeParseFailures(w io.Writer, failures []models.ParseFailure) {
	if len(failures) == 0 {
		return
	}

	fmt.Fprintf(w, "\nParse failures: %d\n", len(failures))
	shown := failures
	if len(shown) > errorSampleCap {
		shown = shown[:errorSampleCap]
	}
	for _, failure := range shown {
		fmt.Fprintf(w, "  %s: %s\n", failure.File, failure.Message)
	}
	if len(failures) > errorSampleCap {
		fmt.Fprintf(w, "  ... and %d more\n", len(failures)-errorSampleCap)
	}
}

func writeRecordFailures(w io.Writer, failures []models.RecordFailure) {
	if len(failures) == 0 {
		return
	}

	fmt.Fprintf(w, "\nFailed records: %d\n", len(failures))
	shown := failures
	if len(shown) > errorSampleCap {
		shown = shown[:errorSampleCap]
	}
	for _, failure := range shown {
		fmt.Fprintf(w, "  %s/%s: %s\n", failure.Platform, failure.SourceID, failure.Message)
	}
	if len(failures) > errorSampleCap {
		fmt.Fprintf(w, "  ... and %d more\n", len(failures)-errorSampleCap)
	}
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	// Numbers sit in the last column; right-align it.
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: len(headers), Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	tw.Render()
}

func truncateTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

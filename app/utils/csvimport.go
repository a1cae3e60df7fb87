package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"projecthub/app/models"
)

// CSVSource identifies the tracker a task export came from.
type CSVSource string

const (
	SourceJira   CSVSource = "jira"
	SourceGitLab CSVSource = "gitlab"
)

// ErrUnknownCSVFormat is returned when no source's required headers are found
// in the first line of the file.
var ErrUnknownCSVFormat = errors.New("couldn't find expected headers in file")

var candidateSeparators = []rune{',', ';', '\t'}

var expectedHeaders = map[CSVSource][]string{
	SourceJira:   {"Issue key", "Issue Type", "Summary", "Custom field (Story Points)"},
	SourceGitLab: {"Issue ID", "Title", "Assignee"},
}

// fieldMapping maps tracker columns to task fields.
var fieldMapping = map[CSVSource]map[string]string{
	SourceJira: {
		"Issue key":                   "key",
		"Issue Type":                  "type",
		"Summary":                     "summary",
		"Status":                      "status",
		"Custom field (Story Points)": "storyPoints",
	},
	SourceGitLab: {
		"Issue ID": "key",
		"Title":    "summary",
		"Assignee": "assignee",
	},
}

var statusLabelMapping = map[string]models.TaskStatus{
	"open":                 models.TaskStatusOpen,
	"to do":                models.TaskStatusTodo,
	"todo":                 models.TaskStatusTodo,
	"in progress":          models.TaskStatusInProgress,
	"done":                 models.TaskStatusDone,
	"ready for validation": models.TaskStatusInReview,
	"under investigation":  models.TaskStatusInvestigation,
	"waiting for customer": models.TaskStatusWaiting,
	"standby":              models.TaskStatusStandby,
	"cancelled":            models.TaskStatusCancelled,
	"postponed":            models.TaskStatusPostponed,
}

var typeLabelMapping = map[string]models.TaskType{
	"bug":         models.TaskTypeBug,
	"task":        models.TaskTypeTask,
	"story":       models.TaskTypeStory,
	"epic":        models.TaskTypeEpic,
	"doc":         models.TaskTypeDoc,
	"test":        models.TaskTypeTest,
	"deliverable": models.TaskTypeDeliverable,
}

// ImportedRow is one task-to-be parsed out of a CSV export.
type ImportedRow struct {
	Key         string
	Summary     string
	Type        models.TaskType
	Status      models.TaskStatus
	StoryPoints float64
}

// ImportParse is the outcome of parsing a CSV export: the usable rows plus
// the 1-based file line numbers of rows missing a key or summary.
type ImportParse struct {
	Source      CSVSource
	Rows        []ImportedRow
	SkippedRows []int
}

// DetectSourceAndSeparator inspects the header line and returns the tracker
// the file was exported from plus the separator in use.
func DetectSourceAndSeparator(headerLine string) (CSVSource, rune, error) {
	headerLine = strings.TrimPrefix(headerLine, "\ufeff")
	headerLine = strings.ReplaceAll(headerLine, `"`, "")
	for _, sep := range candidateSeparators {
		cols := strings.Split(headerLine, string(sep))
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		if containsAll(cols, expectedHeaders[SourceJira]) {
			return SourceJira, sep, nil
		}
		if containsAll(cols, expectedHeaders[SourceGitLab]) {
			return SourceGitLab, sep, nil
		}
	}
	return "", 0, ErrUnknownCSVFormat
}

func containsAll(have, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, h := range have {
		set[h] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}

// ParseTaskCSV parses a Jira or GitLab task export. Rows without a key or a
// summary are skipped and reported by file line number. Unknown status and
// type labels fall back to TODO and TASK; non-numeric story points become 0.
func ParseTaskCSV(content []byte) (ImportParse, error) {
	text := strings.TrimPrefix(string(content), "\ufeff")
	if strings.TrimSpace(text) == "" {
		return ImportParse{}, errors.New("empty CSV content")
	}

	firstLine := text
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		firstLine = text[:idx]
	}
	source, sep, err := DetectSourceAndSeparator(firstLine)
	if err != nil {
		return ImportParse{}, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return ImportParse{}, fmt.Errorf("parse CSV: %w", err)
	}
	if len(records) < 2 {
		return ImportParse{}, errors.New("CSV file has no data rows")
	}

	// Column index per task field, resolved from the header row.
	cols := map[string]int{}
	for i, header := range records[0] {
		header = strings.TrimSpace(header)
		if field, ok := fieldMapping[source][header]; ok {
			cols[field] = i
		}
	}

	parse := ImportParse{Source: source}
	for i, record := range records[1:] {
		lineNumber := i + 2

		key := cell(record, cols, "key")
		summary := cell(record, cols, "summary")
		if key == "" || summary == "" {
			parse.SkippedRows = append(parse.SkippedRows, lineNumber)
			continue
		}

		row := ImportedRow{
			Key:     key,
			Summary: summary,
			Type:    models.TaskTypeTask,
			Status:  models.TaskStatusTodo,
		}
		if raw := cell(record, cols, "type"); raw != "" {
			if t, ok := typeLabelMapping[strings.ToLower(raw)]; ok {
				row.Type = t
			}
		}
		if raw := cell(record, cols, "status"); raw != "" {
			if s, ok := statusLabelMapping[strings.ToLower(raw)]; ok {
				row.Status = s
			}
		}
		if raw := cell(record, cols, "storyPoints"); raw != "" {
			if sp, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64); err == nil {
				row.StoryPoints = sp
			}
		}

		parse.Rows = append(parse.Rows, row)
	}

	return parse, nil
}

func cell(record []string, cols map[string]int, field string) string {
	idx, ok := cols[field]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

package output

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/justin0804nitsuj/memo/models"
)

var headerCaser = cases.Title(language.English)

// header turns a column key such as "file_name" into "File Name".
func header(key string) string {
	return headerCaser.String(strings.ReplaceAll(key, "_", " "))
}

func headers(keys ...string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = header(k)
	}
	return out
}

// EntriesToTableData lays out catalog entries. The path column is shown only
// in wide mode.
func EntriesToTableData(entries []models.FileEntry, wide bool) Data {
	keys := []string{"id", "file_name", "file_type", "description"}
	if wide {
		keys = append(keys, "file_path")
	}

	d := Data{Headers: headers(keys...)}
	for _, e := range entries {
		row := []string{strconv.FormatUint(uint64(e.ID), 10), e.FileName, string(e.FileType), e.Description}
		if wide {
			row = append(row, e.FilePath)
		}
		d.Rows = append(d.Rows, row)
	}
	return d
}

// RecordToTableData lays out one full record as field/value rows.
func RecordToTableData(rec models.FileRecord) Data {
	return Data{
		Headers: headers("field", "value"),
		Rows: [][]string{
			{header("id"), strconv.FormatUint(uint64(rec.ID), 10)},
			{header("file_name"), rec.FileName},
			{header("file_path"), rec.FilePath},
			{header("file_type"), string(rec.FileType)},
			{header("description"), rec.Description},
			{header("created_at"), rec.CreatedAt.Local().Format(time.DateTime)},
		},
	}
}

// StatsToTableData lays out per-type counts with a total row.
func StatsToTableData(counts []models.TypeCount) Data {
	d := Data{Headers: headers("file_type", "count")}
	var total int64
	for _, c := range counts {
		d.Rows = append(d.Rows, []string{string(c.FileType), strconv.FormatInt(c.Count, 10)})
		total += c.Count
	}
	d.Rows = append(d.Rows, []string{"total", strconv.FormatInt(total, 10)})
	return d
}

// WriteEntries formats entries in the given format.
func WriteEntries(w io.Writer, format Format, entries []models.FileEntry) error {
	var data any = entries
	switch format {
	case FormatTable, FormatWide, "":
		data = EntriesToTableData(entries, format == FormatWide)
	}
	return NewFormatter(format).Format(w, data)
}

// WriteRecord formats a single record in the given format.
func WriteRecord(w io.Writer, format Format, rec models.FileRecord) error {
	var data any = rec
	switch format {
	case FormatTable, FormatWide, "":
		data = RecordToTableData(rec)
	}
	return NewFormatter(format).Format(w, data)
}

// WriteStats formats per-type counts in the given format.
func WriteStats(w io.Writer, format Format, counts []models.TypeCount) error {
	var data any = counts
	switch format {
	case FormatTable, FormatWide, "":
		data = StatsToTableData(counts)
	}
	return NewFormatter(format).Format(w, data)
}

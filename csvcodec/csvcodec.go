// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package csvcodec reads and writes the header-keyed CSV used by the
// submission log and roster files.
package csvcodec

import (
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SubmissionFields is the column order of the submission log
var SubmissionFields = []string{"team", "timestamp", "row", "col", "selection"}

// SubmissionHeader is the canonical first line of the submission log
const SubmissionHeader = "team,timestamp,row,col,selection\n"

// Record maps header labels to the values of one CSV line
type Record map[string]string

// Decoder turns CSV text into records.
// The zero value normalizes fields to NFC but keeps surrounding whitespace.
type Decoder struct {
	// Trim strips surrounding whitespace from every header label and field
	Trim bool
}

// Decode parses text with the lenient policy (NFC only)
func Decode(text string) []Record {
	return Decoder{}.Decode(text)
}

// DecodeStrict parses text with the strict policy (NFC and trim)
func DecodeStrict(text string) []Record {
	return Decoder{Trim: true}.Decode(text)
}

// Decode treats the first non-empty line as the header and zips every
// following non-blank line against it. Lines whose field count differs from
// the header are dropped. Duplicate header labels keep the last value.
func (d Decoder) Decode(text string) []Record {
	lines := SplitLines(text)

	headerIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	header := d.fields(lines[headerIdx])

	var records []Record
	for i := headerIdx + 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}

		values := d.fields(line)
		if len(values) != len(header) {
			slog.Warn("dropping csv row with mismatched field count",
				"line", i+1,
				"want", len(header),
				"got", len(values),
			)
			continue
		}

		record := make(Record, len(header))
		for j, label := range header {
			record[label] = values[j]
		}
		records = append(records, record)
	}

	return records
}

func (d Decoder) fields(line string) []string {
	values := ParseLine(line)
	for i, v := range values {
		v = norm.NFC.String(v)
		if d.Trim {
			v = strings.TrimSpace(v)
		}
		values[i] = v
	}
	return values
}

// SplitLines splits on \r\n, \n and bare \r
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// ParseLine splits one CSV line into raw field values.
// A double quote toggles quoted state; inside quotes "" is a literal quote
// and commas are not separators.
func ParseLine(line string) []string {
	var (
		result  []string
		current strings.Builder
		quoted  bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if quoted && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				quoted = !quoted
			}
		case c == ',' && !quoted:
			result = append(result, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	result = append(result, current.String())

	return result
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package csvcodec

import "strings"

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Encode writes a header line from fields followed by one line per row in
// field order. Fields missing from a row encode as empty values.
func Encode(rows []Record, fields []string) string {
	var b strings.Builder
	b.WriteString(EncodeRow(fields))

	values := make([]string, len(fields))
	for _, row := range rows {
		for i, f := range fields {
			values[i] = row[f]
		}
		b.WriteString(EncodeRow(values))
	}

	return b.String()
}

// EncodeRow joins values into one newline-terminated CSV line.
// Values containing commas, quotes or surrounding whitespace are quoted with
// quotes doubled. Line breaks inside a value are replaced by spaces since
// Decode splits lines before parsing fields.
func EncodeRow(values []string) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(v))
	}
	b.WriteByte('\n')
	return b.String()
}

func quote(v string) string {
	v = lineBreaks.Replace(v)
	if !strings.ContainsAny(v, `,"`) && v == strings.TrimSpace(v) {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

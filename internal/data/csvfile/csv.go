// Package csvfile implements flat-file persistence for tasks and notes.
//
// The wire contract is fixed: comma-separated records with a header row, a
// field quoted if and only if it contains a comma, a double quote, or a
// line break, embedded quotes doubled, absent values as empty fields.
package csvfile

import "strings"

// Join encodes fields as a single record without a trailing newline.
func Join(fields []string) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escape(f))
	}
	return b.String()
}

func escape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			b.WriteString(`""`)
		} else {
			b.WriteByte(s[i])
		}
	}
	b.WriteByte('"')
	return b.String()
}

// ParseRecord decodes a single record into its fields, handling quoted
// commas and doubled quotes inside quoted fields. It is the exact inverse
// of Join.
func ParseRecord(record string) []string {
	var (
		out      []string
		cur      strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(record); i++ {
		c := record[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(record) && record[i+1] == '"' {
					cur.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cur.WriteByte(c)
			}
			continue
		}
		switch c {
		case ',':
			out = append(out, cur.String())
			cur.Reset()
		case '"':
			inQuotes = true
		default:
			cur.WriteByte(c)
		}
	}
	out = append(out, cur.String())
	return out
}

// SplitRecords splits raw file contents into records. A line break inside
// a quoted field belongs to the field, not to the record boundary, so this
// cannot be a plain line split.
func SplitRecords(data string) []string {
	var (
		records  []string
		cur      strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case (c == '\n' || c == '\r') && !inQuotes:
			if c == '\r' && i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			records = append(records, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		records = append(records, cur.String())
	}
	return records
}

package analyzer

import (
	"strings"

	"readiness/internal/schema"
)

// NormalizeRow re-keys a raw row by schema path using the header map.
//
// Mapped headers absent from the row are skipped. Line-item paths never produce scalar fields; the row's lines
// collection is carried through whole, whether or not any schema path names it.
func NormalizeRow(hm HeaderMap, row RawRow) NormalizedRow {
	out := NormalizedRow{Fields: make(map[string]any, len(hm))}
	for path, header := range hm {
		if strings.HasPrefix(path, schema.LinesPrefix) {
			continue
		}
		if v, ok := row[header]; ok {
			out.Fields[path] = v
		}
	}
	if raw, ok := row[schema.LinesKey]; ok {
		out.Lines = toLineItems(raw)
	}
	return out
}

// NormalizeRows applies NormalizeRow to every row.
func NormalizeRows(hm HeaderMap, rows []RawRow) []NormalizedRow {
	out := make([]NormalizedRow, len(rows))
	for i, row := range rows {
		out[i] = NormalizeRow(hm, row)
	}
	return out
}

// toLineItems accepts the array shapes decoders and callers produce. Anything that is not an array yields nil;
// array elements that are not objects become empty line items.
func toLineItems(raw any) []LineItem {
	switch v := raw.(type) {
	case []LineItem:
		return append([]LineItem{}, v...)
	case []map[string]any:
		out := make([]LineItem, len(v))
		for i, m := range v {
			out[i] = LineItem(m)
		}
		return out
	case []any:
		out := make([]LineItem, len(v))
		for i, el := range v {
			switch m := el.(type) {
			case map[string]any:
				out[i] = LineItem(m)
			case LineItem:
				out[i] = m
			default:
				out[i] = LineItem{}
			}
		}
		return out
	default:
		return nil
	}
}

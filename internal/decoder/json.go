package decoder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"readiness/internal/analyzer"
)

var errNotArray = errors.New("top-level value must be an array of objects")

// decodeJSON reads an array of objects. Headers are the keys of the first object in document order.
func decodeJSON(data []byte) ([]string, []analyzer.RawRow, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, nil, errNotArray
	}

	headers := []string{}
	rows := []analyzer.RawRow{}
	for i := 0; dec.More(); i++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		var row analyzer.RawRow
		if err := json.Unmarshal(raw, &row); err != nil || row == nil {
			return nil, nil, fmt.Errorf("element %d: %w", i, errNotArray)
		}
		if i == 0 {
			if headers, err = objectKeys(raw); err != nil {
				return nil, nil, err
			}
		}
		rows = append(rows, row)
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	if dec.More() {
		return nil, nil, errors.New("unexpected data after top-level array")
	}
	return headers, rows, nil
}

// objectKeys lists the top-level keys of a JSON object in the order they appear.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	keys := []string{}
	seen := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, nil
}

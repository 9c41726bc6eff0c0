package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Delimiter separates CSV fields.
const Delimiter = ';'

var ErrEmpty = errors.New("no data to export")

// Row is one record flattened to its top-level fields, in the order they were encoded.
type Row struct {
	Keys   []string
	Values map[string]string
}

// ToRow flattens v through its JSON form. Nested objects and arrays are kept as JSON
// text; null becomes an empty cell.
func ToRow(v any) (Row, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Row{}, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Row{}, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Row{}, fmt.Errorf("row is not an object: %s", b)
	}

	row := Row{Values: map[string]string{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Row{}, err
		}
		key := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return Row{}, err
		}
		if _, seen := row.Values[key]; !seen {
			row.Keys = append(row.Keys, key)
		}
		row.Values[key] = cell(raw)
	}
	return row, nil
}

func cell(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	switch {
	case s == "null":
		return ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			return str
		}
	}
	return s
}

// Header is the union of the rows' keys in first-seen order.
func Header(rows []Row) []string {
	seen := map[string]bool{}
	var h []string
	for _, r := range rows {
		for _, k := range r.Keys {
			if !seen[k] {
				seen[k] = true
				h = append(h, k)
			}
		}
	}
	return h
}

// Encode writes rows as ';'-separated CSV with a header line. Missing fields are
// left empty. An empty input is an error.
func Encode(rows []Row) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	var buf bytes.Buffer
	if err := write(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter

	header := Header(rows)
	if err := cw.Write(header); err != nil {
		return err
	}
	rec := make([]string, len(header))
	for _, r := range rows {
		for i, k := range header {
			rec[i] = r.Values[k]
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename builds "{kind}-{timestamp}.csv" from the UTC ISO-8601 instant with ':' and
// '.' replaced by '-', e.g. books-2024-05-01T12-34-56-789Z.csv.
func Filename(kind string, now time.Time) string {
	ts := now.UTC().Format("2006-01-02T15:04:05.000Z")
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)
	return kind + "-" + ts + ".csv"
}

package analyzer

// RawRow is one decoded input record keyed by the user's own column headers.
// Values are scalars, or for the lines key, an array of line-item objects.
type RawRow map[string]any

// Dataset is the engine input: rows plus the column headers of the first row, in column order.
type Dataset struct {
	Headers []string
	Rows    []RawRow
}

// HeaderMap maps a schema field path to the user header that satisfies it.
type HeaderMap map[string]string

// CloseMatch is a schema field satisfied only by substring containment.
type CloseMatch struct {
	Target     string  `json:"target"`
	Candidate  string  `json:"candidate"`
	Confidence float64 `json:"confidence"`
}

// Coverage splits every schema path into exactly one of matched, close or missing.
type Coverage struct {
	Matched []string     `json:"matched"`
	Close   []CloseMatch `json:"close"`
	Missing []string     `json:"missing"`
}

// Total returns the number of schema fields the coverage was computed over.
func (c Coverage) Total() int {
	return len(c.Matched) + len(c.Close) + len(c.Missing)
}

// LineItem is one element of a row's lines collection, copied through verbatim.
type LineItem map[string]any

// NormalizedRow is a row re-keyed by schema field path.
type NormalizedRow struct {
	Fields map[string]any
	Lines  []LineItem
}

// Value returns the value stored under a schema path.
func (r NormalizedRow) Value(path string) (any, bool) {
	v, ok := r.Fields[path]
	return v, ok
}

// Scores are the category and overall readiness scores, each in [0,100].
type Scores struct {
	Data     int `json:"data"`
	Coverage int `json:"coverage"`
	Rules    int `json:"rules"`
	Posture  int `json:"posture"`
	Overall  int `json:"overall"`
}

// Meta describes the analysis run.
type Meta struct {
	RowsParsed int    `json:"rowsParsed"`
	DB         string `json:"db"`
}

// Report is the terminal artifact of an analysis. It is stored and served verbatim.
type Report struct {
	ReportID     string        `json:"reportId,omitempty"`
	Scores       Scores        `json:"scores"`
	Coverage     Coverage      `json:"coverage"`
	RuleFindings []RuleFinding `json:"ruleFindings"`
	Gaps         []string      `json:"gaps"`
	Meta         Meta          `json:"meta"`
}

// Package schema holds the GETS target schema: the ordered list of field paths a dataset is measured against,
// and the allowed value sets some of those fields declare.
package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed gets_v0_1.json
var defaultSchemaJSON []byte

// Well-known field paths read by the rule engine.
const (
	PathIssueDate    = "invoice.issue_date"
	PathCurrency     = "invoice.currency"
	PathTotalExclVAT = "invoice.total_excl_vat"
	PathVATAmount    = "invoice.vat_amount"
	PathTotalInclVAT = "invoice.total_incl_vat"
	PathSellerTRN    = "seller.trn"
	PathBuyerTRN     = "buyer.trn"

	// LinesPrefix marks array-element paths; those fields live inside the lines collection.
	LinesPrefix = "lines["
	// LinesKey is the row key that carries line items.
	LinesKey = "lines"
)

// ErrInvalidSchema is returned when a schema document cannot be used.
var ErrInvalidSchema = errors.New("invalid schema")

// Field is a single target field. Enum is empty when the field accepts any value.
type Field struct {
	Path string   `yaml:"path" json:"path"`
	Enum []string `yaml:"enum,omitempty" json:"enum,omitempty"`
}

// IsLineField reports whether the field addresses a line-item element.
func (f Field) IsLineField() bool {
	return strings.HasPrefix(f.Path, LinesPrefix)
}

type document struct {
	Name    string  `yaml:"name"`
	Version string  `yaml:"version"`
	Fields  []Field `yaml:"fields"`
}

// Schema is the loaded, read-only target schema. It is safe for concurrent use; nothing mutates it after Load.
type Schema struct {
	name    string
	version string
	fields  []Field
	byPath  map[string]int
	enums   map[string]map[string]struct{}
}

// Default returns the embedded GETS v0.1 schema.
func Default() (*Schema, error) {
	return Parse(defaultSchemaJSON)
}

// Load reads a schema from path, or returns the embedded default when path is empty.
// JSON and YAML documents are both accepted.
func Load(path string) (*Schema, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a schema document.
func Parse(data []byte) (*Schema, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return New(doc.Name, doc.Version, doc.Fields)
}

// New builds a Schema from an ordered field list. Paths must be non-empty and unique.
func New(name, version string, fields []Field) (*Schema, error) {
	s := &Schema{
		name:    name,
		version: version,
		fields:  make([]Field, 0, len(fields)),
		byPath:  make(map[string]int, len(fields)),
		enums:   make(map[string]map[string]struct{}),
	}
	for _, f := range fields {
		if strings.TrimSpace(f.Path) == "" {
			return nil, fmt.Errorf("%w: field %d has an empty path", ErrInvalidSchema, len(s.fields))
		}
		if _, dup := s.byPath[f.Path]; dup {
			return nil, fmt.Errorf("%w: duplicate path %q", ErrInvalidSchema, f.Path)
		}
		f.Enum = append([]string(nil), f.Enum...)
		s.byPath[f.Path] = len(s.fields)
		s.fields = append(s.fields, f)
		if len(f.Enum) > 0 {
			set := make(map[string]struct{}, len(f.Enum))
			for _, v := range f.Enum {
				set[v] = struct{}{}
			}
			s.enums[f.Path] = set
		}
	}
	return s, nil
}

// Name returns the schema name, e.g. "GETS".
func (s *Schema) Name() string { return s.name }

// Version returns the schema version, e.g. "0.1".
func (s *Schema) Version() string { return s.version }

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Fields returns a copy of the ordered field list.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		f.Enum = append([]string(nil), f.Enum...)
		out[i] = f
	}
	return out
}

// Paths returns the field paths in schema order.
func (s *Schema) Paths() []string {
	out := make([]string, len(s.fields))
	for i := range s.fields {
		out[i] = s.fields[i].Path
	}
	return out
}

// Field looks up a field by path.
func (s *Schema) Field(path string) (Field, bool) {
	i, ok := s.byPath[path]
	if !ok {
		return Field{}, false
	}
	f := s.fields[i]
	f.Enum = append([]string(nil), f.Enum...)
	return f, true
}

// HasEnum reports whether the field at path declares an allowed value set.
func (s *Schema) HasEnum(path string) bool {
	_, ok := s.enums[path]
	return ok
}

// Allows reports whether value is in the allowed set of the field at path.
// It returns false when the field declares no set.
func (s *Schema) Allows(path, value string) bool {
	set, ok := s.enums[path]
	if !ok {
		return false
	}
	_, ok = set[value]
	return ok
}

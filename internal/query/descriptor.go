// Package query turns list-endpoint query strings into SQL plans.
//
// Each entity declares a Descriptor: the fields callers may filter, sort and
// project on, the columns used for free-text search, its default sort, and
// an optional visibility overlay for non-privileged callers. Parse resolves
// url.Values against the descriptor (rejecting anything it does not know)
// and Build renders the request as a WHERE/ORDER BY/LIMIT plan whose count
// query shares the same predicate.
package query

import (
	"fmt"
	"strings"
)

// FieldType tells the parser how to decode filter values.
type FieldType int

const (
	Text FieldType = iota
	Int
	Float
	Bool
	Time
	UUID
	TextArray
	UUIDArray
)

func (t FieldType) ordered() bool {
	return t == Int || t == Float || t == Time
}

func (t FieldType) array() bool {
	return t == TextArray || t == UUIDArray
}

// Field maps a public attribute name onto a SQL column expression.
type Field struct {
	Name   string
	Column string
	Type   FieldType
	Filter bool
	Sort   bool
}

// Caller is the part of the request identity the overlay looks at.
type Caller interface {
	HasRole(role string) bool
}

// Condition is a SQL predicate with "?" placeholders, renumbered into $n
// positions when the plan is built. Predicates must not contain a literal "?".
type Condition struct {
	SQL  string
	Args []any
}

// Cond is shorthand for building a Condition.
func Cond(sql string, args ...any) Condition {
	return Condition{SQL: sql, Args: args}
}

// Descriptor is the per-entity configuration of the builder.
type Descriptor struct {
	Entity string
	Fields []Field
	// Aliases maps extra public filter names onto declared fields.
	Aliases map[string]string
	// TextVector is a tsvector expression; when set, search uses full-text
	// matching instead of the ILIKE scan over SearchColumns.
	TextVector    string
	SearchColumns []string
	DefaultSort   string
	// Outputs are JSON keys that may be projected in addition to Fields,
	// typically populated references.
	Outputs []string
	// Visibility returns conditions ANDed for callers the entity restricts.
	Visibility func(Caller) []Condition

	index       map[string]Field
	projectable map[string]bool
	defaultSort []SortKey
}

// MustCompile validates the descriptor and builds its lookup tables. It
// panics on configuration errors so misdeclared entities fail at startup.
func MustCompile(d Descriptor) *Descriptor {
	compiled, err := Compile(d)
	if err != nil {
		panic(err)
	}
	return compiled
}

// Compile validates the descriptor and builds its lookup tables.
func Compile(d Descriptor) (*Descriptor, error) {
	if d.Entity == "" {
		return nil, fmt.Errorf("query: descriptor without entity name")
	}
	d.index = make(map[string]Field, len(d.Fields))
	d.projectable = map[string]bool{"id": true}
	for _, f := range d.Fields {
		if f.Name == "" || f.Column == "" {
			return nil, fmt.Errorf("query: %s: field needs name and column", d.Entity)
		}
		if _, dup := d.index[f.Name]; dup {
			return nil, fmt.Errorf("query: %s: duplicate field %q", d.Entity, f.Name)
		}
		d.index[f.Name] = f
		d.projectable[f.Name] = true
	}
	for alias, target := range d.Aliases {
		if _, ok := d.index[target]; !ok {
			return nil, fmt.Errorf("query: %s: alias %q targets unknown field %q", d.Entity, alias, target)
		}
	}
	for _, out := range d.Outputs {
		d.projectable[out] = true
	}
	if d.TextVector == "" && len(d.SearchColumns) == 0 {
		return nil, fmt.Errorf("query: %s: no search strategy", d.Entity)
	}
	if d.DefaultSort == "" {
		d.DefaultSort = "-createdAt"
	}
	keys, err := d.parseSort(d.DefaultSort)
	if err != nil {
		return nil, fmt.Errorf("query: %s: default sort: %w", d.Entity, err)
	}
	d.defaultSort = keys
	return &d, nil
}

func (d *Descriptor) lookup(name string) (Field, bool) {
	if target, ok := d.Aliases[name]; ok {
		name = target
	}
	f, ok := d.index[name]
	return f, ok
}

// FilterNames lists every accepted filter key, used in error messages.
func (d *Descriptor) FilterNames() []string {
	names := make([]string, 0, len(d.index)+len(d.Aliases))
	for _, f := range d.Fields {
		if f.Filter {
			names = append(names, f.Name)
		}
	}
	for alias := range d.Aliases {
		names = append(names, alias)
	}
	return names
}

func (d *Descriptor) overlay(caller Caller) []Condition {
	if d.Visibility == nil {
		return nil
	}
	return d.Visibility(caller)
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Contains returns the ILIKE argument matching s anywhere in a column.
func Contains(s string) string {
	return "%" + escapeLike(strings.TrimSpace(s)) + "%"
}

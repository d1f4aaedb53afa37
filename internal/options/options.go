// Package options exposes plugin-style configuration options: a JSON
// schema declares each option's name, type and numeric range; a values
// document supplies user overrides. Getters report whether a value was
// actually set so callers keep their own compiled-in defaults when the
// user supplied nothing.
package options

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// DefaultSchema declares the options this effect understands. The
// defaultValue is advertised to configuration UIs; it is not treated as
// a set value.
const DefaultSchema = `{"options": [{"defaultValue": 15, "minValue": 1, "type": "int", "name": "transTime", "maxValue": 600}]}`

// Option is one declaration from the schema.
type Option struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"` // "int" | "double" | "bool" | "string"
	DefaultValue any      `json:"defaultValue,omitempty"`
	MinValue     *float64 `json:"minValue,omitempty"`
	MaxValue     *float64 `json:"maxValue,omitempty"`
}

type schema struct {
	Options []Option `json:"options"`
}

// Store holds declared options and any user-set values.
type Store struct {
	decls  map[string]Option
	values map[string]any
}

// NewStore parses an options schema document.
func NewStore(schemaJSON string) (*Store, error) {
	var sc schema
	if err := json.Unmarshal([]byte(schemaJSON), &sc); err != nil {
		return nil, fmt.Errorf("options schema: %w", err)
	}
	s := &Store{
		decls:  make(map[string]Option, len(sc.Options)),
		values: map[string]any{},
	}
	for _, o := range sc.Options {
		s.decls[o.Name] = o
	}
	return s, nil
}

// Declared returns the schema entry for name.
func (s *Store) Declared(name string) (Option, bool) {
	o, ok := s.decls[name]
	return o, ok
}

// Set records a user value for a declared option. Numeric values are
// clamped to the declared range; undeclared names and type mismatches
// are errors.
func (s *Store) Set(name string, value any) error {
	decl, ok := s.decls[name]
	if !ok {
		return fmt.Errorf("option %q: not declared", name)
	}
	switch decl.Type {
	case "int", "double":
		f, ok := asFloat(value)
		if !ok {
			return fmt.Errorf("option %q: expected %s, got %T", name, decl.Type, value)
		}
		if decl.MinValue != nil && f < *decl.MinValue {
			f = *decl.MinValue
		}
		if decl.MaxValue != nil && f > *decl.MaxValue {
			f = *decl.MaxValue
		}
		if decl.Type == "int" {
			s.values[name] = int(f)
		} else {
			s.values[name] = f
		}
	case "bool":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("option %q: expected bool, got %T", name, value)
		}
		s.values[name] = b
	case "string":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("option %q: expected string, got %T", name, value)
		}
		s.values[name] = str
	default:
		return fmt.Errorf("option %q: unknown declared type %q", name, decl.Type)
	}
	return nil
}

// LoadValues reads a flat JSON object of user values, e.g.
// {"transTime": 30}. A missing file leaves the store untouched.
// Undeclared names in the document are skipped, not fatal.
func (s *Store) LoadValues(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("options %s: %w", path, err)
	}
	for name, v := range doc {
		if _, ok := s.decls[name]; !ok {
			continue
		}
		if err := s.Set(name, v); err != nil {
			return fmt.Errorf("options %s: %w", path, err)
		}
	}
	return nil
}

// Int returns a user-set integer option.
func (s *Store) Int(name string) (int, bool) {
	v, ok := s.values[name].(int)
	return v, ok
}

// Float returns a user-set double option.
func (s *Store) Float(name string) (float64, bool) {
	v, ok := s.values[name].(float64)
	return v, ok
}

// Bool returns a user-set bool option.
func (s *Store) Bool(name string) (bool, bool) {
	v, ok := s.values[name].(bool)
	return v, ok
}

// String returns a user-set string option.
func (s *Store) String(name string) (string, bool) {
	v, ok := s.values[name].(string)
	return v, ok
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return math.NaN(), false
	}
}

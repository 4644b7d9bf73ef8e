package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unit is one translation unit: the top-level declarations of one header.
type Unit struct {
	Location
	Decls []*Node
}

// Entities returns the top-level declarations as entities.
func (u *Unit) Entities() []Entity {
	out := make([]Entity, len(u.Decls))
	for i, d := range u.Decls {
		out[i] = d
	}
	return out
}

type unitDump struct {
	Library string     `json:"library" yaml:"library"`
	File    string     `json:"file" yaml:"file"`
	Decls   []nodeDump `json:"decls" yaml:"decls"`
}

type availabilityDump struct {
	Platforms []PlatformAvailability `json:"platforms" yaml:"platforms"`
}

type nodeDump struct {
	Kind           EntityKind          `json:"kind" yaml:"kind"`
	Name           string              `json:"name" yaml:"name"`
	DisplayName    string              `json:"display_name" yaml:"display_name"`
	Library        string              `json:"library" yaml:"library"`
	File           string              `json:"file" yaml:"file"`
	Type           *Type               `json:"type" yaml:"type"`
	ResultType     *Type               `json:"result_type" yaml:"result_type"`
	UnderlyingType *Type               `json:"underlying_type" yaml:"underlying_type"`
	Availability   *availabilityDump   `json:"availability" yaml:"availability"`
	Definition     bool                `json:"definition" yaml:"definition"`
	Variadic       bool                `json:"variadic" yaml:"variadic"`
	Inline         bool                `json:"inline" yaml:"inline"`
	Static         bool                `json:"static" yaml:"static"`
	BitField       bool                `json:"bit_field" yaml:"bit_field"`
	Property       *PropertyAttributes `json:"property" yaml:"property"`
	Value          *constantValue      `json:"value" yaml:"value"`
	Expr           string              `json:"expr" yaml:"expr"`
	Macro          string              `json:"macro" yaml:"macro"`
	Children       []nodeDump          `json:"children" yaml:"children"`
}

// constantValue is an enum constant value as written in a dump. Unsigned
// values above MaxInt64 are kept as their bit pattern.
type constantValue int64

func parseConstantValue(s string, base int) (constantValue, error) {
	if v, err := strconv.ParseInt(s, base, 64); err == nil {
		return constantValue(v), nil
	}
	u, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("enum constant value %q: %w", s, err)
	}
	return constantValue(int64(u)), nil
}

func (v *constantValue) UnmarshalJSON(data []byte) error {
	parsed, err := parseConstantValue(string(data), 10)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v *constantValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: enum constant value must be a number", node.Line)
	}
	parsed, err := parseConstantValue(node.Value, 0)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = parsed
	return nil
}

func (d nodeDump) node() (*Node, error) {
	if d.Kind == "" {
		return nil, fmt.Errorf("node %q: missing kind", d.Name)
	}
	n := &Node{
		kind:        d.Kind,
		name:        d.Name,
		displayName: d.DisplayName,
		loc:         Location{Library: d.Library, File: d.File},
		ty:          d.Type,
		resultTy:    d.ResultType,
		underlying:  d.UnderlyingType,
		expr:        d.Expr,
		macro:       d.Macro,
		property:    d.Property,
		definition:  d.Definition,
		variadic:    d.Variadic,
		inline:      d.Inline,
		static:      d.Static,
		bitField:    d.BitField,
	}
	if d.Value != nil {
		v := int64(*d.Value)
		n.value = &v
	}
	if d.Availability != nil {
		n.WithAvailability(d.Availability.Platforms...)
	}
	for i, c := range d.Children {
		child, err := c.node()
		if err != nil {
			return nil, fmt.Errorf("%s child %d: %w", n, i, err)
		}
		n.children = append(n.children, child)
	}
	return n, nil
}

func (d unitDump) unit() (*Unit, error) {
	if d.Library == "" {
		return nil, fmt.Errorf("unit: missing library")
	}
	u := &Unit{Location: Location{Library: d.Library, File: d.File}}
	for i, decl := range d.Decls {
		n, err := decl.node()
		if err != nil {
			return nil, fmt.Errorf("decl %d: %w", i, err)
		}
		n.inherit(u.Location)
		u.Decls = append(u.Decls, n)
	}
	return u, nil
}

// ParseYAML decodes a YAML dump.
func ParseYAML(data []byte) (*Unit, error) {
	var d unitDump
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode yaml dump: %w", err)
	}
	return d.unit()
}

// ParseJSON decodes a JSON dump.
func ParseJSON(data []byte) (*Unit, error) {
	var d unitDump
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode json dump: %w", err)
	}
	return d.unit()
}

// LoadFile reads a dump, choosing the decoder by extension
// (.yaml, .yml or .json). When the dump names no file, the file stem is used.
func LoadFile(path string) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	var u *Unit
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		u, err = ParseYAML(data)
	case ".json":
		u, err = ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported dump format %q: %s", ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if u.File == "" {
		u.File = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		for _, n := range u.Decls {
			n.inherit(u.Location)
		}
	}
	return u, nil
}

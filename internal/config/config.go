package config

import "github.com/roach88/headergen/internal/ir"

// AnonymousEnum is the key that addresses unnamed enums.
const AnonymousEnum = "anonymous"

// MethodData overrides one method.
type MethodData struct {
	Skipped bool
	Unsafe  bool
}

// DefaultMethodData is used for methods without configuration.
var DefaultMethodData = MethodData{Unsafe: true}

// ClassData configures a class or protocol.
type ClassData struct {
	Skipped bool

	// DefinitionSkipped keeps the methods but drops the class declaration,
	// for classes declared by hand elsewhere.
	DefinitionSkipped bool

	// Derives overrides ir.DefaultDerives when non-nil.
	Derives *string

	// Methods is keyed by function name ("initWithName_count") or selector
	// ("initWithName:count:").
	Methods map[string]MethodData
}

// Method returns the override for a selector, or DefaultMethodData.
func (c ClassData) Method(selector string) MethodData {
	if m, ok := c.Methods[selector]; ok {
		return m
	}
	if m, ok := c.Methods[ir.FnNameFromSelector(selector)]; ok {
		return m
	}
	return DefaultMethodData
}

// DerivesOr returns the configured derive list, or def.
func (c ClassData) DerivesOr(def ir.Derives) ir.Derives {
	if c.Derives == nil {
		return def
	}
	return ir.Derives(*c.Derives)
}

// StructData configures a struct.
type StructData struct {
	Skipped bool
}

// ConstantData configures one enum constant.
type ConstantData struct {
	Skipped bool
}

// EnumData configures an enum.
type EnumData struct {
	Skipped bool

	// UseValue forces the evaluated integer over the literal expression.
	UseValue bool

	Constants map[string]ConstantData
}

// ConstantSkipped reports whether the named constant is skipped.
func (e EnumData) ConstantSkipped(name string) bool {
	return e.Constants[name].Skipped
}

// StaticData configures a variable.
type StaticData struct {
	Skipped bool
}

// FnData configures a function.
type FnData struct {
	Skipped bool
}

// TypedefData configures a typedef.
type TypedefData struct {
	Skipped bool
}

// Config is the merged translation configuration. It is read-only once
// loaded and safe for concurrent lookups.
type Config struct {
	Classes   map[string]ClassData
	Protocols map[string]ClassData
	Structs   map[string]StructData
	Enums     map[string]EnumData
	Statics   map[string]StaticData
	Fns       map[string]FnData
	Typedefs  map[string]TypedefData
}

// New returns an empty configuration.
func New() *Config {
	return &Config{
		Classes:   map[string]ClassData{},
		Protocols: map[string]ClassData{},
		Structs:   map[string]StructData{},
		Enums:     map[string]EnumData{},
		Statics:   map[string]StaticData{},
		Fns:       map[string]FnData{},
		Typedefs:  map[string]TypedefData{},
	}
}

func (c *Config) Class(name string) (ClassData, bool) {
	if c == nil {
		return ClassData{}, false
	}
	d, ok := c.Classes[name]
	return d, ok
}

func (c *Config) Protocol(name string) (ClassData, bool) {
	if c == nil {
		return ClassData{}, false
	}
	d, ok := c.Protocols[name]
	return d, ok
}

func (c *Config) Struct(name string) (StructData, bool) {
	if c == nil {
		return StructData{}, false
	}
	d, ok := c.Structs[name]
	return d, ok
}

// Enum looks up an enum; pass "" or AnonymousEnum for unnamed enums.
func (c *Config) Enum(name string) (EnumData, bool) {
	if c == nil {
		return EnumData{}, false
	}
	if name == "" {
		name = AnonymousEnum
	}
	d, ok := c.Enums[name]
	return d, ok
}

func (c *Config) Static(name string) (StaticData, bool) {
	if c == nil {
		return StaticData{}, false
	}
	d, ok := c.Statics[name]
	return d, ok
}

func (c *Config) Fn(name string) (FnData, bool) {
	if c == nil {
		return FnData{}, false
	}
	d, ok := c.Fns[name]
	return d, ok
}

func (c *Config) Typedef(name string) (TypedefData, bool) {
	if c == nil {
		return TypedefData{}, false
	}
	d, ok := c.Typedefs[name]
	return d, ok
}

// Symbols returns the number of configured symbols.
func (c *Config) Symbols() int {
	if c == nil {
		return 0
	}
	return len(c.Classes) + len(c.Protocols) + len(c.Structs) + len(c.Enums) +
		len(c.Statics) + len(c.Fns) + len(c.Typedefs)
}

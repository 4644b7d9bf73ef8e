package ir

import "strings"

// GenericType is a named type together with its own generic arguments.
// Used both for a class's declared type parameters and for a superclass
// instantiation such as NSArray<ObjectType>.
type GenericType struct {
	Name     string        `json:"name"`
	Generics []GenericType `json:"generics,omitempty"`
}

// Ty is rendered type text produced by the type model.
// The empty Ty means "no value" and only appears as a return type.
type Ty string

// IsVoid reports whether the type carries no value.
func (t Ty) IsVoid() bool { return t == "" }

// Expr is a rendered value expression produced by the expression model.
type Expr string

// Derives is a derive list carried opaquely through the pipeline.
type Derives string

// DefaultDerives is used when configuration does not override the list.
const DefaultDerives Derives = "Debug, PartialEq, Eq, Hash"

// EnumKind is the macro family an enum was declared with.
// The zero value means the enum carried no marker.
type EnumKind string

const (
	EnumKindNone       EnumKind = ""
	EnumKindEnum       EnumKind = "enum"        // NS_ENUM
	EnumKindOptions    EnumKind = "options"     // NS_OPTIONS, flag_enum
	EnumKindClosedEnum EnumKind = "closed_enum" // NS_CLOSED_ENUM
	EnumKindErrorEnum  EnumKind = "error_enum"  // NS_ERROR_ENUM
)

// PlatformVersion is the availability of a symbol on one platform.
type PlatformVersion struct {
	Platform    string `json:"platform"`
	Introduced  string `json:"introduced,omitempty"`
	Deprecated  string `json:"deprecated,omitempty"`
	Obsoleted   string `json:"obsoleted,omitempty"`
	Unavailable bool   `json:"unavailable,omitempty"`
}

// Availability is normalized platform availability, sorted by platform.
type Availability struct {
	Platforms []PlatformVersion `json:"platforms,omitempty"`
}

// String renders availability as "macos(10.10), ios(8.0)".
func (a Availability) String() string {
	parts := make([]string, 0, len(a.Platforms))
	for _, p := range a.Platforms {
		switch {
		case p.Unavailable:
			parts = append(parts, p.Platform+"(unavailable)")
		case p.Introduced != "":
			parts = append(parts, p.Platform+"("+p.Introduced+")")
		default:
			parts = append(parts, p.Platform)
		}
	}
	return strings.Join(parts, ", ")
}

// Arg is a named, typed parameter.
type Arg struct {
	Name string `json:"name"`
	Ty   Ty     `json:"ty"`
}

// Field is a struct field.
type Field struct {
	Name string `json:"name"`
	Ty   Ty     `json:"ty"`
}

// Variant is an enum constant with its resolved value expression.
type Variant struct {
	Name string `json:"name"`
	Expr Expr   `json:"expr"`
}

// MethodKind records where a method came from.
type MethodKind string

const (
	MethodKindMethod MethodKind = "method"
	MethodKindGetter MethodKind = "getter"
	MethodKindSetter MethodKind = "setter"
)

// Method is one entry of a Methods or ProtocolDecl method list.
type Method struct {
	Selector string     `json:"selector"` // e.g. "initWithName:count:"
	FnName   string     `json:"fn_name"`  // e.g. "initWithName_count"
	IsClass  bool       `json:"is_class"`
	Kind     MethodKind `json:"kind"`
	Args     []Arg      `json:"args,omitempty"`
	Result   Ty         `json:"result,omitempty"`
	Unsafe   bool       `json:"unsafe"`
	// ErrorOut marks the NSError** out-parameter convention: the trailing
	// error argument is dropped and the result becomes a Result type.
	ErrorOut bool `json:"error_out,omitempty"`
}

// FnNameFromSelector derives the function name of a selector:
// trailing colons are dropped and inner colons become underscores.
func FnNameFromSelector(selector string) string {
	return strings.ReplaceAll(strings.TrimRight(selector, ":"), ":", "_")
}

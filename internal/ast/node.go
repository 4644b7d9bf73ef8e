package ast

import (
	"fmt"
	"strings"
)

// Node is the concrete Entity. Build one with NewNode and the With* methods;
// builders mutate and return the receiver so calls chain.
type Node struct {
	kind        EntityKind
	name        string
	displayName string
	loc         Location

	ty         *Type
	resultTy   *Type
	underlying *Type

	value    *int64
	expr     string
	macro    string
	property *PropertyAttributes

	availability    []PlatformAvailability
	hasAvailability bool

	definition bool
	variadic   bool
	inline     bool
	static     bool
	bitField   bool

	children []*Node
}

var _ Entity = (*Node)(nil)

// NewNode creates a node of the given kind. An empty name means the node is
// anonymous.
func NewNode(kind EntityKind, name string) *Node {
	return &Node{kind: kind, name: name}
}

// Append adds children in order.
func (n *Node) Append(children ...*Node) *Node {
	n.children = append(n.children, children...)
	return n
}

// WithDisplayName sets the display name.
func (n *Node) WithDisplayName(name string) *Node {
	n.displayName = name
	return n
}

// WithType sets the declared type.
func (n *Node) WithType(t Type) *Node {
	n.ty = &t
	return n
}

// WithResultType sets the result type of a function or method.
func (n *Node) WithResultType(t Type) *Node {
	n.resultTy = &t
	return n
}

// WithUnderlyingType sets the underlying type of a typedef or enum.
func (n *Node) WithUnderlyingType(t Type) *Node {
	n.underlying = &t
	return n
}

// WithAvailability records availability. Calling it with no platforms
// records "available everywhere", which differs from never calling it.
func (n *Node) WithAvailability(platforms ...PlatformAvailability) *Node {
	n.availability = append([]PlatformAvailability{}, platforms...)
	n.hasAvailability = true
	return n
}

// WithValue sets the evaluated value of an enum constant.
func (n *Node) WithValue(v int64) *Node {
	n.value = &v
	return n
}

// WithExpr sets expression source text.
func (n *Node) WithExpr(text string) *Node {
	n.expr = text
	return n
}

// WithMacro sets the macro name of an UnexposedAttr.
func (n *Node) WithMacro(name string) *Node {
	n.macro = name
	return n
}

// WithProperty sets @property attributes.
func (n *Node) WithProperty(attrs PropertyAttributes) *Node {
	n.property = &attrs
	return n
}

// WithLocation sets the library and file the node was declared in.
// Children without a location inherit it.
func (n *Node) WithLocation(loc Location) *Node {
	n.loc = loc
	return n
}

// Definition marks the node as the defining declaration.
func (n *Node) Definition() *Node {
	n.definition = true
	return n
}

// Variadic marks a function as variadic.
func (n *Node) Variadic() *Node {
	n.variadic = true
	return n
}

// Inline marks a function as having an inline body.
func (n *Node) Inline() *Node {
	n.inline = true
	return n
}

// Static marks a function declaration as a static method.
func (n *Node) Static() *Node {
	n.static = true
	return n
}

// BitField marks a struct field as a bit-field.
func (n *Node) BitField() *Node {
	n.bitField = true
	return n
}

// Children returns the direct children.
func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) Kind() EntityKind { return n.kind }

func (n *Node) Name() (string, bool) {
	return n.name, n.name != ""
}

// DisplayName falls back to the name.
func (n *Node) DisplayName() (string, bool) {
	if n.displayName != "" {
		return n.displayName, true
	}
	return n.Name()
}

func (n *Node) Type() (Type, bool)                  { return deref(n.ty) }
func (n *Node) ResultType() (Type, bool)            { return deref(n.resultTy) }
func (n *Node) TypedefUnderlyingType() (Type, bool) { return n.underlyingOf(KindTypedefDecl) }
func (n *Node) EnumUnderlyingType() (Type, bool)    { return n.underlyingOf(KindEnumDecl) }

func (n *Node) underlyingOf(kind EntityKind) (Type, bool) {
	if n.kind != kind {
		return Type{}, false
	}
	return deref(n.underlying)
}

func (n *Node) EnumConstantValue() (int64, bool) {
	if n.value == nil {
		return 0, false
	}
	return *n.value, true
}

func (n *Node) PlatformAvailability() ([]PlatformAvailability, bool) {
	return n.availability, n.hasAvailability
}

func (n *Node) Location() Location { return n.loc }

func (n *Node) IsDefinition() bool     { return n.definition }
func (n *Node) IsVariadic() bool       { return n.variadic }
func (n *Node) IsInlineFunction() bool { return n.inline }
func (n *Node) IsStaticMethod() bool   { return n.static }
func (n *Node) IsBitField() bool       { return n.bitField }
func (n *Node) IsExpression() bool     { return n.kind.IsExpression() }

func (n *Node) PropertyAttributes() (PropertyAttributes, bool) {
	if n.property == nil {
		return PropertyAttributes{}, n.kind == KindObjCPropertyDecl
	}
	return *n.property, true
}

func (n *Node) MacroName() (string, bool) {
	return n.macro, n.macro != ""
}

func (n *Node) Expression() (string, bool) {
	return n.expr, n.expr != ""
}

// VisitChildren calls visit for each direct child in order until it
// returns Break.
func (n *Node) VisitChildren(visit func(Entity) VisitResult) {
	for _, c := range n.children {
		if visit(c) == Break {
			return
		}
	}
}

// String describes the node for diagnostics, e.g.
// `ObjCPropertyDecl "name" (Foundation/NSThread)`.
func (n *Node) String() string {
	var b strings.Builder
	b.WriteString(string(n.kind))
	if n.name != "" {
		fmt.Fprintf(&b, " %q", n.name)
	}
	if n.macro != "" {
		fmt.Fprintf(&b, " macro=%s", n.macro)
	}
	if n.expr != "" {
		fmt.Fprintf(&b, " expr=%q", n.expr)
	}
	if n.loc.Library != "" {
		fmt.Fprintf(&b, " (%s/%s)", n.loc.Library, n.loc.File)
	}
	return b.String()
}

// inherit fills missing locations down the tree.
func (n *Node) inherit(loc Location) {
	if n.loc.Library == "" {
		n.loc.Library = loc.Library
	}
	if n.loc.File == "" {
		n.loc.File = loc.File
	}
	for _, c := range n.children {
		c.inherit(n.loc)
	}
}

func deref(t *Type) (Type, bool) {
	if t == nil {
		return Type{}, false
	}
	return *t, true
}

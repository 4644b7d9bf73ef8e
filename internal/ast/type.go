package ast

import (
	"fmt"
	"strings"
)

// TypeKind classifies a Type.
type TypeKind string

const (
	TypeVoid             TypeKind = "void"
	TypePrimitive        TypeKind = "primitive"    // Name is the C spelling, e.g. "unsigned long"
	TypeTypedef          TypeKind = "typedef"      // Name is the typedef name
	TypeObjCObject       TypeKind = "objc_object"  // pointer to an object: NSString *, id, id<P>
	TypeObjCInstancetype TypeKind = "instancetype" // instancetype
	TypeObjCSel          TypeKind = "sel"
	TypeObjCClass        TypeKind = "class"
	TypePointer          TypeKind = "pointer"
	TypeConstantArray    TypeKind = "array"
	TypeRecord           TypeKind = "record" // struct or union; Name empty when anonymous
	TypeEnum             TypeKind = "enum"
	TypeBlock            TypeKind = "block"
	TypeFunctionProto    TypeKind = "function"
	TypeUnexposed        TypeKind = "unexposed"
)

// Nullability is the declared nullability of a pointer type.
type Nullability string

const (
	NullabilityUnspecified Nullability = ""
	NullabilityNonnull     Nullability = "nonnull"
	NullabilityNullable    Nullability = "nullable"
)

// Type is a resolved C or Objective-C type.
type Type struct {
	Kind TypeKind `json:"kind" yaml:"kind"`
	Name string   `json:"name,omitempty" yaml:"name,omitempty"`

	Pointee *Type `json:"pointee,omitempty" yaml:"pointee,omitempty"` // TypePointer
	Elem    *Type `json:"elem,omitempty" yaml:"elem,omitempty"`       // TypeConstantArray
	Size    int   `json:"size,omitempty" yaml:"size,omitempty"`       // TypeConstantArray

	// Underlying is the type a typedef resolves to, when known.
	Underlying *Type `json:"underlying,omitempty" yaml:"underlying,omitempty"`

	TypeArgs  []Type   `json:"type_args,omitempty" yaml:"type_args,omitempty"` // NSArray<NSString *> *
	Protocols []string `json:"protocols,omitempty" yaml:"protocols,omitempty"` // id<NSCopying>

	Const       bool        `json:"const,omitempty" yaml:"const,omitempty"`
	Nullability Nullability `json:"nullability,omitempty" yaml:"nullability,omitempty"`
}

var unsignedTypes = map[string]bool{
	"unsigned char":      true,
	"unsigned short":     true,
	"unsigned int":       true,
	"unsigned long":      true,
	"unsigned long long": true,
	"_Bool":              true,
	"NSUInteger":         true,
	"uint8_t":            true,
	"uint16_t":           true,
	"uint32_t":           true,
	"uint64_t":           true,
	"size_t":             true,
	"uintptr_t":          true,
	"UInt8":              true,
	"UInt16":             true,
	"UInt32":             true,
	"UInt64":             true,
	"CFOptionFlags":      true,
}

// IsSignedInteger reports whether t is a signed integer type. Typedefs are
// resolved through Underlying when present, otherwise by well-known name.
func (t Type) IsSignedInteger() bool {
	switch t.Kind {
	case TypePrimitive:
		switch t.Name {
		case "float", "double", "long double", "BOOL":
			return t.Name == "BOOL"
		}
		return !unsignedTypes[t.Name]
	case TypeTypedef, TypeEnum:
		if t.Underlying != nil {
			return t.Underlying.IsSignedInteger()
		}
		return !unsignedTypes[t.Name]
	default:
		return false
	}
}

// IsNSErrorOutParam reports whether t is NSError **.
func (t Type) IsNSErrorOutParam() bool {
	return t.Kind == TypePointer && t.Pointee != nil &&
		t.Pointee.Kind == TypeObjCObject && t.Pointee.Name == "NSError"
}

// String renders t in C syntax for diagnostics.
func (t Type) String() string {
	var b strings.Builder
	if t.Const {
		b.WriteString("const ")
	}
	switch t.Kind {
	case TypeVoid:
		b.WriteString("void")
	case TypePrimitive, TypeTypedef:
		b.WriteString(t.Name)
	case TypeObjCObject:
		b.WriteString(t.Name)
		if len(t.TypeArgs) > 0 {
			args := make([]string, len(t.TypeArgs))
			for i, a := range t.TypeArgs {
				args[i] = a.String()
			}
			fmt.Fprintf(&b, "<%s>", strings.Join(args, ", "))
		}
		if len(t.Protocols) > 0 {
			fmt.Fprintf(&b, "<%s>", strings.Join(t.Protocols, ", "))
		}
		if t.Name != "id" {
			b.WriteString(" *")
		}
	case TypeObjCInstancetype:
		b.WriteString("instancetype")
	case TypeObjCSel:
		b.WriteString("SEL")
	case TypeObjCClass:
		b.WriteString("Class")
	case TypePointer:
		if t.Pointee != nil {
			b.WriteString(t.Pointee.String())
		} else {
			b.WriteString("void")
		}
		b.WriteString(" *")
	case TypeConstantArray:
		if t.Elem != nil {
			b.WriteString(t.Elem.String())
		}
		fmt.Fprintf(&b, "[%d]", t.Size)
	case TypeRecord:
		b.WriteString("struct ")
		if t.Name == "" {
			b.WriteString("(anonymous)")
		} else {
			b.WriteString(t.Name)
		}
	case TypeEnum:
		b.WriteString("enum ")
		b.WriteString(t.Name)
	case TypeBlock:
		b.WriteString("(^)(...)")
	case TypeFunctionProto:
		b.WriteString("(*)(...)")
	default:
		fmt.Fprintf(&b, "<%s %s>", t.Kind, t.Name)
	}
	if t.Nullability != NullabilityUnspecified {
		b.WriteString(" _")
		b.WriteString(string(t.Nullability))
	}
	return b.String()
}

// Package ctype renders C and Objective-C types as binding type text.
//
// The same type renders differently depending on where it appears: an
// object pointer is borrowed as an argument, owned as a return value and
// raw inside a struct. Each Parse function names its position.
package ctype

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/roach88/headergen/internal/ast"
	"github.com/roach88/headergen/internal/ir"
)

// ErrUnrepresentable is returned for types the binding language cannot
// express. Callers decide whether that is fatal.
var ErrUnrepresentable = errors.New("unrepresentable type")

type position int

const (
	posArgument position = iota
	posReturn
	posStatic
	posField
	posTypedef
	posPointee
	posTypeArg
)

func (p position) String() string {
	switch p {
	case posArgument:
		return "argument"
	case posReturn:
		return "return"
	case posStatic:
		return "static"
	case posField:
		return "field"
	case posTypedef:
		return "typedef"
	case posPointee:
		return "pointee"
	default:
		return "type argument"
	}
}

var primitives = map[string]ir.Ty{
	"char":               "c_char",
	"signed char":        "c_schar",
	"unsigned char":      "c_uchar",
	"short":              "c_short",
	"unsigned short":     "c_ushort",
	"int":                "c_int",
	"unsigned int":       "c_uint",
	"long":               "c_long",
	"unsigned long":      "c_ulong",
	"long long":          "c_longlong",
	"unsigned long long": "c_ulonglong",
	"float":              "c_float",
	"double":             "c_double",
	"_Bool":              "bool",
	"BOOL":               "bool",
}

// ParseStructField renders the type of a struct field.
func ParseStructField(t ast.Type) (ir.Ty, error) { return parse(t, posField) }

// ParseEnum renders the underlying type of an enum.
func ParseEnum(t ast.Type) (ir.Ty, error) { return parse(t, posField) }

// ParseStatic renders the type of an extern or static variable.
func ParseStatic(t ast.Type) (ir.Ty, error) { return parse(t, posStatic) }

// ParseFunctionArgument renders a C function parameter type.
func ParseFunctionArgument(t ast.Type) (ir.Ty, error) { return parse(t, posArgument) }

// ParseFunctionReturn renders a C function result type; void renders empty.
func ParseFunctionReturn(t ast.Type) (ir.Ty, error) { return parse(t, posReturn) }

// ParseMethodArgument renders a method parameter type.
func ParseMethodArgument(t ast.Type) (ir.Ty, error) { return parse(t, posArgument) }

// ParseMethodReturn renders a method result type; instancetype renders as Self.
func ParseMethodReturn(t ast.Type) (ir.Ty, error) { return parse(t, posReturn) }

// ParseProperty renders a property type as getter result and setter argument.
func ParseProperty(t ast.Type) (getter, setter ir.Ty, err error) {
	if getter, err = parse(t, posReturn); err != nil {
		return "", "", err
	}
	if setter, err = parse(t, posArgument); err != nil {
		return "", "", err
	}
	return getter, setter, nil
}

// ParseTypedef renders the aliased type of a typedef named name. Blocks,
// function types, unexposed types and a record or enum of the same name
// are not representable as aliases.
func ParseTypedef(name string, t ast.Type) (ir.Ty, error) {
	switch t.Kind {
	case ast.TypeBlock, ast.TypeFunctionProto, ast.TypeUnexposed:
		return "", unrepresentable(t, posTypedef)
	case ast.TypeRecord, ast.TypeEnum:
		if t.Name == name {
			return "", unrepresentable(t, posTypedef)
		}
	case ast.TypePointer:
		if t.Pointee != nil && t.Pointee.Kind == ast.TypeFunctionProto {
			return "", unrepresentable(t, posTypedef)
		}
	}
	return parse(t, posTypedef)
}

// IsErrorResult reports whether a method result of this type, combined with a
// trailing NSError ** parameter, follows the error out-parameter convention.
func IsErrorResult(t ast.Type) bool {
	return (t.Kind == ast.TypePrimitive || t.Kind == ast.TypeTypedef) && t.Name == "BOOL"
}

func parse(t ast.Type, pos position) (ir.Ty, error) {
	switch t.Kind {
	case ast.TypeVoid:
		switch pos {
		case posReturn:
			return "", nil
		case posPointee:
			return "c_void", nil
		}
		return "", unrepresentable(t, pos)

	case ast.TypePrimitive:
		ty, ok := primitives[t.Name]
		if !ok {
			return "", unrepresentable(t, pos)
		}
		return ty, nil

	case ast.TypeTypedef:
		if t.Name == "BOOL" {
			return "bool", nil
		}
		if t.Underlying != nil && t.Underlying.Kind == ast.TypeObjCObject {
			obj := *t.Underlying
			obj.Name = t.Name
			obj.TypeArgs = nil
			if t.Nullability != ast.NullabilityUnspecified {
				obj.Nullability = t.Nullability
			}
			return object(obj, pos)
		}
		return ir.Ty(t.Name), nil

	case ast.TypeObjCObject:
		return object(t, pos)

	case ast.TypeObjCInstancetype:
		if pos != posReturn {
			return "", unrepresentable(t, pos)
		}
		return owned("Self", t.Nullability), nil

	case ast.TypeObjCSel:
		return "Sel", nil

	case ast.TypeObjCClass:
		return "&Class", nil

	case ast.TypePointer:
		if t.Pointee == nil {
			return "", unrepresentable(t, pos)
		}
		if t.Pointee.Kind == ast.TypeFunctionProto {
			return "TodoFunction", nil
		}
		inner, err := parse(*t.Pointee, posPointee)
		if err != nil {
			return "", err
		}
		if t.Pointee.Const {
			return "*const " + inner, nil
		}
		return "*mut " + inner, nil

	case ast.TypeConstantArray:
		if t.Elem == nil {
			return "", unrepresentable(t, pos)
		}
		elem, err := parse(*t.Elem, posField)
		if err != nil {
			return "", err
		}
		return ir.Ty(fmt.Sprintf("[%s; %d]", elem, t.Size)), nil

	case ast.TypeRecord, ast.TypeEnum:
		if t.Name == "" {
			return "", unrepresentable(t, pos)
		}
		return ir.Ty(t.Name), nil

	case ast.TypeBlock:
		return "TodoBlock", nil

	case ast.TypeFunctionProto:
		return "TodoFunction", nil

	default:
		return "", unrepresentable(t, pos)
	}
}

func object(t ast.Type, pos position) (ir.Ty, error) {
	name, err := objectName(t)
	if err != nil {
		return "", err
	}
	switch pos {
	case posArgument:
		if t.Nullability == ast.NullabilityNonnull {
			return ir.Ty("&" + name), nil
		}
		return ir.Ty("Option<&" + name + ">"), nil
	case posReturn:
		return owned(name, t.Nullability), nil
	case posStatic:
		return ir.Ty("&'static " + name), nil
	case posTypeArg:
		return ir.Ty(name), nil
	default:
		return ir.Ty("*mut " + name), nil
	}
}

func objectName(t ast.Type) (string, error) {
	name := t.Name
	if name == "" {
		return "", unrepresentable(t, posTypeArg)
	}
	if name == "id" {
		name = "Object"
	}
	if len(t.TypeArgs) == 0 {
		return name, nil
	}
	args := make([]string, 0, len(t.TypeArgs)+1)
	for _, a := range t.TypeArgs {
		arg, err := parse(a, posTypeArg)
		if err != nil {
			return "", err
		}
		args = append(args, string(arg))
	}
	args = append(args, "Shared")
	return name + "<" + strings.Join(args, ", ") + ">", nil
}

func owned(name string, n ast.Nullability) ir.Ty {
	id := "Id<" + name + ", Shared>"
	if n == ast.NullabilityNonnull {
		return ir.Ty(id)
	}
	return ir.Ty("Option<" + id + ">")
}

func unrepresentable(t ast.Type, pos position) error {
	return errors.Wrapf(ErrUnrepresentable, "%s as %s", t, pos)
}

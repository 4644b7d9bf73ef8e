package ctype

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/headergen/internal/ast"
	"github.com/roach88/headergen/internal/ir"
)

func obj(name string, n ast.Nullability, args ...ast.Type) ast.Type {
	return ast.Type{Kind: ast.TypeObjCObject, Name: name, Nullability: n, TypeArgs: args}
}

func ptr(pointee ast.Type) ast.Type {
	return ast.Type{Kind: ast.TypePointer, Pointee: &pointee}
}

func prim(name string) ast.Type {
	return ast.Type{Kind: ast.TypePrimitive, Name: name}
}

func TestObjectPositions(t *testing.T) {
	nullable := obj("NSString", ast.NullabilityNullable)
	nonnull := obj("NSString", ast.NullabilityNonnull)

	tests := []struct {
		name  string
		parse func(ast.Type) (ir.Ty, error)
		in    ast.Type
		want  ir.Ty
	}{
		{"argument nullable", ParseMethodArgument, nullable, "Option<&NSString>"},
		{"argument nonnull", ParseFunctionArgument, nonnull, "&NSString"},
		{"return nullable", ParseMethodReturn, nullable, "Option<Id<NSString, Shared>>"},
		{"return nonnull", ParseFunctionReturn, nonnull, "Id<NSString, Shared>"},
		{"return unspecified", ParseMethodReturn, obj("NSString", ast.NullabilityUnspecified), "Option<Id<NSString, Shared>>"},
		{"static", ParseStatic, nonnull, "&'static NSString"},
		{"field", ParseStructField, nullable, "*mut NSString"},
		{"id", ParseMethodArgument, obj("id", ast.NullabilityNonnull), "&Object"},
		{
			"generic",
			ParseMethodReturn,
			obj("NSDictionary", ast.NullabilityNonnull, obj("NSString", ""), obj("ObjectType", "")),
			"Id<NSDictionary<NSString, ObjectType, Shared>, Shared>",
		},
		{
			"nested generic",
			ParseMethodArgument,
			obj("NSArray", ast.NullabilityNonnull, obj("NSArray", "", obj("NSNumber", ""))),
			"&NSArray<NSArray<NSNumber, Shared>, Shared>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScalarsAndPointers(t *testing.T) {
	constChar := prim("char")
	constChar.Const = true

	tests := []struct {
		name string
		in   ast.Type
		want ir.Ty
	}{
		{"int", prim("int"), "c_int"},
		{"unsigned long long", prim("unsigned long long"), "c_ulonglong"},
		{"BOOL primitive", prim("BOOL"), "bool"},
		{"BOOL typedef", ast.Type{Kind: ast.TypeTypedef, Name: "BOOL"}, "bool"},
		{"typedef", ast.Type{Kind: ast.TypeTypedef, Name: "NSUInteger"}, "NSUInteger"},
		{"SEL", ast.Type{Kind: ast.TypeObjCSel}, "Sel"},
		{"Class", ast.Type{Kind: ast.TypeObjCClass}, "&Class"},
		{"void pointer", ptr(ast.Type{Kind: ast.TypeVoid}), "*mut c_void"},
		{"const char pointer", ptr(constChar), "*const c_char"},
		{"error out-param", ptr(obj("NSError", ast.NullabilityNullable)), "*mut *mut NSError"},
		{"array", ast.Type{Kind: ast.TypeConstantArray, Elem: &ast.Type{Kind: ast.TypeTypedef, Name: "CGFloat"}, Size: 4}, "[CGFloat; 4]"},
		{"record", ast.Type{Kind: ast.TypeRecord, Name: "NSRange"}, "NSRange"},
		{"block", ast.Type{Kind: ast.TypeBlock}, "TodoBlock"},
		{"function pointer", ptr(ast.Type{Kind: ast.TypeFunctionProto}), "TodoFunction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFunctionArgument(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVoid(t *testing.T) {
	got, err := ParseFunctionReturn(ast.Type{Kind: ast.TypeVoid})
	require.NoError(t, err)
	assert.True(t, got.IsVoid())

	_, err = ParseFunctionArgument(ast.Type{Kind: ast.TypeVoid})
	assert.True(t, errors.Is(err, ErrUnrepresentable))
}

func TestInstancetype(t *testing.T) {
	it := ast.Type{Kind: ast.TypeObjCInstancetype, Nullability: ast.NullabilityNonnull}
	got, err := ParseMethodReturn(it)
	require.NoError(t, err)
	assert.Equal(t, ir.Ty("Id<Self, Shared>"), got)

	it.Nullability = ast.NullabilityNullable
	got, err = ParseMethodReturn(it)
	require.NoError(t, err)
	assert.Equal(t, ir.Ty("Option<Id<Self, Shared>>"), got)

	_, err = ParseMethodArgument(it)
	assert.ErrorIs(t, err, ErrUnrepresentable)
}

func TestObjectTypedef(t *testing.T) {
	name := ast.Type{
		Kind:        ast.TypeTypedef,
		Name:        "NSNotificationName",
		Underlying:  &ast.Type{Kind: ast.TypeObjCObject, Name: "NSString"},
		Nullability: ast.NullabilityNonnull,
	}
	got, err := ParseMethodArgument(name)
	require.NoError(t, err)
	assert.Equal(t, ir.Ty("&NSNotificationName"), got)

	got, err = ParseStatic(name)
	require.NoError(t, err)
	assert.Equal(t, ir.Ty("&'static NSNotificationName"), got)
}

func TestProperty(t *testing.T) {
	getter, setter, err := ParseProperty(obj("NSString", ast.NullabilityNullable))
	require.NoError(t, err)
	assert.Equal(t, ir.Ty("Option<Id<NSString, Shared>>"), getter)
	assert.Equal(t, ir.Ty("Option<&NSString>"), setter)

	_, _, err = ParseProperty(ast.Type{Kind: ast.TypeUnexposed})
	assert.ErrorIs(t, err, ErrUnrepresentable)
}

func TestParseTypedef(t *testing.T) {
	got, err := ParseTypedef("NSTimeInterval", prim("double"))
	require.NoError(t, err)
	assert.Equal(t, ir.Ty("c_double"), got)

	got, err = ParseTypedef("NSPoint", ast.Type{Kind: ast.TypeRecord, Name: "CGPoint"})
	require.NoError(t, err)
	assert.Equal(t, ir.Ty("CGPoint"), got)

	unrepresentable := map[string]ast.Type{
		"block":             {Kind: ast.TypeBlock},
		"function":          {Kind: ast.TypeFunctionProto},
		"function pointer":  ptr(ast.Type{Kind: ast.TypeFunctionProto}),
		"unexposed":         {Kind: ast.TypeUnexposed},
		"same-named enum":   {Kind: ast.TypeEnum, Name: "NSFoo"},
		"same-named record": {Kind: ast.TypeRecord, Name: "NSFoo"},
		"anonymous record":  {Kind: ast.TypeRecord},
		"long double":       prim("long double"),
	}
	for name, ty := range unrepresentable {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTypedef("NSFoo", ty)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnrepresentable))
		})
	}
}

func TestIsErrorResult(t *testing.T) {
	assert.True(t, IsErrorResult(prim("BOOL")))
	assert.True(t, IsErrorResult(ast.Type{Kind: ast.TypeTypedef, Name: "BOOL"}))
	assert.False(t, IsErrorResult(prim("int")))
}

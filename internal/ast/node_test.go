package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeBuilders(t *testing.T) {
	n := NewNode(KindFunctionDecl, "NSLog").
		WithResultType(Type{Kind: TypeVoid}).
		Variadic().
		Append(NewNode(KindParmDecl, "format"))

	assert.Equal(t, KindFunctionDecl, n.Kind())
	name, ok := n.Name()
	assert.True(t, ok)
	assert.Equal(t, "NSLog", name)
	assert.True(t, n.IsVariadic())
	assert.False(t, n.IsInlineFunction())
	assert.Len(t, n.Children(), 1)

	rt, ok := n.ResultType()
	require.True(t, ok)
	assert.Equal(t, TypeVoid, rt.Kind)

	_, ok = n.Type()
	assert.False(t, ok)
}

func TestNodeAnonymous(t *testing.T) {
	n := NewNode(KindEnumDecl, "")
	_, ok := n.Name()
	assert.False(t, ok)
	_, ok = n.DisplayName()
	assert.False(t, ok)
}

func TestNodeAvailabilityPresence(t *testing.T) {
	missing := NewNode(KindObjCInterfaceDecl, "A")
	_, ok := missing.PlatformAvailability()
	assert.False(t, ok)

	everywhere := NewNode(KindObjCInterfaceDecl, "A").WithAvailability()
	platforms, ok := everywhere.PlatformAvailability()
	assert.True(t, ok)
	assert.Empty(t, platforms)
}

func TestNodeUnderlyingTypeIsKindSpecific(t *testing.T) {
	n := NewNode(KindEnumDecl, "E").WithUnderlyingType(Type{Kind: TypeTypedef, Name: "NSInteger"})
	_, ok := n.EnumUnderlyingType()
	assert.True(t, ok)
	_, ok = n.TypedefUnderlyingType()
	assert.False(t, ok)
}

func TestVisitChildrenBreak(t *testing.T) {
	n := NewNode(KindStructDecl, "S").Append(
		NewNode(KindFieldDecl, "a"),
		NewNode(KindFieldDecl, "b"),
		NewNode(KindFieldDecl, "c"),
	)

	var seen []string
	n.VisitChildren(func(e Entity) VisitResult {
		name, _ := e.Name()
		seen = append(seen, name)
		if name == "b" {
			return Break
		}
		return Continue
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestIsExpression(t *testing.T) {
	assert.True(t, NewNode(KindIntegerLiteral, "").IsExpression())
	assert.True(t, NewNode(KindBinaryOperator, "").IsExpression())
	assert.False(t, NewNode(KindTypeRef, "NSString").IsExpression())
}

func TestNodeString(t *testing.T) {
	n := NewNode(KindUnexposedAttr, "").WithMacro("NS_ENUM").
		WithLocation(Location{Library: "Foundation", File: "NSObjCRuntime"})
	assert.Equal(t, "UnexposedAttr macro=NS_ENUM (Foundation/NSObjCRuntime)", n.String())
}

func TestTypeIsSignedInteger(t *testing.T) {
	tests := []struct {
		ty     Type
		signed bool
	}{
		{Type{Kind: TypePrimitive, Name: "int"}, true},
		{Type{Kind: TypePrimitive, Name: "unsigned long"}, false},
		{Type{Kind: TypeTypedef, Name: "NSInteger"}, true},
		{Type{Kind: TypeTypedef, Name: "NSUInteger"}, false},
		{Type{Kind: TypeTypedef, Name: "MyFlags", Underlying: &Type{Kind: TypePrimitive, Name: "unsigned int"}}, false},
		{Type{Kind: TypePrimitive, Name: "double"}, false},
		{Type{Kind: TypeObjCObject, Name: "NSString"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.ty.String(), func(t *testing.T) {
			assert.Equal(t, tt.signed, tt.ty.IsSignedInteger())
		})
	}
}

func TestTypeString(t *testing.T) {
	ty := Type{
		Kind:        TypeObjCObject,
		Name:        "NSArray",
		TypeArgs:    []Type{{Kind: TypeObjCObject, Name: "NSString"}},
		Nullability: NullabilityNullable,
	}
	assert.Equal(t, "NSArray<NSString *> * _nullable", ty.String())

	errOut := Type{Kind: TypePointer, Pointee: &Type{Kind: TypeObjCObject, Name: "NSError"}}
	assert.Equal(t, "NSError * *", errOut.String())
	assert.True(t, errOut.IsNSErrorOutParam())
}

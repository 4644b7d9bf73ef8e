package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStmts() []Stmt {
	return []Stmt{
		&ClassDecl{
			Type:       GenericType{Name: "NSArray", Generics: []GenericType{{Name: "ObjectType"}}},
			Superclass: &GenericType{Name: "NSObject"},
			Derives:    DefaultDerives,
			Availability: Availability{Platforms: []PlatformVersion{
				{Platform: "macos", Introduced: "10.0"},
			}},
		},
		&Methods{
			Type: GenericType{Name: "NSArray"},
			Methods: []Method{
				{Selector: "count", FnName: "count", Kind: MethodKindGetter, Result: "NSUInteger", Unsafe: true},
			},
			CategoryName: "NSExtendedArray",
		},
		&ProtocolDecl{Name: "NSCopying", Protocols: []string{"NSObject"}},
		&ProtocolImpl{Type: GenericType{Name: "NSArray"}, Protocol: "NSCopying"},
		&StructDecl{Name: "NSRange", Fields: []Field{{Name: "location", Ty: "NSUInteger"}}},
		&EnumDecl{Name: "NSFoo", Ty: "NSUInteger", Kind: EnumKindOptions, Variants: []Variant{{Name: "NSFooA", Expr: "1"}}},
		&VarDecl{Name: "NSFooKey", Ty: "&'static NSString"},
		&FnDecl{Name: "NSMakeRange", Args: []Arg{{Name: "loc", Ty: "NSUInteger"}}, Result: "NSRange", Inline: true},
		&AliasDecl{Name: "NSTimeInterval", Ty: "c_double"},
	}
}

func TestMarshalStmtRoundTripsEveryVariant(t *testing.T) {
	for _, s := range sampleStmts() {
		t.Run(string(s.StmtKind()), func(t *testing.T) {
			data, err := MarshalStmt(s)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"kind":"`+string(s.StmtKind())+`"`)

			back, err := UnmarshalStmt(data)
			require.NoError(t, err)
			assert.Equal(t, s, back)
		})
	}
}

func TestMarshalStmtDoesNotEscapeHTML(t *testing.T) {
	data, err := MarshalStmt(&AliasDecl{Name: "Block", Ty: "Option<&Object>"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "Option<&Object>")
}

func TestMarshalStmtNormalizesNFC(t *testing.T) {
	// "é" as e + combining acute vs precomposed
	decomposed := &AliasDecl{Name: "Cafe\u0301", Ty: "c_int"}
	composed := &AliasDecl{Name: "Caf\u00e9", Ty: "c_int"}

	a, err := MarshalStmt(decomposed)
	require.NoError(t, err)
	b, err := MarshalStmt(composed)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))
}

func TestUnmarshalStmtRejectsUnknownKind(t *testing.T) {
	_, err := UnmarshalStmt([]byte(`{"kind":"macro_decl","stmt":{}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestMarshalStmtNil(t *testing.T) {
	_, err := MarshalStmt(nil)
	require.Error(t, err)
}

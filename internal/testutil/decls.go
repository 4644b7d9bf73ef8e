package testutil

import "github.com/roach88/headergen/internal/ast"

// Foundation is the location builders stamp on top-level declarations.
var Foundation = ast.Location{Library: "Foundation", File: "NSObject"}

// MacOS is a minimal availability accepted by the availability model.
var MacOS = ast.PlatformAvailability{Platform: "macos", Introduced: "10.0"}

// Object is a pointer to an instance of class name.
func Object(name string, n ast.Nullability) ast.Type {
	return ast.Type{Kind: ast.TypeObjCObject, Name: name, Nullability: n}
}

// Prim is a primitive C type such as "int" or "unsigned long".
func Prim(name string) ast.Type {
	return ast.Type{Kind: ast.TypePrimitive, Name: name}
}

// Typedef is a reference to a typedef, optionally resolved.
func Typedef(name string, underlying *ast.Type) ast.Type {
	return ast.Type{Kind: ast.TypeTypedef, Name: name, Underlying: underlying}
}

// Void is the void type.
func Void() ast.Type { return ast.Type{Kind: ast.TypeVoid} }

// Instancetype is the nullability-qualified instancetype.
func Instancetype(n ast.Nullability) ast.Type {
	return ast.Type{Kind: ast.TypeObjCInstancetype, Nullability: n}
}

// NSErrorOut is NSError **.
func NSErrorOut() ast.Type {
	inner := Object("NSError", ast.NullabilityNullable)
	return ast.Type{Kind: ast.TypePointer, Pointee: &inner, Nullability: ast.NullabilityNullable}
}

// Interface declares a class. An empty super declares a root class.
func Interface(name, super string, children ...*ast.Node) *ast.Node {
	n := ast.NewNode(ast.KindObjCInterfaceDecl, name).
		WithAvailability(MacOS).
		WithLocation(Foundation)
	if super == "" {
		n.Append(ast.NewNode(ast.KindObjCRootClass, ""))
	} else {
		n.Append(ast.NewNode(ast.KindObjCSuperClassRef, super))
	}
	return n.Append(children...)
}

// Category declares category name (empty for a class extension) on class.
func Category(class, name string, children ...*ast.Node) *ast.Node {
	return ast.NewNode(ast.KindObjCCategoryDecl, name).
		WithAvailability(MacOS).
		WithLocation(Foundation).
		Append(ast.NewNode(ast.KindObjCClassRef, class)).
		Append(children...)
}

// Protocol declares a protocol.
func Protocol(name string, children ...*ast.Node) *ast.Node {
	return ast.NewNode(ast.KindObjCProtocolDecl, name).
		WithAvailability(MacOS).
		WithLocation(Foundation).
		Append(children...)
}

// ProtocolRef references a protocol from a declaration body.
func ProtocolRef(name string) *ast.Node {
	return ast.NewNode(ast.KindObjCProtocolRef, name)
}

// Generic declares a type parameter.
func Generic(name string) *ast.Node {
	return ast.NewNode(ast.KindTemplateTypeParameter, name).WithDisplayName(name)
}

// Method declares an instance method.
func Method(selector string, result ast.Type, params ...*ast.Node) *ast.Node {
	return ast.NewNode(ast.KindObjCInstanceMethodDecl, selector).
		WithResultType(result).
		Append(params...)
}

// ClassMethod declares a class method.
func ClassMethod(selector string, result ast.Type, params ...*ast.Node) *ast.Node {
	return ast.NewNode(ast.KindObjCClassMethodDecl, selector).
		WithResultType(result).
		Append(params...)
}

// Param declares a parameter; an empty name is anonymous.
func Param(name string, ty ast.Type) *ast.Node {
	return ast.NewNode(ast.KindParmDecl, name).WithType(ty)
}

// Property declares a property.
func Property(name string, ty ast.Type, attrs ast.PropertyAttributes) *ast.Node {
	return ast.NewNode(ast.KindObjCPropertyDecl, name).
		WithType(ty).
		WithProperty(attrs)
}

// Accessors returns the getter and, unless readonly, setter method nodes the
// frontend synthesizes for a property.
func Accessors(name string, ty ast.Type, attrs ast.PropertyAttributes) []*ast.Node {
	build := Method
	if attrs.Class {
		build = ClassMethod
	}
	getter := attrs.Getter
	if getter == "" {
		getter = name
	}
	out := []*ast.Node{build(getter, ty)}
	if attrs.ReadOnly {
		return out
	}
	setter := attrs.Setter
	if setter == "" {
		setter = "set" + upperFirst(name) + ":"
	}
	return append(out, build(setter, Void(), Param(name, ty)))
}

// Enum declares a defining enum node.
func Enum(name string, underlying ast.Type, children ...*ast.Node) *ast.Node {
	return ast.NewNode(ast.KindEnumDecl, name).
		WithUnderlyingType(underlying).
		WithLocation(Foundation).
		Definition().
		Append(children...)
}

// Constant declares an enum constant with its evaluated value and, when
// expr is non-empty, its source expression.
func Constant(name string, value int64, expr string) *ast.Node {
	n := ast.NewNode(ast.KindEnumConstantDecl, name).WithValue(value)
	if expr != "" {
		n.WithExpr(expr)
	}
	return n
}

// Macro is an UnexposedAttr expanded from macro.
func Macro(macro string) *ast.Node {
	return ast.NewNode(ast.KindUnexposedAttr, "").WithMacro(macro)
}

// Struct declares a struct with the given fields.
func Struct(name string, fields ...*ast.Node) *ast.Node {
	return ast.NewNode(ast.KindStructDecl, name).
		WithLocation(Foundation).
		Definition().
		Append(fields...)
}

// Field declares a struct field.
func Field(name string, ty ast.Type) *ast.Node {
	return ast.NewNode(ast.KindFieldDecl, name).WithType(ty)
}

// Var declares a variable, optionally with an initializer expression node.
func Var(name string, ty ast.Type, init *ast.Node) *ast.Node {
	n := ast.NewNode(ast.KindVarDecl, name).WithType(ty).WithLocation(Foundation)
	if init != nil {
		n.Append(init)
	}
	return n
}

// Literal is an initializer expression node of the given kind.
func Literal(kind ast.EntityKind, text string) *ast.Node {
	return ast.NewNode(kind, "").WithExpr(text)
}

// Fn declares a function.
func Fn(name string, result ast.Type, params ...*ast.Node) *ast.Node {
	return ast.NewNode(ast.KindFunctionDecl, name).
		WithResultType(result).
		WithLocation(Foundation).
		Append(params...)
}

// Alias declares a typedef of underlying.
func Alias(name string, underlying ast.Type, children ...*ast.Node) *ast.Node {
	return ast.NewNode(ast.KindTypedefDecl, name).
		WithUnderlyingType(underlying).
		WithLocation(Foundation).
		Append(children...)
}

func upperFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

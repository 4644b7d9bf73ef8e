package render

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/roach88/headergen/internal/ir"
)

// rootClass is the superclass of classes without one.
var rootClass = ir.GenericType{Name: "Object"}

// Stmts renders statements in order, separating non-empty blocks with a
// blank line.
func Stmts(stmts []ir.Stmt) string {
	blocks := make([]string, 0, len(stmts))
	for _, s := range stmts {
		if text := Stmt(s); text != "" {
			blocks = append(blocks, text)
		}
	}
	return strings.Join(blocks, "\n")
}

// Stmt renders one statement. Every non-empty result ends in a newline.
func Stmt(s ir.Stmt) string {
	w := &writer{}
	switch s := s.(type) {
	case *ir.ClassDecl:
		w.classDecl(s)
	case *ir.Methods:
		w.methods(s)
	case *ir.ProtocolDecl:
		w.protocolDecl(s)
	case *ir.ProtocolImpl:
		// conformances are not emitted yet
	case *ir.StructDecl:
		w.structDecl(s)
	case *ir.EnumDecl:
		w.enumDecl(s)
	case *ir.VarDecl:
		w.varDecl(s)
	case *ir.FnDecl:
		w.fnDecl(s)
	case *ir.AliasDecl:
		w.linef("pub type %s = %s;", s.Name, s.Ty)
	default:
		panic(errors.AssertionFailedf("render: unhandled statement %T", s))
	}
	return w.String()
}

// Method renders the two lines of a method inside an impl block, without a
// trailing newline.
func Method(m ir.Method) string {
	attr := "method"
	if returnsID(m) {
		attr = "method_id"
	}

	params := make([]string, 0, len(m.Args)+1)
	if !m.IsClass {
		params = append(params, "&self")
	}
	for _, a := range m.Args {
		params = append(params, HandleReserved(a.Name)+": "+string(a.Ty))
	}

	qualifier := "pub fn"
	if m.Unsafe {
		qualifier = "pub unsafe fn"
	}
	return fmt.Sprintf("        #[%s(%s)]\n        %s %s(%s)%s;",
		attr, m.Selector, qualifier, HandleReserved(m.FnName), strings.Join(params, ", "), result(m.Result))
}

// returnsID reports whether the method hands back a retained object.
func returnsID(m ir.Method) bool {
	return !m.ErrorOut && strings.Contains(string(m.Result), "Id<")
}

func result(ty ir.Ty) string {
	if ty.IsVoid() {
		return ""
	}
	return " -> " + string(ty)
}

type writer struct {
	strings.Builder
}

func (w *writer) linef(format string, args ...any) {
	fmt.Fprintf(w, format, args...)
	w.WriteByte('\n')
}

func (w *writer) line(s string) {
	w.WriteString(s)
	w.WriteByte('\n')
}

func (w *writer) classDecl(s *ir.ClassDecl) {
	superclass := rootClass
	if s.Superclass != nil {
		superclass = *s.Superclass
	}

	generics := s.Type.Generics
	if len(generics) == 0 {
		w.line("extern_class!(")
		w.derives(s.Derives)
		w.linef("    pub struct %s;", s.Type.Name)
	} else {
		w.line("__inner_extern_class!(")
		w.derives(s.Derives)
		params := make([]string, 0, 2*len(generics))
		for _, g := range generics {
			params = append(params, g.Name+": Message = Object")
		}
		for _, g := range generics {
			params = append(params, g.Name+"Ownership: Ownership = Shared")
		}
		w.linef("    pub struct %s<%s> {", s.Type.Name, strings.Join(params, ", "))
		for i, g := range generics {
			w.linef("        _inner%d: PhantomData<*mut (%s, %sOwnership)>,", i, g.Name, g.Name)
		}
		w.line("        notunwindsafe: PhantomData<&'static mut ()>,")
		w.line("    }")
	}
	w.line("")
	w.linef("    unsafe impl%s ClassType for %s {", genericParams(generics), genericType(s.Type))
	w.linef("        type Super = %s;", genericType(superclass))
	w.line("    }")
	w.line(");")
}

func (w *writer) derives(d ir.Derives) {
	if d != "" {
		w.linef("    #[derive(%s)]", d)
	}
}

func (w *writer) methods(s *ir.Methods) {
	w.line("extern_methods!(")
	if s.CategoryName != "" {
		w.linef("    /// %s", s.CategoryName)
	}
	w.linef("    unsafe impl%s %s {", genericParams(s.Type.Generics), genericType(s.Type))
	w.methodLines(s.Methods)
	w.line("    }")
	w.line(");")
}

func (w *writer) protocolDecl(s *ir.ProtocolDecl) {
	w.line("extern_protocol!(")
	w.linef("    pub struct %s;", s.Name)
	w.line("")
	w.linef("    unsafe impl ProtocolType for %s {", s.Name)
	w.methodLines(s.Methods)
	w.line("    }")
	w.line(");")
}

func (w *writer) methodLines(methods []ir.Method) {
	for i, m := range methods {
		if i > 0 {
			w.line("")
		}
		w.line(Method(m))
	}
}

func (w *writer) structDecl(s *ir.StructDecl) {
	w.line("extern_struct!(")
	w.linef("    pub struct %s {", s.Name)
	for _, f := range s.Fields {
		vis := "pub "
		if strings.HasPrefix(f.Name, "_") {
			vis = ""
		}
		w.linef("        %s%s: %s,", vis, f.Name, f.Ty)
	}
	w.line("    }")
	w.line(");")
}

// enumMacros maps an enum kind to the macro that declares it.
var enumMacros = map[ir.EnumKind]string{
	ir.EnumKindNone:       "extern_enum",
	ir.EnumKindEnum:       "ns_enum",
	ir.EnumKindOptions:    "ns_options",
	ir.EnumKindClosedEnum: "ns_closed_enum",
	ir.EnumKindErrorEnum:  "ns_error_enum",
}

func (w *writer) enumDecl(s *ir.EnumDecl) {
	macro, ok := enumMacros[s.Kind]
	if !ok {
		panic(errors.AssertionFailedf("render: unknown enum kind %q", s.Kind))
	}
	w.linef("%s!(", macro)
	w.linef("    #[underlying(%s)]", s.Ty)
	if s.Name == "" {
		w.line("    pub enum {")
	} else {
		w.linef("    pub enum %s {", s.Name)
	}
	for _, v := range s.Variants {
		w.linef("        %s = %s,", v.Name, v.Expr)
	}
	w.line("    }")
	w.line(");")
}

func (w *writer) varDecl(s *ir.VarDecl) {
	if s.Value == "" {
		w.linef("extern_static!(%s: %s);", s.Name, s.Ty)
		return
	}
	w.linef("extern_static!(%s: %s = %s);", s.Name, s.Ty, s.Value)
}

func (w *writer) fnDecl(s *ir.FnDecl) {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = HandleReserved(a.Name) + ": " + string(a.Ty)
	}
	signature := fmt.Sprintf("    pub unsafe fn %s(%s)%s", s.Name, strings.Join(args, ", "), result(s.Result))

	if !s.Inline {
		w.line("extern_fn!(")
		w.line(signature + ";")
		w.line(");")
		return
	}
	w.line("inline_fn!(")
	w.line(signature + " {")
	w.line("        todo!()")
	w.line("    }")
	w.line(");")
}

// genericType renders "Name" or "Name<T, TOwnership>".
func genericType(t ir.GenericType) string {
	if len(t.Generics) == 0 {
		return t.Name
	}
	args := make([]string, 0, 2*len(t.Generics))
	for _, g := range t.Generics {
		args = append(args, genericType(g))
	}
	for _, g := range t.Generics {
		args = append(args, genericType(g)+"Ownership")
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

// genericParams renders the impl parameter list for generics, or "".
func genericParams(generics []ir.GenericType) string {
	if len(generics) == 0 {
		return ""
	}
	params := make([]string, 0, 2*len(generics))
	for _, g := range generics {
		params = append(params, g.Name+": Message")
	}
	for _, g := range generics {
		params = append(params, g.Name+"Ownership: Ownership")
	}
	return "<" + strings.Join(params, ", ") + ">"
}

package translator

import (
	"go.uber.org/zap"

	"github.com/roach88/headergen/internal/ast"
	"github.com/roach88/headergen/internal/ir"
	"github.com/roach88/headergen/internal/logger"
)

// enumMacros maps the macros an UnexposedAttr can expand from to the enum
// kind they declare.
var enumMacros = map[string]ir.EnumKind{
	"NS_ENUM":        ir.EnumKindEnum,
	"CF_ENUM":        ir.EnumKindEnum,
	"NS_OPTIONS":     ir.EnumKindOptions,
	"CF_OPTIONS":     ir.EnumKindOptions,
	"NS_CLOSED_ENUM": ir.EnumKindClosedEnum,
	"CF_CLOSED_ENUM": ir.EnumKindClosedEnum,
	"NS_ERROR_ENUM":  ir.EnumKindErrorEnum,
}

// enumMacro returns the enum kind of an UnexposedAttr.
func enumMacro(e ast.Entity) (ir.EnumKind, bool) {
	name, ok := e.MacroName()
	if !ok {
		return ir.EnumKindNone, false
	}
	kind, ok := enumMacros[name]
	return kind, ok
}

// rejectEnumMacro fails on an enum macro attached to a declaration that is
// not an enum, and logs any other macro.
func (t *Translator) rejectEnumMacro(e ast.Entity, decl declRef) error {
	if _, ok := enumMacro(e); ok {
		macro, _ := e.MacroName()
		return fatalf(ErrUnexpectedAttribute, e, decl, "unexpected attribute %s on %s", macro, decl.section)
	}
	t.dropAttr(e, decl)
	return nil
}

// dropAttr logs an attribute that carries nothing the IR models.
func (t *Translator) dropAttr(e ast.Entity, decl declRef) {
	macro, ok := e.MacroName()
	if !ok {
		return
	}
	t.log.Debug("attribute dropped",
		zap.String(logger.FieldDecl, decl.name),
		zap.String(logger.FieldMacro, macro))
}

// enumKind accumulates the kind markers of one enum. Only agreeing writes
// are accepted.
type enumKind struct {
	kind ir.EnumKind
	set  bool
}

func (k *enumKind) add(kind ir.EnumKind) bool {
	if k.set {
		return k.kind == kind
	}
	k.kind, k.set = kind, true
	return true
}

package translator

import (
	"go.uber.org/zap"

	"github.com/roach88/headergen/internal/ast"
	"github.com/roach88/headergen/internal/ctype"
	"github.com/roach88/headergen/internal/ir"
	"github.com/roach88/headergen/internal/logger"
)

// parseStruct reads the body of a struct declared under name.
func (t *Translator) parseStruct(e ast.Entity, decl declRef, name string) (*ir.StructDecl, error) {
	s := &ir.StructDecl{Name: name}
	var walkErr error

	e.VisitChildren(func(child ast.Entity) ast.VisitResult {
		switch child.Kind() {
		case ast.KindUnexposedAttr:
			walkErr = t.rejectEnumMacro(child, decl)
		case ast.KindFieldDecl:
			var f ir.Field
			f, walkErr = t.parseField(child, decl)
			s.Fields = append(s.Fields, f)
		case ast.KindObjCBoxable:
			s.Boxable = true
		default:
			walkErr = fatalf(ErrUnknownChild, child, decl, "unknown struct child in %s", name)
		}
		if walkErr != nil {
			return ast.Break
		}
		return ast.Continue
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return s, nil
}

func (t *Translator) parseField(e ast.Entity, decl declRef) (ir.Field, error) {
	name, err := requireName(e, decl, "struct field name")
	if err != nil {
		return ir.Field{}, err
	}
	raw, ok := e.Type()
	if !ok {
		return ir.Field{}, fatalf(ErrMissingMetadata, e, decl, "struct field type missing")
	}
	ty, err := ctype.ParseStructField(raw)
	if err != nil {
		return ir.Field{}, fatalf(ErrUnrepresentableType, e, decl, "field %s: %v", name, err)
	}
	if e.IsBitField() {
		t.log.Warn("unsound struct bit-field",
			zap.String(logger.FieldDecl, decl.name),
			zap.String("field", name))
	}
	return ir.Field{Name: name, Ty: ty}, nil
}

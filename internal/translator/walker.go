package translator

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/headergen/internal/ast"
	"github.com/roach88/headergen/internal/config"
	"github.com/roach88/headergen/internal/ir"
	"github.com/roach88/headergen/internal/logger"
)

// superclassSlot receives the superclass of a class. A resolved slot with a
// nil ty is a root class.
type superclassSlot struct {
	resolved bool
	ty       *ir.GenericType
}

// slots are the optional outputs of walkBody; which ones are present
// selects the mode.
type slots struct {
	superclass *superclassSlot
	generics   *[]ir.GenericType
}

type walkMode int

const (
	modeProtocol walkMode = iota
	modeCategory
	modeClass
)

func (m walkMode) String() string {
	switch m {
	case modeClass:
		return "class"
	case modeCategory:
		return "category"
	default:
		return "protocol"
	}
}

func (s slots) mode() walkMode {
	switch {
	case s.superclass != nil:
		return modeClass
	case s.generics != nil:
		return modeCategory
	default:
		return modeProtocol
	}
}

// accessorKey identifies a method by side and function name.
type accessorKey struct {
	isClass bool
	fnName  string
}

// legacyUnmatchedSetter is the one property accessor tolerated without a
// matching method node.
var legacyUnmatchedSetter = accessorKey{isClass: false, fnName: "setDisplayName"}

// body is what walkBody collects.
type body struct {
	protocols []string
	methods   []ir.Method
}

// walkBody classifies the children of a class, category or protocol.
func (t *Translator) walkBody(e ast.Entity, decl declRef, out slots, data config.ClassData) (body, error) {
	var (
		b       body
		pending = map[accessorKey]bool{}
		mode    = out.mode()
		walkErr error
	)

	unsupported := func(child ast.Entity, what string) error {
		return fatalf(ErrUnknownChild, child, decl, "unsupported %s in %s mode", what, mode)
	}

	e.VisitChildren(func(child ast.Entity) ast.VisitResult {
		switch child.Kind() {
		case ast.KindObjCExplicitProtocolImpl:
			if mode != modeProtocol {
				walkErr = unsupported(child, "explicit protocol implementation")
			}

		case ast.KindObjCIvarDecl:
			if mode != modeClass {
				walkErr = unsupported(child, "instance variable")
			}

		case ast.KindObjCSuperClassRef:
			if mode != modeClass {
				walkErr = unsupported(child, "superclass")
				break
			}
			var name string
			if name, walkErr = requireName(child, decl, "superclass name"); walkErr == nil {
				// generic arguments are filled in by the TypeRef children
				*out.superclass = superclassSlot{resolved: true, ty: &ir.GenericType{Name: name}}
			}

		case ast.KindObjCRootClass:
			if mode != modeClass {
				walkErr = unsupported(child, "root class")
				break
			}
			*out.superclass = superclassSlot{resolved: true}

		case ast.KindObjCClassRef:
			if mode != modeCategory {
				walkErr = unsupported(child, "class reference")
			}

		case ast.KindTemplateTypeParameter:
			if out.generics == nil {
				walkErr = unsupported(child, "generic parameter")
				break
			}
			name, ok := child.DisplayName()
			if !ok {
				walkErr = fatalf(ErrMissingMetadata, child, decl, "generic parameter name missing")
				break
			}
			*out.generics = append(*out.generics, ir.GenericType{Name: name})

		case ast.KindObjCProtocolRef:
			var name string
			if name, walkErr = requireName(child, decl, "protocol name"); walkErr == nil {
				b.protocols = append(b.protocols, name)
			}

		case ast.KindObjCInstanceMethodDecl, ast.KindObjCClassMethodDecl:
			walkErr = t.visitMethod(child, decl, data, pending, &b)

		case ast.KindObjCPropertyDecl:
			walkErr = t.visitProperty(child, decl, data, pending, &b)

		case ast.KindVisibilityAttr:

		case ast.KindTypeRef:
			if mode != modeClass || !out.superclass.resolved || out.superclass.ty == nil {
				walkErr = unsupported(child, "type reference")
				break
			}
			var name string
			if name, walkErr = requireName(child, decl, "type reference name"); walkErr == nil {
				sc := out.superclass.ty
				sc.Generics = append(sc.Generics, ir.GenericType{Name: name})
			}

		case ast.KindObjCException:
			if mode != modeClass {
				walkErr = unsupported(child, "exception marker")
			}

		case ast.KindUnexposedAttr:
			if kind, ok := enumMacro(child); ok {
				t.log.Debug("annotation",
					zap.String(logger.FieldDecl, decl.name),
					zap.String(logger.FieldKind, string(kind)))
			} else {
				t.dropAttr(child, decl)
			}

		default:
			walkErr = fatalf(ErrUnknownChild, child, decl, "unknown %s child", mode)
		}

		if walkErr != nil {
			return ast.Break
		}
		return ast.Continue
	})
	if walkErr != nil {
		return body{}, walkErr
	}

	if len(pending) > 0 && !(len(pending) == 1 && pending[legacyUnmatchedSetter]) {
		return body{}, fatalf(ErrUnmatchedAccessor, e, decl, "did not find methods for properties: %s", describePending(pending))
	}
	return b, nil
}

// visitMethod drops method nodes that a property already produced and parses
// the rest.
func (t *Translator) visitMethod(e ast.Entity, decl declRef, data config.ClassData, pending map[accessorKey]bool, b *body) error {
	partial, err := partialMethod(e, decl)
	if err != nil {
		return err
	}
	key := accessorKey{isClass: partial.isClass, fnName: partial.fnName}
	if pending[key] {
		delete(pending, key)
		return nil
	}

	m, ok, err := t.parseMethod(e, decl, partial, data.Method(partial.selector))
	if err != nil || !ok {
		return err
	}
	b.methods = append(b.methods, m)
	return nil
}

// visitProperty registers the accessors of a property as pending and emits
// them right away.
func (t *Translator) visitProperty(e ast.Entity, decl declRef, data config.ClassData, pending map[accessorKey]bool, b *body) error {
	partial, err := partialProperty(e, decl)
	if err != nil {
		return err
	}

	keys := []accessorKey{{isClass: partial.isClass, fnName: ir.FnNameFromSelector(partial.getter)}}
	if partial.setter != "" {
		keys = append(keys, accessorKey{isClass: partial.isClass, fnName: ir.FnNameFromSelector(partial.setter)})
	}
	for _, k := range keys {
		if pending[k] {
			return fatalf(ErrDuplicateProperty, e, decl, "already existing property accessor %s", k.fnName)
		}
		pending[k] = true
	}

	getterData := data.Method(partial.getter)
	var setterData config.MethodData
	if partial.setter != "" {
		setterData = data.Method(partial.setter)
	}

	getter, setter, err := t.parseProperty(e, decl, partial, getterData, setterData)
	if err != nil {
		return err
	}
	if getter != nil {
		b.methods = append(b.methods, *getter)
	}
	if setter != nil {
		b.methods = append(b.methods, *setter)
	}
	return nil
}

func describePending(pending map[accessorKey]bool) string {
	names := make([]string, 0, len(pending))
	for k := range pending {
		side := "-"
		if k.isClass {
			side = "+"
		}
		names = append(names, fmt.Sprintf("%s%s", side, k.fnName))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

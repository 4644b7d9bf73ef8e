package translator

import (
	"unicode"
	"unicode/utf8"

	"github.com/roach88/headergen/internal/ast"
	"github.com/roach88/headergen/internal/config"
	"github.com/roach88/headergen/internal/ctype"
	"github.com/roach88/headergen/internal/ir"
)

// errorResult is the result of a method following the NSError out-parameter
// convention.
var errorResult = ir.Ty("Result<(), Id<" + ir.NSError().Name + ", Shared>>")

type methodPartial struct {
	selector string
	fnName   string
	isClass  bool
}

func partialMethod(e ast.Entity, decl declRef) (methodPartial, error) {
	selector, err := requireName(e, decl, "method selector")
	if err != nil {
		return methodPartial{}, err
	}
	return methodPartial{
		selector: selector,
		fnName:   ir.FnNameFromSelector(selector),
		isClass:  e.Kind() == ast.KindObjCClassMethodDecl,
	}, nil
}

// methodChildren are ignored children of a method or property node.
var methodChildren = map[ast.EntityKind]bool{
	ast.KindTypeRef:                   true,
	ast.KindObjCClassRef:              true,
	ast.KindObjCProtocolRef:           true,
	ast.KindVisibilityAttr:            true,
	ast.KindNSReturnsRetained:         true,
	ast.KindNSReturnsNotRetained:      true,
	ast.KindNSConsumesSelf:            true,
	ast.KindNSConsumed:                true,
	ast.KindObjCReturnsInnerPointer:   true,
	ast.KindObjCDesignatedInitializer: true,
	ast.KindObjCRequiresSuper:         true,
	ast.KindIBActionAttr:              true,
	ast.KindIBOutletAttr:              true,
	ast.KindWarnUnusedResultAttr:      true,
}

// parseMethod builds a method from its node. ok is false when the method is
// skipped by config.
func (t *Translator) parseMethod(e ast.Entity, decl declRef, p methodPartial, data config.MethodData) (ir.Method, bool, error) {
	if data.Skipped {
		return ir.Method{}, false, nil
	}

	var (
		args    []ir.Arg
		rawArgs []ast.Type
		walkErr error
	)
	e.VisitChildren(func(child ast.Entity) ast.VisitResult {
		switch {
		case child.Kind() == ast.KindParmDecl:
			var arg ir.Arg
			if arg, walkErr = parseParam(child, decl, ctype.ParseMethodArgument); walkErr == nil {
				raw, _ := child.Type()
				args = append(args, arg)
				rawArgs = append(rawArgs, raw)
			}
		case child.Kind() == ast.KindUnexposedAttr:
			walkErr = t.rejectEnumMacro(child, decl)
		case methodChildren[child.Kind()]:
		default:
			walkErr = fatalf(ErrUnknownChild, child, decl, "unknown method child in %s", p.selector)
		}
		if walkErr != nil {
			return ast.Break
		}
		return ast.Continue
	})
	if walkErr != nil {
		return ir.Method{}, false, walkErr
	}

	rawResult, ok := e.ResultType()
	if !ok {
		return ir.Method{}, false, fatalf(ErrMissingMetadata, e, decl, "method result type missing")
	}
	result, err := ctype.ParseMethodReturn(rawResult)
	if err != nil {
		return ir.Method{}, false, fatalf(ErrUnrepresentableType, e, decl, "result of %s: %v", p.selector, err)
	}

	m := ir.Method{
		Selector: p.selector,
		FnName:   p.fnName,
		IsClass:  p.isClass,
		Kind:     ir.MethodKindMethod,
		Args:     args,
		Result:   result,
		Unsafe:   data.Unsafe,
	}

	if n := len(rawArgs); n > 0 && rawArgs[n-1].IsNSErrorOutParam() && ctype.IsErrorResult(rawResult) {
		m.Args = m.Args[:n-1]
		m.Result = errorResult
		m.ErrorOut = true
	}
	return m, true, nil
}

type propertyPartial struct {
	name    string
	getter  string // selector
	setter  string // selector, empty when read-only
	isClass bool
}

func partialProperty(e ast.Entity, decl declRef) (propertyPartial, error) {
	name, err := requireName(e, decl, "property name")
	if err != nil {
		return propertyPartial{}, err
	}
	attrs, _ := e.PropertyAttributes()

	p := propertyPartial{name: name, getter: name, isClass: attrs.Class}
	if attrs.Getter != "" {
		p.getter = attrs.Getter
	}
	if !attrs.ReadOnly {
		p.setter = attrs.Setter
		if p.setter == "" {
			p.setter = defaultSetter(name)
		}
	}
	return p, nil
}

// defaultSetter returns "setName:" for property "name".
func defaultSetter(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return "set" + string(unicode.ToUpper(r)) + name[size:] + ":"
}

// parseProperty builds the accessors of a property. Accessors skipped by
// config are nil.
func (t *Translator) parseProperty(e ast.Entity, decl declRef, p propertyPartial, getterData, setterData config.MethodData) (getter, setter *ir.Method, err error) {
	var walkErr error
	e.VisitChildren(func(child ast.Entity) ast.VisitResult {
		switch {
		case child.Kind() == ast.KindUnexposedAttr:
			walkErr = t.rejectEnumMacro(child, decl)
		case methodChildren[child.Kind()]:
		default:
			walkErr = fatalf(ErrUnknownChild, child, decl, "unknown property child in %s", p.name)
		}
		if walkErr != nil {
			return ast.Break
		}
		return ast.Continue
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}

	raw, ok := e.Type()
	if !ok {
		return nil, nil, fatalf(ErrMissingMetadata, e, decl, "property type missing")
	}
	getterTy, setterTy, err := ctype.ParseProperty(raw)
	if err != nil {
		return nil, nil, fatalf(ErrUnrepresentableType, e, decl, "property %s: %v", p.name, err)
	}

	if !getterData.Skipped {
		getter = &ir.Method{
			Selector: p.getter,
			FnName:   ir.FnNameFromSelector(p.getter),
			IsClass:  p.isClass,
			Kind:     ir.MethodKindGetter,
			Result:   getterTy,
			Unsafe:   getterData.Unsafe,
		}
	}
	if p.setter != "" && !setterData.Skipped {
		setter = &ir.Method{
			Selector: p.setter,
			FnName:   ir.FnNameFromSelector(p.setter),
			IsClass:  p.isClass,
			Kind:     ir.MethodKindSetter,
			Args:     []ir.Arg{{Name: p.name, Ty: setterTy}},
			Unsafe:   setterData.Unsafe,
		}
	}
	return getter, setter, nil
}

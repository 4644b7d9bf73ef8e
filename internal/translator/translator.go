package translator

import (
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/headergen/internal/ast"
	"github.com/roach88/headergen/internal/availability"
	"github.com/roach88/headergen/internal/config"
	"github.com/roach88/headergen/internal/ctype"
	"github.com/roach88/headergen/internal/expr"
	"github.com/roach88/headergen/internal/ir"
	"github.com/roach88/headergen/internal/logger"
)

// Translator builds IR statements from top-level declarations. It holds
// only read-only state and is safe for concurrent use.
type Translator struct {
	cfg *config.Config
	log *zap.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithLogger sets the diagnostics logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(t *Translator) {
		if log != nil {
			t.log = log
		}
	}
}

// New creates a Translator. A nil config behaves as an empty one.
func New(cfg *config.Config, opts ...Option) *Translator {
	if cfg == nil {
		cfg = config.New()
	}
	t := &Translator{cfg: cfg, log: logger.Nop()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Parse translates one top-level declaration into zero or more statements.
// The error, when non-nil, carries a *FatalError.
func (t *Translator) Parse(e ast.Entity) ([]ir.Stmt, error) {
	switch e.Kind() {
	case ast.KindObjCClassRef, ast.KindObjCProtocolRef:
		// forward declarations
		return nil, nil
	case ast.KindObjCInterfaceDecl:
		return t.parseInterface(e)
	case ast.KindObjCCategoryDecl:
		return t.parseCategory(e)
	case ast.KindObjCProtocolDecl:
		return t.parseProtocol(e)
	case ast.KindTypedefDecl:
		return t.parseTypedef(e)
	case ast.KindStructDecl:
		return t.parseStructDecl(e)
	case ast.KindEnumDecl:
		return t.parseEnum(e)
	case ast.KindVarDecl:
		return t.parseVar(e)
	case ast.KindFunctionDecl:
		return t.parseFn(e)
	case ast.KindUnionDecl:
		name, _ := e.Name()
		t.log.Debug("union not supported",
			zap.String(logger.FieldDecl, name),
			zap.String(logger.FieldKind, string(e.Kind())))
		return nil, nil
	default:
		return nil, fatalf(ErrUnknownDeclKind, e, declRef{}, "unknown declaration kind %s", e.Kind())
	}
}

// ParseAll translates declarations in order, stopping at the first fatal
// error.
func (t *Translator) ParseAll(entities []ast.Entity) ([]ir.Stmt, error) {
	var out []ir.Stmt
	for _, e := range entities {
		stmts, err := t.Parse(e)
		if err != nil {
			return nil, err
		}
		out = append(out, stmts...)
	}
	return out, nil
}

func (t *Translator) parseInterface(e ast.Entity) ([]ir.Stmt, error) {
	name, err := requireName(e, declRef{section: "class"}, "class name")
	if err != nil {
		return nil, err
	}
	decl := declRef{section: "class", name: name}
	data, _ := t.cfg.Class(name)
	if data.Skipped {
		t.skipped(e, decl)
		return nil, nil
	}

	avail, err := t.availability(e, decl)
	if err != nil {
		return nil, err
	}

	var superclass superclassSlot
	var generics []ir.GenericType
	body, err := t.walkBody(e, decl, slots{superclass: &superclass, generics: &generics}, data)
	if err != nil {
		return nil, err
	}
	if !superclass.resolved {
		return nil, fatalf(ErrMissingMetadata, e, decl, "no superclass found")
	}

	ty := ir.GenericType{Name: name, Generics: generics}
	var stmts []ir.Stmt
	if !data.DefinitionSkipped {
		stmts = append(stmts, &ir.ClassDecl{
			Type:         ty,
			Availability: avail,
			Superclass:   superclass.ty,
			Derives:      data.DerivesOr(ir.DefaultDerives),
		})
	}
	for _, p := range body.protocols {
		stmts = append(stmts, &ir.ProtocolImpl{Type: ty, Availability: avail, Protocol: p})
	}
	stmts = append(stmts, &ir.Methods{Type: ty, Availability: avail, Methods: body.methods})
	return stmts, nil
}

func (t *Translator) parseCategory(e ast.Entity) ([]ir.Stmt, error) {
	categoryName, _ := e.Name()

	var classRefs []ast.Entity
	e.VisitChildren(func(child ast.Entity) ast.VisitResult {
		if child.Kind() == ast.KindObjCClassRef {
			classRefs = append(classRefs, child)
		}
		return ast.Continue
	})
	if len(classRefs) != 1 {
		return nil, fatalf(ErrCategoryClass, e, declRef{}, "expected exactly one class reference, found %d", len(classRefs))
	}
	className, err := requireName(classRefs[0], declRef{}, "category class name")
	if err != nil {
		return nil, err
	}

	decl := declRef{section: "class", name: className}
	data, _ := t.cfg.Class(className)
	if data.Skipped {
		t.skipped(e, decl)
		return nil, nil
	}

	avail, err := t.availability(e, decl)
	if err != nil {
		return nil, err
	}

	var generics []ir.GenericType
	body, err := t.walkBody(e, decl, slots{generics: &generics}, data)
	if err != nil {
		return nil, err
	}

	ty := ir.GenericType{Name: className, Generics: generics}
	stmts := []ir.Stmt{&ir.Methods{
		Type:         ty,
		Availability: avail,
		Methods:      body.methods,
		CategoryName: categoryName,
	}}
	for _, p := range body.protocols {
		stmts = append(stmts, &ir.ProtocolImpl{Type: ty, Availability: avail, Protocol: p})
	}
	return stmts, nil
}

func (t *Translator) parseProtocol(e ast.Entity) ([]ir.Stmt, error) {
	name, err := requireName(e, declRef{section: "protocol"}, "protocol name")
	if err != nil {
		return nil, err
	}
	decl := declRef{section: "protocol", name: name}
	data, _ := t.cfg.Protocol(name)
	if data.Skipped {
		t.skipped(e, decl)
		return nil, nil
	}

	avail, err := t.availability(e, decl)
	if err != nil {
		return nil, err
	}

	body, err := t.walkBody(e, decl, slots{}, data)
	if err != nil {
		return nil, err
	}
	return []ir.Stmt{&ir.ProtocolDecl{
		Name:         name,
		Availability: avail,
		Protocols:    body.protocols,
		Methods:      body.methods,
	}}, nil
}

func (t *Translator) parseTypedef(e ast.Entity) ([]ir.Stmt, error) {
	name, err := requireName(e, declRef{section: "typedef"}, "typedef name")
	if err != nil {
		return nil, err
	}
	decl := declRef{section: "typedef", name: name}

	var (
		structStmt *ir.StructDecl
		skipStruct bool
		walkErr    error
	)
	e.VisitChildren(func(child ast.Entity) ast.VisitResult {
		switch child.Kind() {
		case ast.KindUnexposedAttr:
			walkErr = t.rejectEnumMacro(child, decl)
		case ast.KindStructDecl:
			if data, _ := t.cfg.Struct(name); data.Skipped {
				skipStruct = true
				break
			}
			structName, ok := child.Name()
			if !ok || isPrivate(structName) {
				// anonymous and private structs are declared under the typedef name
				structStmt, walkErr = t.parseStruct(child, declRef{section: "struct", name: name}, name)
			} else {
				skipStruct = true
			}
		case ast.KindObjCClassRef, ast.KindObjCProtocolRef, ast.KindTypeRef, ast.KindParmDecl:
		default:
			walkErr = fatalf(ErrUnknownChild, child, decl, "unknown typedef child in %s", name)
		}
		if walkErr != nil {
			return ast.Break
		}
		return ast.Continue
	})
	if walkErr != nil {
		return nil, walkErr
	}

	if structStmt != nil {
		return []ir.Stmt{structStmt}, nil
	}
	if skipStruct {
		return nil, nil
	}
	if data, _ := t.cfg.Typedef(name); data.Skipped {
		t.skipped(e, decl)
		return nil, nil
	}

	underlying, ok := e.TypedefUnderlyingType()
	if !ok {
		return nil, fatalf(ErrMissingMetadata, e, decl, "typedef underlying type missing")
	}
	ty, err := ctype.ParseTypedef(name, underlying)
	if err != nil {
		t.log.Debug("typedef not representable",
			zap.String(logger.FieldDecl, name),
			zap.String(logger.FieldReason, err.Error()))
		return nil, nil
	}
	return []ir.Stmt{&ir.AliasDecl{Name: name, Ty: ty}}, nil
}

func (t *Translator) parseStructDecl(e ast.Entity) ([]ir.Stmt, error) {
	name, ok := e.Name()
	if !ok {
		return nil, nil
	}
	decl := declRef{section: "struct", name: name}
	if data, _ := t.cfg.Struct(name); data.Skipped {
		t.skipped(e, decl)
		return nil, nil
	}
	if isPrivate(name) {
		return nil, nil
	}
	s, err := t.parseStruct(e, decl, name)
	if err != nil {
		return nil, err
	}
	return []ir.Stmt{s}, nil
}

func (t *Translator) parseEnum(e ast.Entity) ([]ir.Stmt, error) {
	// Enums can be reported twice; only the defining node is used.
	if !e.IsDefinition() {
		return nil, nil
	}

	name, _ := e.Name()
	decl := declRef{section: "enum", name: name}
	if name == "" {
		decl.name = config.AnonymousEnum
	}
	data, _ := t.cfg.Enum(name)
	if data.Skipped {
		t.skipped(e, decl)
		return nil, nil
	}

	underlying, ok := e.EnumUnderlyingType()
	if !ok {
		return nil, fatalf(ErrMissingMetadata, e, decl, "enum underlying type missing")
	}
	signed := underlying.IsSignedInteger()
	ty, err := ctype.ParseEnum(underlying)
	if err != nil {
		return nil, fatalf(ErrUnrepresentableType, e, decl, "%v", err)
	}

	var (
		kind     enumKind
		variants []ir.Variant
		walkErr  error
	)
	e.VisitChildren(func(child ast.Entity) ast.VisitResult {
		switch child.Kind() {
		case ast.KindEnumConstantDecl:
			var v ir.Variant
			var skip bool
			v, skip, walkErr = t.enumConstant(child, decl, data, signed)
			if walkErr == nil && !skip {
				variants = append(variants, v)
			}
		case ast.KindUnexposedAttr:
			if k, ok := enumMacro(child); ok {
				if !kind.add(k) {
					walkErr = fatalf(ErrConflictingEnumKinds, child, decl, "got differing enum kinds %s and %s", kind.kind, k)
				}
			} else {
				t.dropAttr(child, decl)
			}
		case ast.KindFlagEnum:
			if !kind.add(ir.EnumKindOptions) {
				walkErr = fatalf(ErrConflictingEnumKinds, child, decl, "got differing enum kinds %s and %s", kind.kind, ir.EnumKindOptions)
			}
		default:
			walkErr = fatalf(ErrUnknownChild, child, decl, "unknown enum child in %s", decl.name)
		}
		if walkErr != nil {
			return ast.Break
		}
		return ast.Continue
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return []ir.Stmt{&ir.EnumDecl{Name: name, Ty: ty, Kind: kind.kind, Variants: variants}}, nil
}

func (t *Translator) enumConstant(e ast.Entity, decl declRef, data config.EnumData, signed bool) (ir.Variant, bool, error) {
	name, err := requireName(e, decl, "enum constant name")
	if err != nil {
		return ir.Variant{}, false, err
	}
	if data.ConstantSkipped(name) {
		return ir.Variant{}, true, nil
	}
	raw, ok := e.EnumConstantValue()
	if !ok {
		return ir.Variant{}, false, fatalf(ErrMissingMetadata, e, decl, "enum constant value missing")
	}
	value := expr.FromValue(raw, signed)
	if !data.UseValue {
		if parsed, ok := expr.ParseEnumConstant(e); ok {
			value = parsed
		}
	}
	return ir.Variant{Name: name, Expr: value}, false, nil
}

func (t *Translator) parseVar(e ast.Entity) ([]ir.Stmt, error) {
	name, err := requireName(e, declRef{section: "static"}, "variable name")
	if err != nil {
		return nil, err
	}
	decl := declRef{section: "static", name: name}
	if data, _ := t.cfg.Static(name); data.Skipped {
		t.skipped(e, decl)
		return nil, nil
	}

	raw, ok := e.Type()
	if !ok {
		return nil, fatalf(ErrMissingMetadata, e, decl, "variable type missing")
	}
	ty, err := ctype.ParseStatic(raw)
	if err != nil {
		return nil, fatalf(ErrUnrepresentableType, e, decl, "%v", err)
	}

	var (
		value    ir.Expr
		hasInit  bool
		parsedOK bool
		walkErr  error
	)
	e.VisitChildren(func(child ast.Entity) ast.VisitResult {
		switch {
		case child.Kind() == ast.KindUnexposedAttr:
			walkErr = t.rejectEnumMacro(child, decl)
		case child.Kind() == ast.KindVisibilityAttr,
			child.Kind() == ast.KindObjCClassRef,
			child.Kind() == ast.KindTypeRef:
		case child.IsExpression():
			if hasInit {
				walkErr = fatalf(ErrDuplicateInitializer, child, decl, "got variable value twice")
				break
			}
			hasInit = true
			value, parsedOK = expr.ParseVar(child)
		default:
			walkErr = fatalf(ErrUnknownChild, child, decl, "unknown variable child in %s", name)
		}
		if walkErr != nil {
			return ast.Break
		}
		return ast.Continue
	})
	if walkErr != nil {
		return nil, walkErr
	}

	if hasInit && !parsedOK {
		t.log.Info("skipped static",
			zap.String(logger.FieldDecl, name),
			zap.String(logger.FieldReason, "initializer not representable"))
		return nil, nil
	}
	return []ir.Stmt{&ir.VarDecl{Name: name, Ty: ty, Value: value}}, nil
}

func (t *Translator) parseFn(e ast.Entity) ([]ir.Stmt, error) {
	name, err := requireName(e, declRef{section: "fn"}, "function name")
	if err != nil {
		return nil, err
	}
	decl := declRef{section: "fn", name: name}
	if data, _ := t.cfg.Fn(name); data.Skipped {
		t.skipped(e, decl)
		return nil, nil
	}
	if e.IsVariadic() {
		t.log.Info("skipped function",
			zap.String(logger.FieldDecl, name),
			zap.String(logger.FieldReason, "variadic"))
		return nil, nil
	}

	rawResult, ok := e.ResultType()
	if !ok {
		return nil, fatalf(ErrMissingMetadata, e, decl, "function result type missing")
	}
	result, err := ctype.ParseFunctionReturn(rawResult)
	if err != nil {
		return nil, fatalf(ErrUnrepresentableType, e, decl, "result: %v", err)
	}

	if e.IsStaticMethod() {
		return nil, fatalf(ErrUnexpectedAttribute, e, decl, "unexpected static method %s", name)
	}

	var (
		args    []ir.Arg
		walkErr error
	)
	e.VisitChildren(func(child ast.Entity) ast.VisitResult {
		switch child.Kind() {
		case ast.KindUnexposedAttr:
			walkErr = t.rejectEnumMacro(child, decl)
		case ast.KindObjCClassRef, ast.KindTypeRef:
		case ast.KindParmDecl:
			var arg ir.Arg
			arg, walkErr = parseParam(child, decl, ctype.ParseFunctionArgument)
			args = append(args, arg)
		default:
			walkErr = fatalf(ErrUnknownChild, child, decl, "unknown function child in %s", name)
		}
		if walkErr != nil {
			return ast.Break
		}
		return ast.Continue
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return []ir.Stmt{&ir.FnDecl{
		Name:   name,
		Args:   args,
		Result: result,
		Inline: e.IsInlineFunction(),
	}}, nil
}

// parseParam reads a ParmDecl. Anonymous parameters are named "_".
func parseParam(e ast.Entity, decl declRef, parse func(ast.Type) (ir.Ty, error)) (ir.Arg, error) {
	name, ok := e.Name()
	if !ok {
		name = "_"
	}
	raw, ok := e.Type()
	if !ok {
		return ir.Arg{}, fatalf(ErrMissingMetadata, e, decl, "parameter type missing")
	}
	ty, err := parse(raw)
	if err != nil {
		return ir.Arg{}, fatalf(ErrUnrepresentableType, e, decl, "parameter %s: %v", name, err)
	}
	return ir.Arg{Name: name, Ty: ty}, nil
}

func (t *Translator) availability(e ast.Entity, decl declRef) (ir.Availability, error) {
	raw, ok := e.PlatformAvailability()
	if !ok {
		return ir.Availability{}, fatalf(ErrMissingMetadata, e, decl, "%s availability missing", decl.section)
	}
	avail, err := availability.Parse(raw)
	if err != nil {
		return ir.Availability{}, fatalf(ErrMissingMetadata, e, decl, "invalid availability: %v", err)
	}
	return avail, nil
}

func (t *Translator) skipped(e ast.Entity, decl declRef) {
	t.log.Debug("skipped by config",
		zap.String(logger.FieldDecl, decl.name),
		zap.String(logger.FieldKind, string(e.Kind())))
}

func requireName(e ast.Entity, decl declRef, what string) (string, error) {
	name, ok := e.Name()
	if !ok {
		return "", fatalf(ErrMissingMetadata, e, decl, "%s missing", what)
	}
	return name, nil
}

// isPrivate reports whether name uses the private-name marker.
func isPrivate(name string) bool {
	return strings.HasPrefix(name, "_")
}

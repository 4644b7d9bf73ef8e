package ast

// EntityKind is the kind tag of a declaration node.
// Names follow the clang cursor kinds the dumps are produced from.
type EntityKind string

// Top-level declarations.
const (
	KindObjCInterfaceDecl EntityKind = "ObjCInterfaceDecl"
	KindObjCCategoryDecl  EntityKind = "ObjCCategoryDecl"
	KindObjCProtocolDecl  EntityKind = "ObjCProtocolDecl"
	KindTypedefDecl       EntityKind = "TypedefDecl"
	KindStructDecl        EntityKind = "StructDecl"
	KindUnionDecl         EntityKind = "UnionDecl"
	KindEnumDecl          EntityKind = "EnumDecl"
	KindVarDecl           EntityKind = "VarDecl"
	KindFunctionDecl      EntityKind = "FunctionDecl"
)

// References and members.
const (
	KindObjCClassRef             EntityKind = "ObjCClassRef"
	KindObjCProtocolRef          EntityKind = "ObjCProtocolRef"
	KindObjCSuperClassRef        EntityKind = "ObjCSuperClassRef"
	KindObjCRootClass            EntityKind = "ObjCRootClass"
	KindObjCExplicitProtocolImpl EntityKind = "ObjCExplicitProtocolImpl"
	KindObjCIvarDecl             EntityKind = "ObjCIvarDecl"
	KindObjCException            EntityKind = "ObjCException"
	KindObjCInstanceMethodDecl   EntityKind = "ObjCInstanceMethodDecl"
	KindObjCClassMethodDecl      EntityKind = "ObjCClassMethodDecl"
	KindObjCPropertyDecl         EntityKind = "ObjCPropertyDecl"
	KindObjCBoxable              EntityKind = "ObjCBoxable"
	KindTemplateTypeParameter    EntityKind = "TemplateTypeParameter"
	KindTypeRef                  EntityKind = "TypeRef"
	KindParmDecl                 EntityKind = "ParmDecl"
	KindFieldDecl                EntityKind = "FieldDecl"
	KindEnumConstantDecl         EntityKind = "EnumConstantDecl"
	KindFlagEnum                 EntityKind = "FlagEnum"
	KindVisibilityAttr           EntityKind = "VisibilityAttr"
	KindUnexposedAttr            EntityKind = "UnexposedAttr"
)

// Method attributes.
const (
	KindNSReturnsRetained         EntityKind = "NSReturnsRetained"
	KindNSReturnsNotRetained      EntityKind = "NSReturnsNotRetained"
	KindNSConsumesSelf            EntityKind = "NSConsumesSelf"
	KindNSConsumed                EntityKind = "NSConsumed"
	KindObjCReturnsInnerPointer   EntityKind = "ObjCReturnsInnerPointer"
	KindObjCDesignatedInitializer EntityKind = "ObjCDesignatedInitializer"
	KindObjCRequiresSuper         EntityKind = "ObjCRequiresSuper"
	KindIBActionAttr              EntityKind = "IBActionAttr"
	KindIBOutletAttr              EntityKind = "IBOutletAttr"
	KindWarnUnusedResultAttr      EntityKind = "WarnUnusedResultAttr"
)

// Expressions.
const (
	KindIntegerLiteral    EntityKind = "IntegerLiteral"
	KindFloatingLiteral   EntityKind = "FloatingLiteral"
	KindStringLiteral     EntityKind = "StringLiteral"
	KindCharacterLiteral  EntityKind = "CharacterLiteral"
	KindObjCStringLiteral EntityKind = "ObjCStringLiteral"
	KindUnaryOperator     EntityKind = "UnaryOperator"
	KindBinaryOperator    EntityKind = "BinaryOperator"
	KindParenExpr         EntityKind = "ParenExpr"
	KindDeclRefExpr       EntityKind = "DeclRefExpr"
	KindCStyleCastExpr    EntityKind = "CStyleCastExpr"
	KindCallExpr          EntityKind = "CallExpr"
	KindUnexposedExpr     EntityKind = "UnexposedExpr"
	KindInitListExpr      EntityKind = "InitListExpr"
)

var expressionKinds = map[EntityKind]bool{
	KindIntegerLiteral:    true,
	KindFloatingLiteral:   true,
	KindStringLiteral:     true,
	KindCharacterLiteral:  true,
	KindObjCStringLiteral: true,
	KindUnaryOperator:     true,
	KindBinaryOperator:    true,
	KindParenExpr:         true,
	KindDeclRefExpr:       true,
	KindCStyleCastExpr:    true,
	KindCallExpr:          true,
	KindUnexposedExpr:     true,
	KindInitListExpr:      true,
}

// IsExpression reports whether k is an expression kind.
func (k EntityKind) IsExpression() bool {
	return expressionKinds[k]
}

// VisitResult controls child traversal.
type VisitResult int

const (
	Continue VisitResult = iota
	Break
)

// Location is where a declaration was read from.
type Location struct {
	Library string `json:"library" yaml:"library"`
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
}

// PlatformAvailability is the raw availability of one platform as reported
// by the frontend. Versions are unparsed.
type PlatformAvailability struct {
	Platform    string `json:"platform" yaml:"platform"`
	Introduced  string `json:"introduced,omitempty" yaml:"introduced,omitempty"`
	Deprecated  string `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Obsoleted   string `json:"obsoleted,omitempty" yaml:"obsoleted,omitempty"`
	Unavailable bool   `json:"unavailable,omitempty" yaml:"unavailable,omitempty"`
	Message     string `json:"message,omitempty" yaml:"message,omitempty"`
}

// PropertyAttributes are the declared attributes of an @property.
type PropertyAttributes struct {
	ReadOnly bool   `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	Class    bool   `json:"class,omitempty" yaml:"class,omitempty"`
	Copy     bool   `json:"copy,omitempty" yaml:"copy,omitempty"`
	Getter   string `json:"getter,omitempty" yaml:"getter,omitempty"` // custom getter selector
	Setter   string `json:"setter,omitempty" yaml:"setter,omitempty"` // custom setter selector
}

// Entity is a node of the declaration tree.
type Entity interface {
	Kind() EntityKind
	Name() (string, bool)
	DisplayName() (string, bool)

	Type() (Type, bool)
	ResultType() (Type, bool)
	TypedefUnderlyingType() (Type, bool)
	EnumUnderlyingType() (Type, bool)

	// EnumConstantValue returns the evaluated value of an enum constant.
	// Unsigned enums report the bit pattern as int64.
	EnumConstantValue() (int64, bool)

	// PlatformAvailability returns false when the frontend recorded no
	// availability at all. An empty slice means "available everywhere".
	PlatformAvailability() ([]PlatformAvailability, bool)
	Location() Location

	IsDefinition() bool
	IsVariadic() bool
	IsInlineFunction() bool
	IsStaticMethod() bool
	IsBitField() bool
	IsExpression() bool

	PropertyAttributes() (PropertyAttributes, bool)

	// MacroName returns the macro an UnexposedAttr was expanded from.
	MacroName() (string, bool)

	// Expression returns the source text of an expression node, or of the
	// initializer of an enum constant.
	Expression() (string, bool)

	VisitChildren(visit func(Entity) VisitResult)
	String() string
}

package ir

// StmtKind names a Stmt variant. Used as the serialization discriminator.
type StmtKind string

const (
	KindClassDecl    StmtKind = "class_decl"
	KindMethods      StmtKind = "methods"
	KindProtocolDecl StmtKind = "protocol_decl"
	KindProtocolImpl StmtKind = "protocol_impl"
	KindStructDecl   StmtKind = "struct_decl"
	KindEnumDecl     StmtKind = "enum_decl"
	KindVarDecl      StmtKind = "var_decl"
	KindFnDecl       StmtKind = "fn_decl"
	KindAliasDecl    StmtKind = "alias_decl"
)

// Stmt is a sealed interface over the emitted declaration units.
// Only the variants in this file implement it.
type Stmt interface {
	stmt() // Sealed

	// StmtKind returns the variant discriminator.
	StmtKind() StmtKind

	// Symbol returns the name the statement is filed under.
	Symbol() string
}

// ClassDecl declares a class.
//
//	@interface Name<Generics> : Superclass
type ClassDecl struct {
	Type         GenericType  `json:"type"`
	Availability Availability `json:"availability"`
	Superclass   *GenericType `json:"superclass,omitempty"` // nil for root classes
	Derives      Derives      `json:"derives"`
}

// Methods holds the methods of a class or one of its categories.
//
//	@interface Name (CategoryName)
type Methods struct {
	Type         GenericType  `json:"type"`
	Availability Availability `json:"availability"`
	Methods      []Method     `json:"methods,omitempty"`
	CategoryName string       `json:"category_name,omitempty"` // empty for the class body and unnamed categories
}

// ProtocolDecl declares a protocol.
//
//	@protocol Name <Protocols>
type ProtocolDecl struct {
	Name         string       `json:"name"`
	Availability Availability `json:"availability"`
	Protocols    []string     `json:"protocols,omitempty"`
	Methods      []Method     `json:"methods,omitempty"`
}

// ProtocolImpl records that a class conforms to a protocol.
type ProtocolImpl struct {
	Type         GenericType  `json:"type"`
	Availability Availability `json:"availability"`
	Protocol     string       `json:"protocol"`
}

// StructDecl declares a C struct, either directly or through a typedef
// wrapping an anonymous or private struct.
type StructDecl struct {
	Name    string  `json:"name"`
	Boxable bool    `json:"boxable,omitempty"`
	Fields  []Field `json:"fields,omitempty"`
}

// EnumDecl declares an enum.
type EnumDecl struct {
	Name     string    `json:"name,omitempty"` // empty for anonymous enums
	Ty       Ty        `json:"ty"`
	Kind     EnumKind  `json:"kind,omitempty"`
	Variants []Variant `json:"variants,omitempty"`
}

// VarDecl declares an extern or static variable.
type VarDecl struct {
	Name  string `json:"name"`
	Ty    Ty     `json:"ty"`
	Value Expr   `json:"value,omitempty"` // empty for extern declarations
}

// FnDecl declares a function. Inline functions carry no translated body.
type FnDecl struct {
	Name   string `json:"name"`
	Args   []Arg  `json:"args,omitempty"`
	Result Ty     `json:"result,omitempty"`
	Inline bool   `json:"inline,omitempty"`
}

// AliasDecl declares a typedef that is not a struct.
type AliasDecl struct {
	Name string `json:"name"`
	Ty   Ty     `json:"ty"`
}

func (*ClassDecl) stmt()    {}
func (*Methods) stmt()      {}
func (*ProtocolDecl) stmt() {}
func (*ProtocolImpl) stmt() {}
func (*StructDecl) stmt()   {}
func (*EnumDecl) stmt()     {}
func (*VarDecl) stmt()      {}
func (*FnDecl) stmt()       {}
func (*AliasDecl) stmt()    {}

func (*ClassDecl) StmtKind() StmtKind    { return KindClassDecl }
func (*Methods) StmtKind() StmtKind      { return KindMethods }
func (*ProtocolDecl) StmtKind() StmtKind { return KindProtocolDecl }
func (*ProtocolImpl) StmtKind() StmtKind { return KindProtocolImpl }
func (*StructDecl) StmtKind() StmtKind   { return KindStructDecl }
func (*EnumDecl) StmtKind() StmtKind     { return KindEnumDecl }
func (*VarDecl) StmtKind() StmtKind      { return KindVarDecl }
func (*FnDecl) StmtKind() StmtKind       { return KindFnDecl }
func (*AliasDecl) StmtKind() StmtKind    { return KindAliasDecl }

func (s *ClassDecl) Symbol() string    { return s.Type.Name }
func (s *Methods) Symbol() string      { return s.Type.Name }
func (s *ProtocolDecl) Symbol() string { return s.Name }
func (s *ProtocolImpl) Symbol() string { return s.Type.Name }
func (s *StructDecl) Symbol() string   { return s.Name }
func (s *VarDecl) Symbol() string      { return s.Name }
func (s *FnDecl) Symbol() string       { return s.Name }
func (s *AliasDecl) Symbol() string    { return s.Name }

// Symbol returns the enum name, or "anonymous" for unnamed enums.
func (s *EnumDecl) Symbol() string {
	if s.Name == "" {
		return "anonymous"
	}
	return s.Name
}

package render

// reservedKeywords are the identifiers the binding language reserves,
// strict and reserved-for-future-use alike.
var reservedKeywords = map[string]struct{}{
	// strict
	"as": {}, "async": {}, "await": {}, "break": {}, "const": {}, "continue": {},
	"crate": {}, "dyn": {}, "else": {}, "enum": {}, "extern": {}, "false": {},
	"fn": {}, "for": {}, "if": {}, "impl": {}, "in": {}, "let": {}, "loop": {},
	"match": {}, "mod": {}, "move": {}, "mut": {}, "pub": {}, "ref": {},
	"return": {}, "self": {}, "Self": {}, "static": {}, "struct": {}, "super": {},
	"trait": {}, "true": {}, "type": {}, "unsafe": {}, "use": {}, "where": {},
	"while": {},

	// reserved
	"abstract": {}, "become": {}, "box": {}, "do": {}, "final": {}, "macro": {},
	"override": {}, "priv": {}, "try": {}, "typeof": {}, "unsized": {},
	"virtual": {}, "yield": {},
}

// IsReserved reports whether name is a reserved keyword.
func IsReserved(name string) bool {
	_, ok := reservedKeywords[name]
	return ok
}

// HandleReserved returns a usable identifier for name: reserved keywords get
// a trailing underscore and the empty name becomes "_".
func HandleReserved(name string) string {
	if name == "" {
		return "_"
	}
	if IsReserved(name) {
		return name + "_"
	}
	return name
}

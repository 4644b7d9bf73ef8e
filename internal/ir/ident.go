package ir

// SystemLibrary is the pseudo-library for symbols that ship with the platform
// runtime rather than with a framework.
const SystemLibrary = "System"

// Identifier is the canonical identity of a declared symbol.
//
// Names in Objective-C are global, so Name alone is enough to identify the
// symbol. Library and File record where it was declared.
type Identifier struct {
	Name    string `json:"name"`
	Library string `json:"library"`
	File    string `json:"file,omitempty"` // header stem, empty if unknown
}

// NewIdentifier creates an Identifier.
func NewIdentifier(name, library, file string) Identifier {
	return Identifier{Name: name, Library: library, File: file}
}

// SameSymbol reports whether both identifiers name the same symbol.
// Library and File are ignored.
func (id Identifier) SameSymbol(other Identifier) bool {
	return id.Name == other.Name
}

// IsSystem reports whether the symbol ships with the system runtime.
func (id Identifier) IsSystem() bool {
	return id.Library == SystemLibrary
}

// IsNSError reports whether id is Foundation's NSError.
func (id Identifier) IsNSError() bool {
	return id.Library == "Foundation" && id.Name == "NSError"
}

// IsNSString reports whether id is Foundation's NSString.
func (id Identifier) IsNSString() bool {
	return id.Library == "Foundation" && id.Name == "NSString"
}

// Feature returns the capability tag "{library}_{name}" gating the symbol.
// System symbols are always available and have no tag.
func (id Identifier) Feature() (string, bool) {
	if id.IsSystem() {
		return "", false
	}
	return id.Library + "_" + id.Name, true
}

// String returns "Library.Name".
func (id Identifier) String() string {
	if id.Library == "" {
		return id.Name
	}
	return id.Library + "." + id.Name
}

// NSError returns the identifier of the root error type.
func NSError() Identifier {
	return Identifier{Name: "NSError", Library: "Foundation", File: "NSError"}
}

// NSString returns the identifier of the root string type.
func NSString() Identifier {
	return Identifier{Name: "NSString", Library: "Foundation", File: "NSString"}
}

// NSObject returns the identifier of the root class.
func NSObject() Identifier {
	return Identifier{Name: "NSObject", Library: SystemLibrary, File: "NSObject"}
}

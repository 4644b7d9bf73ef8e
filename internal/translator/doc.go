// Package translator classifies top-level declarations and builds IR
// statements from them.
//
// Every node kind the frontend can produce is either handled or reported as
// a *FatalError. Nothing is silently dropped: shapes that are known to be
// unsupported but harmless (unions, variadic functions, initializers outside
// the expression subset, typedefs of unrepresentable types) yield no
// statements and a log entry instead.
//
// Class, category and protocol bodies share one walker whose mode is chosen
// by which output slots the caller supplies:
//
//	mode      superclass  generics
//	class     yes         yes
//	category  no          yes
//	protocol  no          no
//
// Properties and the accessor methods the compiler synthesizes for them
// appear as sibling nodes. The walker emits accessors from the property and
// drops the matching method nodes; a property whose accessor never shows up
// is fatal.
package translator

// Package ast is the declaration tree consumed by the translator.
//
// The translator only depends on the Entity interface. Node is the concrete
// implementation: it is built in tests with NewNode and the With* builders,
// and loaded from translation-unit dumps (YAML or JSON) with LoadFile.
//
// A dump is the output of a header frontend flattened into plain data:
//
//	library: Foundation
//	file: NSThread
//	decls:
//	  - kind: ObjCInterfaceDecl
//	    name: NSThread
//	    availability: {platforms: [{platform: macos, introduced: "10.0"}]}
//	    children:
//	      - {kind: ObjCSuperClassRef, name: NSObject}
//
// Children are visited in source order.
package ast

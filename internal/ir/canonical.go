package ir

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// envelope is the wire shape of a serialized statement.
type envelope struct {
	Kind StmtKind        `json:"kind"`
	Stmt json.RawMessage `json:"stmt"`
}

// MarshalStmt serializes a statement as {"kind": ..., "stmt": {...}}.
//
// The encoding is canonical: struct fields keep declaration order, HTML
// characters are not escaped and every string is NFC normalized, so equal
// statements always produce equal bytes.
func MarshalStmt(s Stmt) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("marshal stmt: nil statement")
	}
	body, err := encodeNoEscape(s)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", s.StmtKind(), err)
	}
	out, err := encodeNoEscape(envelope{Kind: s.StmtKind(), Stmt: body})
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", s.StmtKind(), err)
	}
	// NFC normalize at serialization boundary
	return norm.NFC.Bytes(out), nil
}

// UnmarshalStmt decodes a statement produced by MarshalStmt.
func UnmarshalStmt(data []byte) (Stmt, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal stmt: %w", err)
	}

	var s Stmt
	switch env.Kind {
	case KindClassDecl:
		s = &ClassDecl{}
	case KindMethods:
		s = &Methods{}
	case KindProtocolDecl:
		s = &ProtocolDecl{}
	case KindProtocolImpl:
		s = &ProtocolImpl{}
	case KindStructDecl:
		s = &StructDecl{}
	case KindEnumDecl:
		s = &EnumDecl{}
	case KindVarDecl:
		s = &VarDecl{}
	case KindFnDecl:
		s = &FnDecl{}
	case KindAliasDecl:
		s = &AliasDecl{}
	default:
		return nil, fmt.Errorf("unmarshal stmt: unknown kind %q", env.Kind)
	}

	if err := json.Unmarshal(env.Stmt, s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", env.Kind, err)
	}
	return s, nil
}

// encodeNoEscape marshals v without HTML escaping and without the trailing
// newline json.Encoder appends.
func encodeNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

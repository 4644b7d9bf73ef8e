package store

import (
	"github.com/cockroachdb/errors"

	"github.com/roach88/headergen/internal/ir"
)

// ErrHashMismatch is returned when a stored payload no longer matches the
// hash recorded next to it.
var ErrHashMismatch = errors.New("statement payload does not match its hash")

// encodeStatement returns the canonical payload of s and its content hash.
func encodeStatement(s ir.Stmt) (payload, hash string, err error) {
	data, err := ir.MarshalStmt(s)
	if err != nil {
		return "", "", errors.Wrap(err, "marshal statement")
	}
	hash, err = ir.StmtHash(s)
	if err != nil {
		return "", "", err
	}
	return string(data), hash, nil
}

// decodeStatement parses a stored payload and verifies it against the
// stored hash.
func decodeStatement(payload, hash string) (ir.Stmt, error) {
	s, err := ir.UnmarshalStmt([]byte(payload))
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal statement")
	}
	got, err := ir.StmtHash(s)
	if err != nil {
		return nil, err
	}
	if got != hash {
		return nil, errors.Wrapf(ErrHashMismatch, "%s %s", s.StmtKind(), s.Symbol())
	}
	return s, nil
}

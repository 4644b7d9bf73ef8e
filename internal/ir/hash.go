package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainStmt is the domain prefix for statement hashes.
// Version suffix enables future algorithm migration.
const DomainStmt = "headergen/stmt/v1"

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// StmtHash computes the content hash of a statement over its canonical
// serialization. Equal statements always hash equally.
func StmtHash(s Stmt) (string, error) {
	data, err := MarshalStmt(s)
	if err != nil {
		return "", fmt.Errorf("StmtHash: %w", err)
	}
	return hashWithDomain(DomainStmt, data), nil
}

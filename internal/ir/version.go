package ir

// Version constants for IR schema and generator.
const (
	// IRVersion is the IR schema version. Bump when a Stmt variant changes shape.
	IRVersion = "1"

	// GeneratorVersion is the headergen version recorded alongside snapshots.
	GeneratorVersion = "0.1.0"
)

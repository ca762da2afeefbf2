package config

const (
	// MaxItemNameLength is the maximum length for file and folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxItemNameLength = 255

	// MaxPathLength is the maximum length for materialized paths. Longer
	// paths indicate overly deep hierarchies.
	MaxPathLength = 500

	// MaxUploadBytes caps a single upload payload.
	MaxUploadBytes = 50 << 20
)

package queries

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ValidateLimit clamps a requested page size into the allowed range.
func ValidateLimit(limit int) int {
	if limit < 1 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

package usecase

const (
	// DefaultPageSize bounds listings when the caller omits a limit.
	DefaultPageSize = 100
	// MaxPageSize caps client-supplied limits.
	MaxPageSize = 1000
)

// clampPage normalizes pagination parameters.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

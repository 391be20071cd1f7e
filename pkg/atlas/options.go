package atlas

import "go.uber.org/zap"

// OpenOptions configures how an archive is opened.
type OpenOptions struct {
	// Eager forces every column and every kind's spatial index to
	// materialize during Open, instead of on first access.
	// Default: false
	Eager bool

	// Logger receives structural diagnostics (completion of an eager
	// load of all columns, spatial index builds). If nil, a no-op logger
	// is used.
	Logger *zap.Logger
}

// DefaultOpenOptions returns the lazy-everything default.
func DefaultOpenOptions() OpenOptions {
	return OpenOptions{Eager: false}
}

package config

// Config holds everything a single run needs. It is filled from the
// defaults, an optional JSON config file and the CLI flags (in that
// order), then treated as read-only by every worker.
type Config struct {
	Src string `json:"-" validate:"required"`
	Dst string `json:"-" validate:"required"`

	Width  int    `json:"width" validate:"gt=0"`
	Height int    `json:"height" validate:"gt=0"`
	Filter string `json:"filter" validate:"oneof=nearest triangle gaussian catmull-rom lanczos3"`

	// Asynchronous selects the pipelined strategy (reader / worker pool /
	// writer over bounded queues) instead of the plain fan-out.
	Asynchronous bool `json:"asynchronous"`

	// Limit is the capacity of the two pipeline queues. It bounds how far
	// the reader can race ahead of the CPU pool.
	Limit int `json:"limit" validate:"gt=0"`

	// Extension filters source files, compared case-insensitively and
	// without the leading dot. Empty means every regular file.
	Extension string `json:"extension"`

	// Workers is the CPU pool size. 0 means one worker per core.
	Workers int `json:"workers" validate:"gte=0"`

	Sentry SentryConfig `json:"sentry"`
}

type SentryConfig struct {
	SentryDSN   string `json:"sentry_dsn"`
	Environment string `json:"environment"`
}

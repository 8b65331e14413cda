package domain

const (
	// Redis key patterns
	RedisKeyPending = "scrape:%s:pending"
	RedisKeySeen    = "scrape:seen:%s"

	// Run statuses
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"

	// Keyword groups
	GroupMain    = "main"
	GroupControl = "control"

	// DefaultCutoffYear drops records dated before this year.
	DefaultCutoffYear = 2025

	// TimestampLayout is the layout of the exported date column.
	TimestampLayout = "2006-01-02 15:04:05"

	ListSeparator = ", "
	FlagYes       = "Sí"
	FlagNo        = "No"
)

package domain

// Default configuration values
const (
	DefaultMaxSlots          = 30
	DefaultCriticalThreshold = 25
)

// Business validation constants
const (
	MinPartySize        = 1
	MaxPartySize        = 100
	MinMaxSlots         = 0
	MaxMaxSlots         = 1000
	MaxRemarkTextLength = 1000
	MaxNoteLength       = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

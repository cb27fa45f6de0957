package domain

// Default schedule values (overridable through config.ScheduleDefaults)
const (
	DefaultWorkStart           = "09:00"
	DefaultWorkEnd             = "17:00"
	DefaultBreakStart          = "12:00"
	DefaultBreakEnd            = "13:00"
	DefaultSlotDurationMinutes = 15
	DefaultHorizonDays         = 30
)

// DefaultWorkingDays Monday to Friday
var DefaultWorkingDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinHorizonDays         = 1
	MaxHorizonDays         = 365
	MaxReasonLength        = 500
	MaxNotesLength         = 1000
	MaxExceptionReasonLen  = 255
	MinPasswordLength      = 8
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04" // local date and time without offset
)

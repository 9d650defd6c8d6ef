package diag

// Severity defines the display importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Level is the minifier severity scale: 0 is the most severe, 4 the least.
// Levels below ErrorThreshold are errors unless a policy says otherwise.
type Level uint8

const (
	// ErrorThreshold separates errors (below) from warnings (at or above).
	ErrorThreshold Level = 2
	// MaxLevel is the least severe level.
	MaxLevel Level = 4
)

// IsError reports whether the level counts as an error without any override.
func (l Level) IsError() bool { return l < ErrorThreshold }

// SeverityOf maps the level/is-error pair onto the display severity.
func SeverityOf(level Level, isError bool) Severity {
	switch {
	case isError:
		return SevError
	case level < MaxLevel:
		return SevWarning
	default:
		return SevInfo
	}
}

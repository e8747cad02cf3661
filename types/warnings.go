package types

import (
	"fmt"
	"time"
)

// WarningLevel represents the severity of a warning
type WarningLevel string

const (
	WarningLevelInfo    WarningLevel = "info"
	WarningLevelWarning WarningLevel = "warning"
)

// Warning codes recorded by document operations.
const (
	// A merged page's own media box differs from the target geometry taken
	// from page 1 of the primary document. The page is not resized.
	WarnCodeGeometryMismatch = "GEOMETRY_MISMATCH"
)

// Warning represents a non-fatal finding encountered while manipulating a document
type Warning struct {
	Level     WarningLevel           // Warning severity level
	Code      string                 // Warning code for categorization
	Message   string                 // Human-readable warning message
	Context   map[string]interface{} // Additional context (source document, page number, sizes)
	Timestamp time.Time              // When the warning was generated
}

// Error implements the error interface so warnings can be used as errors if needed
func (w *Warning) Error() string {
	if w.Code != "" {
		return fmt.Sprintf("[%s] %s: %s", w.Level, w.Code, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Level, w.Message)
}

// WithContext adds context to the warning and returns the same warning for chaining
func (w *Warning) WithContext(key string, value interface{}) *Warning {
	if w.Context == nil {
		w.Context = make(map[string]interface{})
	}
	w.Context[key] = value
	return w
}

// NewWarningf creates a new coded warning with a formatted message
func NewWarningf(level WarningLevel, code, format string, args ...interface{}) *Warning {
	return &Warning{
		Level:     level,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
		Context:   make(map[string]interface{}),
	}
}

// WarningCollector collects warnings raised by document operations.
// The zero value is usable and disabled.
type WarningCollector struct {
	warnings []*Warning
	enabled  bool
}

// NewWarningCollector creates a new warning collector
func NewWarningCollector(enabled bool) *WarningCollector {
	return &WarningCollector{
		warnings: make([]*Warning, 0),
		enabled:  enabled,
	}
}

// Add adds a warning to the collector
func (wc *WarningCollector) Add(warning *Warning) {
	if wc.enabled && warning != nil {
		wc.warnings = append(wc.warnings, warning)
	}
}

// Warnings returns a copy of all collected warnings
func (wc *WarningCollector) Warnings() []*Warning {
	out := make([]*Warning, len(wc.warnings))
	copy(out, wc.warnings)
	return out
}

// Count returns the number of warnings collected
func (wc *WarningCollector) Count() int {
	return len(wc.warnings)
}

// HasWarnings returns true if any warnings have been collected
func (wc *WarningCollector) HasWarnings() bool {
	return len(wc.warnings) > 0
}

// GetByCode returns warnings filtered by code
func (wc *WarningCollector) GetByCode(code string) []*Warning {
	result := make([]*Warning, 0)
	for _, w := range wc.warnings {
		if w.Code == code {
			result = append(result, w)
		}
	}
	return result
}

// Clear clears all warnings
func (wc *WarningCollector) Clear() {
	wc.warnings = wc.warnings[:0]
}

// IsEnabled returns whether warning collection is enabled
func (wc *WarningCollector) IsEnabled() bool {
	return wc.enabled
}

package autoref

import "strings"

// SyncStatus is a set of flags describing the outcome of a sync.
// Statuses combine with bitwise OR and never lose flags within a batch.
type SyncStatus uint16

// StatusNone means nothing happened.
const StatusNone SyncStatus = 0

const (
	// StatusSkip means a component was not processed.
	StatusSkip SyncStatus = 1 << iota
	// StatusComplete means at least one component was processed.
	StatusComplete
	// StatusUnsupported means syncing is disabled while live.
	StatusUnsupported
	// StatusError means at least one error was reported.
	StatusError
	// StatusWarning means at least one warning was reported.
	StatusWarning
	// StatusModified means at least one component changed.
	StatusModified
)

var statusNames = []struct {
	flag SyncStatus
	name string
}{
	{StatusSkip, "skip"},
	{StatusComplete, "complete"},
	{StatusUnsupported, "unsupported"},
	{StatusError, "error"},
	{StatusWarning, "warning"},
	{StatusModified, "modified"},
}

// Has reports whether every flag in f is set.
func (s SyncStatus) Has(f SyncStatus) bool {
	return s&f == f
}

// Flags returns the names of the set flags.
func (s SyncStatus) Flags() []string {
	flags := []string{}
	for _, sn := range statusNames {
		if s&sn.flag != 0 {
			flags = append(flags, sn.name)
		}
	}
	return flags
}

func (s SyncStatus) String() string {
	if s == StatusNone {
		return "none"
	}
	return strings.Join(s.Flags(), "|")
}

// MarshalText encodes the status by flag names.
func (s SyncStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Summary is the human readable outcome of a batch with this status.
func (s SyncStatus) Summary() string {
	switch {
	case s&StatusUnsupported != 0:
		return "Auto-reference sync is not supported while live"
	case s&StatusError != 0:
		return "Auto-reference sync completed with errors"
	case s&StatusWarning != 0:
		return "Auto-reference sync completed with warnings"
	case s&StatusComplete != 0:
		return "Auto-reference sync completed successfully"
	default:
		return "Nothing to sync"
	}
}

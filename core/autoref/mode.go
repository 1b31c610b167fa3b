package autoref

import "fmt"

// SyncMode decides when a field is resolved and when its current value is only validated.
type SyncMode int

const (
	// ModeDefault is ModeValidateOrGetIfEmpty for singular fields and
	// ModeAlwaysGetAndValidate for sequences.
	ModeDefault SyncMode = iota
	// ModeValidateOnly never resolves; the current value is validated.
	ModeValidateOnly
	// ModeGetIfEmpty resolves empty fields and leaves others untouched.
	ModeGetIfEmpty
	// ModeValidateOrGetIfEmpty resolves empty fields and validates the others.
	ModeValidateOrGetIfEmpty
	// ModeAlwaysGetAndValidate always resolves and overwrites.
	ModeAlwaysGetAndValidate
)

var modeTokens = map[string]SyncMode{
	"default":         ModeDefault,
	"validate":        ModeValidateOnly,
	"get-if-empty":    ModeGetIfEmpty,
	"validate-or-get": ModeValidateOrGetIfEmpty,
	"always":          ModeAlwaysGetAndValidate,
}

// ParseMode parses a mode= annotation value.
func ParseMode(s string) (SyncMode, error) {
	if m, ok := modeTokens[s]; ok {
		return m, nil
	}
	return ModeDefault, fmt.Errorf("unknown sync mode %q", s)
}

// Resolve replaces ModeDefault with the concrete mode for the field arity.
func (m SyncMode) Resolve(sequence bool) SyncMode {
	if m != ModeDefault {
		return m
	}
	if sequence {
		return ModeAlwaysGetAndValidate
	}
	return ModeValidateOrGetIfEmpty
}

func (m SyncMode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeValidateOnly:
		return "validate"
	case ModeGetIfEmpty:
		return "get-if-empty"
	case ModeValidateOrGetIfEmpty:
		return "validate-or-get"
	case ModeAlwaysGetAndValidate:
		return "always"
	default:
		return fmt.Sprintf("SyncMode(%d)", int(m))
	}
}

// MarshalText encodes the mode as its annotation token.
func (m SyncMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

package signing

// Mode says whether request signatures are checked
type Mode int

const (
	// ModeEnforced rejects unsigned, expired or mismatched envelopes
	ModeEnforced Mode = iota
	// ModeDisabled trusts the raw payload. Development only.
	ModeDisabled
)

// ModeForKey returns ModeDisabled for an empty key
func ModeForKey(key string) Mode {
	if key == "" {
		return ModeDisabled
	}
	return ModeEnforced
}

func (m Mode) String() string {
	switch m {
	case ModeEnforced:
		return "enforced"
	case ModeDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

package codec

import "fmt"

// Mode controls how decoding treats input that is not in canonical form.
type Mode int

const (
	// ModeDefault is the unset mode. It decodes like ModeNormalize and lets
	// configuration layers tell an omitted mode from an explicit one.
	ModeDefault Mode = iota
	// ModeNormalize drops common pairs and lets later duplicates win.
	ModeNormalize
	// ModeStrict rejects common pairs and duplicate keys.
	ModeStrict
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeNormalize:
		return "normalize"
	case ModeStrict:
		return "strict"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalText writes ModeDefault as the empty string.
func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case ModeDefault:
		return []byte{}, nil
	case ModeNormalize, ModeStrict:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
}

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*m = ModeDefault
	case "normalize":
		*m = ModeNormalize
	case "strict":
		*m = ModeStrict
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, text)
	}
	return nil
}

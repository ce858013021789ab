package mapsurface

import "fmt"

// Status is the load lifecycle of the map display
type Status int

const (
	Loading Status = iota
	Ready
	LoadFailed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case LoadFailed:
		return "load_failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText encodes the status by name in JSON frames
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name
func (s *Status) UnmarshalText(text []byte) error {
	for _, st := range []Status{Loading, Ready, LoadFailed} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown map status %q", text)
}

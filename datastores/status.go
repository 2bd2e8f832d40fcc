package datastores

import (
	_ "encoding" // for documentation links to [encoding]
	"fmt"
)

// Status is the lifecycle stage of a contact.
type Status int

const (
	StatusActive Status = iota
	StatusLead
	StatusInactive
)

// Statuses lists every [Status] by ordinal.
var Statuses = [...]Status{StatusActive, StatusLead, StatusInactive} //nolint: gochecknoglobals,nolintlint

var statusLabels = [...]string{ //nolint: gochecknoglobals,nolintlint
	StatusActive:   "Active",
	StatusLead:     "Lead",
	StatusInactive: "Inactive",
}

// StatusAt returns the status with ordinal i, or [StatusActive] when i is out of range.
func StatusAt(i int) Status {
	if i < 0 || i >= len(Statuses) {
		return StatusActive
	}
	return Statuses[i]
}

// ParseStatus returns the status labelled s.
func ParseStatus(s string) (Status, error) {
	for i, label := range statusLabels {
		if label == s {
			return Status(i), nil
		}
	}
	return StatusActive, fmt.Errorf("unknown status %q", s)
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusLabels) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusLabels[s]
}

// MarshalText implements [encoding.TextMarshaler].
func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusLabels) {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(statusLabels[s]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

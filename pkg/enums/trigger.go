package enums

import "fmt"

// Trigger records whether a board action came from staff or from the scheduler.
type Trigger string

const (
	TriggerAuto   Trigger = "auto"
	TriggerManual Trigger = "manual"
)

var validTriggers = []Trigger{
	TriggerAuto,
	TriggerManual,
}

// String implements fmt.Stringer.
func (t Trigger) String() string {
	return string(t)
}

// IsValid reports whether the value is a known Trigger.
func (t Trigger) IsValid() bool {
	for _, candidate := range validTriggers {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTrigger converts raw input into a Trigger.
func ParseTrigger(value string) (Trigger, error) {
	for _, candidate := range validTriggers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid trigger %q", value)
}

package effect

// Phase is one of the three cycle states. The cycle order is fixed:
// Red -> Yellow -> Green -> Red.
type Phase int

const (
	Red Phase = iota
	Yellow
	Green

	phaseCount = 3
)

func (p Phase) String() string {
	switch p {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	}
	return "unknown"
}

// Slot binds a phase to a panel. The zero value is the ignored
// sentinel: no panel assigned, and the phase is skipped by the cycle.
type Slot struct {
	PanelID int
	Valid   bool
}

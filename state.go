package svgicons

// State is an icon's logical toggle state.
type State uint8

const (
	StateOff State = iota
	StateOn
)

// Next returns the state a toggle moves s into.
func (s State) Next() State {
	switch s {
	case StateOn:
		return StateOff
	default:
		return StateOn
	}
}

func (s State) String() string {
	switch s {
	case StateOn:
		return "on"
	case StateOff:
		return "off"
	default:
		return "unknown"
	}
}

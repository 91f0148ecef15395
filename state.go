package interview_coach

// State is the lifecycle of a Relay.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateConnected
	StateResponseInProgress
	StateAwaitingInput
	StateClosing
	StateClosed
)

var stateNames = [...]string{
	StateIdle:               "IDLE",
	StateConnecting:         "CONNECTING",
	StateConnected:          "CONNECTED",
	StateResponseInProgress: "RESPONSE_IN_PROGRESS",
	StateAwaitingInput:      "AWAITING_INPUT",
	StateClosing:            "CLOSING",
	StateClosed:             "CLOSED",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}

// validTransitions lists the states reachable from each state. Any live
// state may move to CLOSING.
var validTransitions = map[State][]State{
	StateIdle:               {StateConnecting, StateClosing},
	StateConnecting:         {StateConnected, StateClosing},
	StateConnected:          {StateResponseInProgress, StateAwaitingInput, StateClosing},
	StateResponseInProgress: {StateAwaitingInput, StateClosing},
	StateAwaitingInput:      {StateResponseInProgress, StateClosing},
	StateClosing:            {StateClosed},
}

func (s State) canTransition(to State) bool {
	for _, next := range validTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

package session

// State is a step of the session lifecycle. Transitions only move forward;
// any failure jumps straight to Terminated.
type State uint32

const (
	Idle State = iota
	KeyGenerated
	Connected
	KeysExchanged
	Communicating
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case KeyGenerated:
		return "KEY_GENERATED"
	case Connected:
		return "CONNECTED"
	case KeysExchanged:
		return "KEYS_EXCHANGED"
	case Communicating:
		return "COMMUNICATING"
	case Terminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// Role decides who sends the first public key and who speaks first.
type Role uint8

const (
	Initiator Role = iota + 1
	Responder
)

func (r Role) String() string {
	switch r {
	case Initiator:
		return "initiator"
	case Responder:
		return "responder"
	default:
		return "unknown"
	}
}

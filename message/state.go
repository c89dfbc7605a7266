package message

import "fmt"

// State tracks how far parsing of a Message got.
type State int

// The states in order. Make only returns messages in the Complete state; the
// others are visible through errors and logs.
const (
	Unparsed State = iota
	HeaderParsed
	StructureParsed
	BodyResolved
	Complete
)

func (s State) String() string {
	switch s {
	case Unparsed:
		return "unparsed"
	case HeaderParsed:
		return "header-parsed"
	case StructureParsed:
		return "structure-parsed"
	case BodyResolved:
		return "body-resolved"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

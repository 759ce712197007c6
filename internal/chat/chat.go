package chat

import (
	"fmt"
	"strings"
)

// State is the branch of the response selector that produced a reply
type State int

const (
	Greeting State = iota
	SearchFallback
	Dispatched
	MoodFallback
	Exit
)

var stateNames = [...]string{
	Greeting:       "greeting",
	SearchFallback: "search",
	Dispatched:     "dispatched",
	MoodFallback:   "mood",
	Exit:           "exit",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText lets states appear by name in JSON
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses the names produced by String
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if strings.EqualFold(name, string(text)) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

// Reply is the answer to one line of user input
type Reply struct {
	Turn    string `json:"turn"`
	State   State  `json:"state"`
	Text    string `json:"reply"`
	Handler string `json:"handler,omitempty"` // tool that answered, for Dispatched replies
}

// Ends reports whether the session is over after this reply
func (r Reply) Ends() bool {
	return r.State == Exit
}

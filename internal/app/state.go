package app

import (
	"encoding/json"
	"fmt"
)

// State of the client session. InCall is a sub-state of InRoom.
type State int

const (
	StateSetup State = iota
	StateAuthenticating
	StateAuthenticated
	StateInRoom
	StateInCall
)

var stateNames = map[State]string{
	StateSetup:          "setup",
	StateAuthenticating: "authenticating",
	StateAuthenticated:  "authenticated",
	StateInRoom:         "in_room",
	StateInCall:         "in_call",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Authenticated reports whether s carries a recorded profile.
func (s State) Authenticated() bool { return s >= StateAuthenticated }

// InRoom reports whether a chat target is bound.
func (s State) InRoom() bool { return s >= StateInRoom }

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *State) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	for st, n := range stateNames {
		if n == name {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", name)
}

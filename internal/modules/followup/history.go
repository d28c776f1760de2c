// README: Conversation history and the follow-up cache of past answers.
package followup

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// MaxTurns is how many turns a History keeps.
	MaxTurns = 5
	// ContextTurns is how many recent turns are rendered into a prompt.
	ContextTurns = 3
)

type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// History is an immutable, bounded list of turns. Append returns a new value
// and never touches the receiver.
type History struct {
	turns []Turn
}

func NewHistory(turns ...Turn) History {
	return History{turns: clip(append([]Turn(nil), turns...))}
}

func (h History) Append(user, assistant string) History {
	turns := make([]Turn, 0, len(h.turns)+1)
	turns = append(turns, h.turns...)
	turns = append(turns, Turn{User: user, Assistant: assistant})
	return History{turns: clip(turns)}
}

func (h History) Len() int {
	return len(h.turns)
}

// Turns returns a copy of the stored turns, oldest first.
func (h History) Turns() []Turn {
	return append([]Turn(nil), h.turns...)
}

// Context renders the last ContextTurns turns, one "User:"/"Assistant:" pair each.
func (h History) Context() string {
	recent := h.turns
	if len(recent) > ContextTurns {
		recent = recent[len(recent)-ContextTurns:]
	}
	lines := make([]string, 0, len(recent))
	for _, t := range recent {
		lines = append(lines, fmt.Sprintf("User: %s\nAssistant: %s", t.User, t.Assistant))
	}
	return strings.Join(lines, "\n")
}

func (h History) MarshalJSON() ([]byte, error) {
	if h.turns == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h.turns)
}

func (h *History) UnmarshalJSON(data []byte) error {
	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return err
	}
	*h = NewHistory(turns...)
	return nil
}

func clip(turns []Turn) []Turn {
	if len(turns) > MaxTurns {
		return turns[len(turns)-MaxTurns:]
	}
	return turns
}

package model

// Phase is the active step of the interaction state machine.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

func (p Phase) String() string {
	return string(p)
}

// Idea is the parsed content of one generation.
type Idea struct {
	Idea          string `json:"idea"`
	Encouragement string `json:"encouragement"`
}

// State is the interaction state owned by the controller. Callers only ever
// receive copies of it.
type State struct {
	UserInput     string `json:"user_input"`
	Idea          string `json:"idea"`
	Encouragement string `json:"encouragement"`
	IsLoading     bool   `json:"is_loading"`
	Error         string `json:"error,omitempty"`
	Phase         Phase  `json:"phase"`
}

// NewState returns the idle state a session starts in.
func NewState() State {
	return State{Phase: PhaseIdle}
}

// HasResult reports whether the results area has anything to show.
func (s State) HasResult() bool {
	return s.Idea != "" || s.Encouragement != ""
}

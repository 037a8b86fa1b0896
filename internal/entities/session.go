package entities

import "time"

// LogSeverity tags a narrative log entry for the presentation layer.
type LogSeverity string

// Log severities.
const (
	LogNarrative LogSeverity = "narrative"
	LogSuccess   LogSeverity = "success"
	LogFailure   LogSeverity = "failure"
	LogInfo      LogSeverity = "info"
)

// LogEntry is one line of the append-only adventure log.
type LogEntry struct {
	Text     string      `json:"text"`
	Severity LogSeverity `json:"severity"`
	At       time.Time   `json:"at"`
}

// Session is one running adventure: the character, the active scene, combat
// state if any, and the narrative log. Owned exclusively by the adventure
// orchestrator; mutated only in response to a single in-flight intent.
type Session struct {
	ID        string       `json:"id"`
	Character *Character   `json:"character"`
	Scene     *Scene       `json:"scene,omitempty"`
	Combat    *CombatState `json:"combat,omitempty"`
	Log       []LogEntry   `json:"log"`

	// ScenesSinceLongRest gates long rests outside of inns.
	ScenesSinceLongRest int32 `json:"scenes_since_long_rest"`

	// TransitionToken versions pending scene transitions. A delayed
	// transition applies only if its token still matches; a fresh intent
	// bumps the token and strands any stale transition.
	TransitionToken uint64 `json:"transition_token"`

	// GameOver is set when the character is defeated.
	GameOver bool `json:"game_over"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

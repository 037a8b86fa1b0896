package adventure

import (
	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/orchestrators/combat"
)

// RestKind selects between short and long camp rests.
type RestKind string

// Rest kinds.
const (
	RestShort RestKind = "short"
	RestLong  RestKind = "long"
)

// StartAdventureInput holds the data needed to begin a new adventure
type StartAdventureInput struct {
	Name      string
	RaceName  string
	ClassName string
}

// StartAdventureOutput contains the new session
type StartAdventureOutput struct {
	Session *entities.Session
}

// GetSessionInput identifies a session to load
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput contains the loaded session
type GetSessionOutput struct {
	Session *entities.Session
}

// ChooseInput selects a scene choice by ID
type ChooseInput struct {
	SessionID string
	ChoiceID  string
}

// ChooseOutput contains the session after the choice resolved
type ChooseOutput struct {
	Session *entities.Session
}

// CombatActionInput performs one combat action
type CombatActionInput struct {
	SessionID string
	Action    combat.Action
}

// CombatActionOutput contains the session after the combat round
type CombatActionOutput struct {
	Session *entities.Session
}

// RestInput requests a camp rest outside of town
type RestInput struct {
	SessionID string
	Kind      RestKind
}

// RestOutput contains the session after the rest
type RestOutput struct {
	Session *entities.Session
}

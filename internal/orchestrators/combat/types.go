package combat

import "github.com/torchlit/adventure-api/internal/entities"

// Action is a player combat intent.
type Action string

// Combat actions.
const (
	ActionAttack Action = "attack"
	ActionSpell  Action = "spell"
	ActionPotion Action = "potion"
	ActionFlee   Action = "flee"
)

// Message is one combat transcript line with its severity tag.
type Message struct {
	Text     string
	Severity entities.LogSeverity
}

// StartCombatInput builds a fresh combat from the character and a combat
// scene's enemy snapshot.
type StartCombatInput struct {
	Character *entities.Character
	Scene     *entities.Scene
}

// StartCombatOutput carries the initial combat state. Its log already holds
// the combat-started line.
type StartCombatOutput struct {
	State    entities.CombatState
	Messages []Message
}

// ExecuteActionInput resolves one full combat round: the player action and,
// if combat continues, the enemy's reply. The character is mutated in place
// (HP sync, potion consumption, victory rewards).
type ExecuteActionInput struct {
	Character *entities.Character
	State     entities.CombatState
	Action    Action
}

// ExecuteActionOutput is the round's result. State.Phase is terminal on
// victory, defeat, or a successful flee; the caller discards the state then.
type ExecuteActionOutput struct {
	State    entities.CombatState
	Messages []Message

	// EnemyDefeated is set on victory so the caller can publish the kill.
	EnemyDefeated bool
	DefeatedEnemy string

	// QuestMessages are the progress lines from applying the kill event.
	QuestMessages []string

	LeveledUp bool
}

package quest

import "github.com/torchlit/adventure-api/internal/entities"

// GenerateQuestInput asks for a quest scaled to a character level.
type GenerateQuestInput struct {
	Level int32
}

// GenerateQuestOutput carries the generated quest. The caller decides
// whether to attach it to a character.
type GenerateQuestOutput struct {
	Quest entities.Quest
}

// Event is a game occurrence quests can track, such as a kill.
type Event struct {
	Type   entities.ObjectiveType
	Target string
}

// ApplyEventInput records an event against a character's quest log. The
// character is mutated in place.
type ApplyEventInput struct {
	Character *entities.Character
	Event     Event
}

// ApplyEventOutput lists the player-visible progress messages and any quests
// completed by this event.
type ApplyEventOutput struct {
	Messages        []string
	CompletedQuests []entities.Quest
}

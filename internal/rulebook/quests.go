package rulebook

import "github.com/torchlit/adventure-api/internal/entities"

// QuestTemplate is the base a generated quest scales from. Objective count
// and rewards scale with the accepting character's level.
type QuestTemplate struct {
	Title       string
	Description string
	Objective   entities.QuestObjective
	RewardXP    int32
	RewardGP    int32
}

// QuestTemplates is the fixed quest catalog.
var QuestTemplates = []QuestTemplate{
	{
		Title:       "Cleanse the Cave",
		Description: "A local cave has been overrun by monsters. Clear them out.",
		Objective:   entities.QuestObjective{Type: entities.ObjectiveKill, Target: "Goblin", Count: 3},
		RewardXP:    100,
		RewardGP:    25,
	},
	{
		Title:       "Rat Catcher",
		Description: "The tavern basement is infested. Help the owner.",
		Objective:   entities.QuestObjective{Type: entities.ObjectiveKill, Target: "Giant Rat", Count: 5},
		RewardXP:    50,
		RewardGP:    10,
	},
	{
		Title:       "Lost shipment",
		Description: "Bandits stole a shipment of supplies. Recover it.",
		Objective:   entities.QuestObjective{Type: entities.ObjectiveKill, Target: "Bandit", Count: 2},
		RewardXP:    150,
		RewardGP:    50,
	},
}

// QuestTemplateByTitle returns the template with the given title.
func QuestTemplateByTitle(title string) (QuestTemplate, bool) {
	for _, t := range QuestTemplates {
		if t.Title == title {
			return t, true
		}
	}
	return QuestTemplate{}, false
}

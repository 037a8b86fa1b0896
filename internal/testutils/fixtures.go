package testutils

import (
	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/rulebook"
)

// TestCharacterName is the default character name for test fixtures
const TestCharacterName = "Thorin Oakenshield"

// CreateTestFighter creates a level 1 Human Fighter with the standard
// starting kit. Stats follow the creation rules: base 10s, +1 across the
// board for Human, +3 Strength and +3 Constitution for Fighter.
func CreateTestFighter() *entities.Character {
	race, _ := rulebook.RaceByName("Human")
	class, _ := rulebook.ClassByName("Fighter")

	c := &entities.Character{
		Name:  TestCharacterName,
		Race:  &race,
		Class: &class,
		Level: 1,
		Stats: entities.AbilityScores{
			Strength:     14,
			Dexterity:    11,
			Constitution: 14,
			Intelligence: 11,
			Wisdom:       11,
			Charisma:     11,
		},
		HP: entities.HitPoints{
			Current:        12,
			Max:            12,
			HitDiceCurrent: 1,
			HitDiceMax:     1,
		},
		XP:     0,
		MaxXP:  300,
		Skills: []entities.Skill{entities.SkillAthletics, entities.SkillPerception},
	}
	rulebook.ApplyStartingKit(c)
	return c
}

// CreateTestWizard creates a level 1 Elf Wizard with the standard starting
// kit.
func CreateTestWizard() *entities.Character {
	race, _ := rulebook.RaceByName("Elf")
	class, _ := rulebook.ClassByName("Wizard")

	c := &entities.Character{
		Name:  "Elaria",
		Race:  &race,
		Class: &class,
		Level: 1,
		Stats: entities.AbilityScores{
			Strength:     10,
			Dexterity:    12,
			Constitution: 12,
			Intelligence: 14,
			Wisdom:       10,
			Charisma:     10,
		},
		HP: entities.HitPoints{
			Current:        7,
			Max:            7,
			HitDiceCurrent: 1,
			HitDiceMax:     1,
		},
		XP:     0,
		MaxXP:  300,
		Skills: []entities.Skill{entities.SkillAthletics, entities.SkillPerception},
	}
	rulebook.ApplyStartingKit(c)
	return c
}

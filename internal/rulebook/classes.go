package rulebook

import "github.com/torchlit/adventure-api/internal/entities"

var classes = map[string]entities.Class{
	"Fighter": {
		Name:         "Fighter",
		HitDie:       10,
		SavingThrows: []entities.Ability{entities.AbilityStrength, entities.AbilityConstitution},
		Features: []entities.Feature{
			{Name: "Second Wind", Description: "Bonus Action: Regain 1d10 + Level HP. (Once per Short Rest)", Level: 1},
			{Name: "Fighting Style", Description: "Choose a specialization (Defense, Dueling, etc).", Level: 1},
		},
	},
	"Wizard": {
		Name:         "Wizard",
		HitDie:       6,
		SavingThrows: []entities.Ability{entities.AbilityIntelligence, entities.AbilityWisdom},
		Features: []entities.Feature{
			{Name: "Arcane Recovery", Description: "Regain some spell slots on Short Rest.", Level: 1},
			{Name: "Spellcasting", Description: "Cast Wizard spells using Intelligence.", Level: 1},
		},
	},
	"Rogue": {
		Name:         "Rogue",
		HitDie:       8,
		SavingThrows: []entities.Ability{entities.AbilityDexterity, entities.AbilityIntelligence},
		Features: []entities.Feature{
			{Name: "Sneak Attack", Description: "Deal extra damage if you have advantage or an ally is nearby.", Level: 1},
			{Name: "Thieves' Cant", Description: "Speak a secret code language.", Level: 1},
		},
	},
	"Cleric": {
		Name:         "Cleric",
		HitDie:       8,
		SavingThrows: []entities.Ability{entities.AbilityWisdom, entities.AbilityCharisma},
		Features: []entities.Feature{
			{Name: "Spellcasting", Description: "Cast Cleric spells using Wisdom.", Level: 1},
			{Name: "Divine Domain", Description: "Choose a deity and gain domain spells.", Level: 1},
		},
	},
}

// ClassNames lists the playable classes in a stable order.
func ClassNames() []string {
	return []string{"Fighter", "Wizard", "Rogue", "Cleric"}
}

// ClassByName returns a copy of the named class template.
func ClassByName(name string) (entities.Class, bool) {
	c, ok := classes[name]
	return c, ok
}

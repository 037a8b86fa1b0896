package rulebook

import "github.com/torchlit/adventure-api/internal/entities"

var races = map[string]entities.Race{
	"Human": {
		Name:  "Human",
		Speed: 30,
		AbilityBonuses: map[entities.Ability]int32{
			entities.AbilityStrength:     1,
			entities.AbilityDexterity:    1,
			entities.AbilityConstitution: 1,
			entities.AbilityIntelligence: 1,
			entities.AbilityWisdom:       1,
			entities.AbilityCharisma:     1,
		},
		Traits: []entities.Trait{
			{Name: "Versatile", Description: "Humans adapt to any situation."},
		},
	},
	"Elf": {
		Name:  "Elf",
		Speed: 30,
		AbilityBonuses: map[entities.Ability]int32{
			entities.AbilityDexterity: 2,
		},
		Traits: []entities.Trait{
			{Name: "Darkvision", Description: "Can see 60ft in dim light as if bright, and darkness as if dim."},
			{Name: "Fey Ancestry", Description: "Advantage on saves vs Charm, immune to sleep magic."},
			{Name: "Trance", Description: "Meditate for 4 hours instead of sleeping 8."},
		},
	},
	"Dwarf": {
		Name:  "Dwarf",
		Speed: 25,
		AbilityBonuses: map[entities.Ability]int32{
			entities.AbilityConstitution: 2,
		},
		Traits: []entities.Trait{
			{Name: "Darkvision", Description: "Can see 60ft in dim light as if bright, and darkness as if dim."},
			{Name: "Dwarven Resilience", Description: "Advantage on saves vs Poison, resistance to Poison damage."},
		},
	},
	"Halfling": {
		Name:  "Halfling",
		Speed: 25,
		AbilityBonuses: map[entities.Ability]int32{
			entities.AbilityDexterity: 2,
		},
		Traits: []entities.Trait{
			{Name: "Lucky", Description: "Reroll 1s on attacks, ability checks, and saves."},
			{Name: "Halfling Nimbleness", Description: "Can move through the space of any creature larger than you."},
		},
	},
}

// RaceNames lists the playable races in a stable order.
func RaceNames() []string {
	return []string{"Human", "Elf", "Dwarf", "Halfling"}
}

// RaceByName returns a copy of the named race template.
func RaceByName(name string) (entities.Race, bool) {
	r, ok := races[name]
	return r, ok
}

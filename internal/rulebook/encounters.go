package rulebook

import (
	"strings"

	"github.com/torchlit/adventure-api/internal/entities"
)

// Locations are flavor strings prepended to wilderness scene descriptions.
var Locations = []string{
	"Ancient Ruins of a Forgotten Empire",
	"A Bustling City Market under Shadow",
	"The Cursed Swamp of Whispers",
	"A Floating Island above the Clouds",
	"The Underdark Caverns of glowing fungi",
	"A Wizard's Tower spiraling into the void",
	"A King's Throne Room, frozen in time",
}

// CombatEncounter is a combat encounter template. HP and AC are base values
// scaled to the player's level at generation time.
type CombatEncounter struct {
	Description string
	Enemy       string
	HP          int32
	AC          int32
}

// CombatEncounters is the fixed pool of combat encounter templates.
var CombatEncounters = []CombatEncounter{
	{Description: "A pack of Goblins ambushes you!", Enemy: "Goblin", HP: 10, AC: 11},
	{Description: "A hulking Orc blocks the path.", Enemy: "Orc Warrior", HP: 20, AC: 12},
	{Description: "A hungry Wolf stalks you from the bushes.", Enemy: "Wolf", HP: 11, AC: 13},
	{Description: "A Band of Thugs demands your coin.", Enemy: "Thug", HP: 16, AC: 11},
	{Description: "A group of highwaymen attacks!", Enemy: "Bandit", HP: 11, AC: 12},
}

// NonCombatEncounter is a roleplay or exploration encounter template. Every
// template carries an explicit variant tag; choice sets key off the tag, not
// the description.
type NonCombatEncounter struct {
	Type        entities.SceneType
	Variant     entities.EncounterVariant
	Description string
}

// NonCombatEncounters is the fixed pool of non-combat encounter templates.
var NonCombatEncounters = []NonCombatEncounter{
	{Type: entities.SceneRoleplay, Variant: entities.VariantTrader, Description: "A mysterious merchant offers a trade."},
	{Type: entities.SceneExploration, Variant: entities.VariantTrap, Description: "A trapped door blocks the way."},
	{Type: entities.SceneRoleplay, Variant: entities.VariantNPC, Description: "A wounded soldier asks for help."},
	{Type: entities.SceneExploration, Variant: entities.VariantShrine, Description: "A glowing shrine hums with ancient power."},
	{Type: entities.SceneRoleplay, Variant: entities.VariantBard, Description: "A traveling bard sits by the road, tuning a lute."},
	{Type: entities.SceneExploration, Variant: entities.VariantRiddle, Description: "A sphinx statue blocks the path, its eyes glowing."},
	{Type: entities.SceneExploration, Variant: entities.VariantWildMagic, Description: "The air crackles with unstable wild magic."},
	{Type: entities.SceneRoleplay, Variant: entities.VariantLostPet, Description: "A sobbing child is looking for their lost pet."},
	{Type: entities.SceneRoleplay, Variant: entities.VariantBanditToll, Description: "A group of bandits blocks the road, demanding a toll."},
}

// FindCombatEncounterByEnemy returns the first combat template whose enemy
// name contains the target as a substring. Quest targets and enemy names
// share the catalog's casing, so plain substring matching suffices.
func FindCombatEncounterByEnemy(target string) (CombatEncounter, bool) {
	for _, e := range CombatEncounters {
		if strings.Contains(e.Enemy, target) {
			return e, true
		}
	}
	return CombatEncounter{}, false
}

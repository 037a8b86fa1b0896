// Package rulebook holds the static content tables the simulation core
// consumes read-only: skills, classes, races, the item catalog, encounter
// and quest templates, and the character creation questionnaire. Lookups
// return copies; catalog entries are never shared by reference.
package rulebook

import "github.com/torchlit/adventure-api/internal/entities"

// skillAbilities maps each skill to its governing ability.
var skillAbilities = map[entities.Skill]entities.Ability{
	entities.SkillAthletics: entities.AbilityStrength,
	entities.SkillStrength:  entities.AbilityStrength,

	entities.SkillAcrobatics:    entities.AbilityDexterity,
	entities.SkillSleightOfHand: entities.AbilityDexterity,
	entities.SkillStealth:       entities.AbilityDexterity,
	entities.SkillDexterity:     entities.AbilityDexterity,

	entities.SkillConstitution: entities.AbilityConstitution,

	entities.SkillArcana:        entities.AbilityIntelligence,
	entities.SkillHistory:       entities.AbilityIntelligence,
	entities.SkillNature:        entities.AbilityIntelligence,
	entities.SkillReligion:      entities.AbilityIntelligence,
	entities.SkillInvestigation: entities.AbilityIntelligence,
	entities.SkillIntelligence:  entities.AbilityIntelligence,

	entities.SkillInsight:        entities.AbilityWisdom,
	entities.SkillMedicine:       entities.AbilityWisdom,
	entities.SkillPerception:     entities.AbilityWisdom,
	entities.SkillSurvival:       entities.AbilityWisdom,
	entities.SkillAnimalHandling: entities.AbilityWisdom,
	entities.SkillWisdom:         entities.AbilityWisdom,

	entities.SkillDeception:    entities.AbilityCharisma,
	entities.SkillIntimidation: entities.AbilityCharisma,
	entities.SkillPerformance:  entities.AbilityCharisma,
	entities.SkillPersuasion:   entities.AbilityCharisma,
	entities.SkillCharisma:     entities.AbilityCharisma,
}

// SkillAbility returns the ability governing a skill. Unknown skills default
// to Dexterity.
func SkillAbility(skill entities.Skill) entities.Ability {
	if ability, ok := skillAbilities[skill]; ok {
		return ability
	}
	return entities.AbilityDexterity
}

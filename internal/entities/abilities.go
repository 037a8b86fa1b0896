// Package entities provides the core data model for the adventure simulator:
// the character aggregate, item and quest shapes, scenes, and combat state.
package entities

// Ability is one of the six core ability scores.
type Ability string

// The six abilities.
const (
	AbilityStrength     Ability = "Strength"
	AbilityDexterity    Ability = "Dexterity"
	AbilityConstitution Ability = "Constitution"
	AbilityIntelligence Ability = "Intelligence"
	AbilityWisdom       Ability = "Wisdom"
	AbilityCharisma     Ability = "Charisma"
)

// Abilities is the canonical iteration order for the ability set.
var Abilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// Skill names a proficiency. The raw ability names double as skills so scenes
// can call for unskilled ability checks (e.g. a Constitution check against
// wild magic).
type Skill string

// Skills.
const (
	SkillAcrobatics     Skill = "Acrobatics"
	SkillAnimalHandling Skill = "Animal Handling"
	SkillArcana         Skill = "Arcana"
	SkillAthletics      Skill = "Athletics"
	SkillDeception      Skill = "Deception"
	SkillHistory        Skill = "History"
	SkillInsight        Skill = "Insight"
	SkillIntimidation   Skill = "Intimidation"
	SkillInvestigation  Skill = "Investigation"
	SkillMedicine       Skill = "Medicine"
	SkillNature         Skill = "Nature"
	SkillPerception     Skill = "Perception"
	SkillPerformance    Skill = "Performance"
	SkillPersuasion     Skill = "Persuasion"
	SkillReligion       Skill = "Religion"
	SkillSleightOfHand  Skill = "Sleight of Hand"
	SkillStealth        Skill = "Stealth"
	SkillSurvival       Skill = "Survival"

	// Raw ability checks
	SkillStrength     Skill = "Strength"
	SkillDexterity    Skill = "Dexterity"
	SkillConstitution Skill = "Constitution"
	SkillIntelligence Skill = "Intelligence"
	SkillWisdom       Skill = "Wisdom"
	SkillCharisma     Skill = "Charisma"
)

// AbilityScores holds the six core ability scores.
type AbilityScores struct {
	Strength     int32 `json:"strength"`
	Dexterity    int32 `json:"dexterity"`
	Constitution int32 `json:"constitution"`
	Intelligence int32 `json:"intelligence"`
	Wisdom       int32 `json:"wisdom"`
	Charisma     int32 `json:"charisma"`
}

// Score returns the score for the given ability.
func (s AbilityScores) Score(ability Ability) int32 {
	switch ability {
	case AbilityStrength:
		return s.Strength
	case AbilityDexterity:
		return s.Dexterity
	case AbilityConstitution:
		return s.Constitution
	case AbilityIntelligence:
		return s.Intelligence
	case AbilityWisdom:
		return s.Wisdom
	case AbilityCharisma:
		return s.Charisma
	default:
		return 0
	}
}

// Add increases the score for the given ability by delta.
func (s *AbilityScores) Add(ability Ability, delta int32) {
	switch ability {
	case AbilityStrength:
		s.Strength += delta
	case AbilityDexterity:
		s.Dexterity += delta
	case AbilityConstitution:
		s.Constitution += delta
	case AbilityIntelligence:
		s.Intelligence += delta
	case AbilityWisdom:
		s.Wisdom += delta
	case AbilityCharisma:
		s.Charisma += delta
	}
}

// Highest returns the ability with the highest score. Ties resolve to the
// later ability in canonical order.
func (s AbilityScores) Highest() Ability {
	best := Abilities[0]
	for _, a := range Abilities[1:] {
		if s.Score(a) >= s.Score(best) {
			best = a
		}
	}
	return best
}

// Package character implements character creation and the class
// recommendation questionnaire.
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/torchlit/adventure-api/internal/orchestrators/character Service

import (
	"log/slog"

	"github.com/torchlit/adventure-api/internal/engine"
	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/errors"
	"github.com/torchlit/adventure-api/internal/rulebook"
)

// Service defines the interface for character operations
type Service interface {
	// CreateCharacter builds a level 1 character from a name, race, and
	// class, with starting equipment applied
	CreateCharacter(input *CreateCharacterInput) (*CreateCharacterOutput, error)

	// RecommendClass scores questionnaire answers and returns the best
	// matching class
	RecommendClass(input *RecommendClassInput) (*RecommendClassOutput, error)

	// Questionnaire returns the class-recommendation questions
	Questionnaire() *QuestionnaireOutput
}

// Config holds the dependencies for the character orchestrator
type Config struct {
	Engine engine.Engine
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}

	return vb.Build()
}

type orchestrator struct {
	engine engine.Engine
}

// NewOrchestrator creates a new character orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		engine: cfg.Engine,
	}, nil
}

// abilityPackage is the stat allocation a class starts with, applied on top
// of the base 10s and racial bonuses. Keyed by the requested class name, so
// a recommended class outside the playable catalog still shapes the stats
// even though the class template and kit fall back to Fighter.
type abilityPackage map[entities.Ability]int32

var abilityPackages = map[string]abilityPackage{
	"Fighter":   {entities.AbilityStrength: 3, entities.AbilityConstitution: 3},
	"Wizard":    {entities.AbilityIntelligence: 4, entities.AbilityConstitution: 2},
	"Rogue":     {entities.AbilityDexterity: 4, entities.AbilityCharisma: 2},
	"Cleric":    {entities.AbilityWisdom: 4, entities.AbilityStrength: 2},
	"Barbarian": {entities.AbilityStrength: 4, entities.AbilityConstitution: 2},
}

// CreateCharacter assembles a level 1 character. Unknown races and classes
// fall back to Human and Fighter so a questionnaire recommendation outside
// the playable catalog still produces a valid character.
func (o *orchestrator) CreateCharacter(input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("name is required")
	}

	race, ok := rulebook.RaceByName(input.RaceName)
	if !ok {
		race, _ = rulebook.RaceByName("Human")
	}
	class, ok := rulebook.ClassByName(input.ClassName)
	if !ok {
		class, _ = rulebook.ClassByName("Fighter")
	}

	stats := entities.AbilityScores{
		Strength:     10,
		Dexterity:    10,
		Constitution: 10,
		Intelligence: 10,
		Wisdom:       10,
		Charisma:     10,
	}
	for ability, bonus := range race.AbilityBonuses {
		stats.Add(ability, bonus)
	}
	pkg, ok := abilityPackages[input.ClassName]
	if !ok {
		pkg = abilityPackages["Fighter"]
	}
	for ability, bonus := range pkg {
		stats.Add(ability, bonus)
	}

	conMod := o.engine.AbilityModifier(stats.Constitution)
	maxHP := class.HitDie + conMod
	if maxHP < 1 {
		maxHP = 1
	}

	c := &entities.Character{
		Name:  input.Name,
		Race:  &race,
		Class: &class,
		Level: 1,
		Stats: stats,
		HP: entities.HitPoints{
			Current:        maxHP,
			Max:            maxHP,
			HitDiceCurrent: 1,
			HitDiceMax:     1,
		},
		XP:     0,
		MaxXP:  rulebook.XPCap(1),
		Skills: []entities.Skill{entities.SkillAthletics, entities.SkillPerception},
	}
	rulebook.ApplyStartingKit(c)

	slog.Info("Character created",
		"name", c.Name,
		"race", race.Name,
		"class", class.Name,
		"max_hp", maxHP,
	)

	return &CreateCharacterOutput{Character: c}, nil
}

// RecommendClass tallies questionnaire answers into a class recommendation.
func (o *orchestrator) RecommendClass(input *RecommendClassInput) (*RecommendClassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return &RecommendClassOutput{ClassName: rulebook.RecommendClass(input.Answers)}, nil
}

// Questionnaire returns the class-recommendation questions.
func (o *orchestrator) Questionnaire() *QuestionnaireOutput {
	return &QuestionnaireOutput{Questions: rulebook.Questionnaire}
}

// Package scene implements procedural scene generation: towns, quest-steered
// hunts, wilderness encounters, the shop, and the bandit ambush.
package scene

//go:generate mockgen -destination=mock/mock_service.go -package=scenemock github.com/torchlit/adventure-api/internal/orchestrators/scene Service

import (
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/torchlit/adventure-api/internal/engine"
	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/errors"
	"github.com/torchlit/adventure-api/internal/pkg/idgen"
	"github.com/torchlit/adventure-api/internal/rulebook"
)

// Odds, in percent, rolled on a d100.
const (
	townChance      = 10
	steerChance     = 50
	nonCombatChance = 70

	maxActiveQuestsForBoard = 3
)

// Service defines the interface for scene generation
type Service interface {
	// NextScene generates the next scene from the tables, the player's
	// level, and their active quests
	NextScene(input *NextSceneInput) (*NextSceneOutput, error)

	// ShopScene builds the general store with sell choices for the
	// given inventory
	ShopScene(input *ShopSceneInput) (*ShopSceneOutput, error)

	// AmbushScene builds the forced bandit combat scene
	AmbushScene(input *AmbushSceneInput) (*AmbushSceneOutput, error)
}

// Config holds the dependencies for the scene orchestrator
type Config struct {
	Engine      engine.Engine
	Roller      dice.Roller
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	engine engine.Engine
	roller dice.Roller
	idGen  idgen.Generator
}

// NewOrchestrator creates a new scene orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		engine: cfg.Engine,
		roller: cfg.Roller,
		idGen:  cfg.IDGenerator,
	}, nil
}

// NextScene composes the next scene. 10% of the time it is a town; otherwise
// an incomplete kill objective steers half of all scenes toward its target,
// and the rest split 70/30 between non-combat and combat encounters.
func (o *orchestrator) NextScene(input *NextSceneInput) (*NextSceneOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	level := input.Level
	if level < 1 {
		level = 1
	}

	townRoll, err := o.percent()
	if err != nil {
		return nil, err
	}
	if townRoll <= townChance {
		return &NextSceneOutput{Scene: o.townScene(input.ActiveQuests)}, nil
	}

	forced, err := o.steeredEncounter(input.ActiveQuests, level)
	if err != nil {
		return nil, err
	}

	location, err := o.pick(len(rulebook.Locations))
	if err != nil {
		return nil, err
	}
	locationName := rulebook.Locations[location]

	if forced != nil {
		s, err := o.combatScene(locationName, *forced, level)
		if err != nil {
			return nil, err
		}
		return &NextSceneOutput{Scene: s}, nil
	}

	poolRoll, err := o.percent()
	if err != nil {
		return nil, err
	}

	if poolRoll <= nonCombatChance {
		pick, err := o.pick(len(rulebook.NonCombatEncounters))
		if err != nil {
			return nil, err
		}
		s, err := o.nonCombatScene(locationName, rulebook.NonCombatEncounters[pick])
		if err != nil {
			return nil, err
		}
		return &NextSceneOutput{Scene: s}, nil
	}

	pick, err := o.pick(len(rulebook.CombatEncounters))
	if err != nil {
		return nil, err
	}
	s, err := o.combatScene(locationName, rulebook.CombatEncounters[pick], level)
	if err != nil {
		return nil, err
	}
	return &NextSceneOutput{Scene: s}, nil
}

// steeredEncounter returns a forced combat encounter when an active quest
// has an incomplete kill objective and the 50% steer roll lands. A catalog
// encounter matching the target is reused; otherwise one is synthesized.
func (o *orchestrator) steeredEncounter(quests []entities.Quest, level int32) (*rulebook.CombatEncounter, error) {
	var target string
	for _, q := range quests {
		if q.Status != entities.QuestStatusActive {
			continue
		}
		for _, obj := range q.Objectives {
			if obj.Type == entities.ObjectiveKill && !obj.Complete() {
				target = obj.Target
				break
			}
		}
		if target != "" {
			break
		}
	}
	if target == "" {
		return nil, nil
	}

	roll, err := o.percent()
	if err != nil {
		return nil, err
	}
	if roll > steerChance {
		return nil, nil
	}

	if enc, ok := rulebook.FindCombatEncounterByEnemy(target); ok {
		return &enc, nil
	}
	return &rulebook.CombatEncounter{
		Description: fmt.Sprintf("You track down the %ss you were hunting.", target),
		Enemy:       target,
		HP:          15 + 5*level,
		AC:          12,
	}, nil
}

func (o *orchestrator) townScene(quests []entities.Quest) entities.Scene {
	choices := []entities.Choice{
		{
			ID:          "shop",
			Text:        "Visit the General Store",
			Consequence: &entities.Consequence{Success: "You browse the wares."},
		},
		{
			ID:          "rest",
			Text:        "Stay at the Inn (Long Rest)",
			Consequence: &entities.Consequence{Success: "You sleep soundly."},
		},
		{
			ID:          "leave",
			Text:        "Leave Town",
			Consequence: &entities.Consequence{Success: "You head back into the wild."},
		},
	}

	active := 0
	for _, q := range quests {
		if q.Status == entities.QuestStatusActive {
			active++
		}
	}
	if active < maxActiveQuestsForBoard {
		board := entities.Choice{
			ID:          "find_quest",
			Text:        "Check the Job Board",
			Consequence: &entities.Consequence{Success: "You look for work.", Failure: "Nothing catches your eye."},
		}
		choices = append(choices[:1], append([]entities.Choice{board}, choices[1:]...)...)
	}

	return entities.Scene{
		ID:          o.idGen.Generate(),
		Title:       "Nearby Town",
		Description: "You arrive at a safe settlement. Merchants and guards go about their business.",
		Type:        entities.SceneRoleplay,
		Variant:     entities.VariantTown,
		Choices:     choices,
	}
}

// combatScene scales the encounter's enemy to the player's level and
// attaches the standard melee/magic/run choice set. Choice damage here is
// flavor; real combat is resolved by the combat orchestrator.
func (o *orchestrator) combatScene(location string, enc rulebook.CombatEncounter, level int32) (entities.Scene, error) {
	enemy := o.engine.ScaleEnemy(entities.EnemySnapshot{
		Name: enc.Enemy,
		HP:   enc.HP,
		AC:   enc.AC,
	}, level)

	meleeDmg, err := o.flavorDamage(6, level/2)
	if err != nil {
		return entities.Scene{}, err
	}
	magicDmg, err := o.flavorDamage(6, level/2)
	if err != nil {
		return entities.Scene{}, err
	}
	runDmg, err := o.flavorDamage(4, 0)
	if err != nil {
		return entities.Scene{}, err
	}

	checkDC := 12 + (level-1)/2

	scene := entities.Scene{
		ID:          o.idGen.Generate(),
		Title:       location,
		Description: fmt.Sprintf("You arrive at %s. %s", location, enc.Description),
		Type:        entities.SceneCombat,
		Variant:     entities.VariantGeneric,
		Enemy:       &enemy,
		Choices: []entities.Choice{
			{
				ID:    "melee",
				Text:  "Attack with your weapon!",
				Check: &entities.CheckRequirement{Skill: entities.SkillAthletics, DC: checkDC},
				Consequence: &entities.Consequence{
					Success: fmt.Sprintf("You strike the %s down!", enemy.Name),
					Failure: fmt.Sprintf("The %s counters and hits you!", enemy.Name),
					Damage:  meleeDmg,
				},
			},
			{
				ID:    "magic",
				Text:  "Cast a spell!",
				Check: &entities.CheckRequirement{Skill: entities.SkillArcana, DC: checkDC + 1},
				Consequence: &entities.Consequence{
					Success: fmt.Sprintf("Your magic blast incinerates the %s!", enemy.Name),
					Failure: fmt.Sprintf("The spell fizzles. The %s attacks!", enemy.Name),
					Damage:  magicDmg,
				},
			},
			{
				ID:    "run",
				Text:  "Try to flee!",
				Check: &entities.CheckRequirement{Skill: entities.SkillAcrobatics, DC: 15},
				Consequence: &entities.Consequence{
					Success: "You escape into the shadows.",
					Failure: "You are cornered!",
					Damage:  runDmg,
				},
			},
		},
	}

	slog.Info("Combat scene generated",
		"scene_id", scene.ID,
		"enemy", enemy.Name,
		"enemy_hp", enemy.HP,
		"enemy_ac", enemy.AC,
	)
	return scene, nil
}

func (o *orchestrator) nonCombatScene(location string, enc rulebook.NonCombatEncounter) (entities.Scene, error) {
	choices, err := o.variantChoices(enc.Variant)
	if err != nil {
		return entities.Scene{}, err
	}

	return entities.Scene{
		ID:          o.idGen.Generate(),
		Title:       location,
		Description: fmt.Sprintf("You arrive at %s. %s", location, enc.Description),
		Type:        enc.Type,
		Variant:     enc.Variant,
		Choices:     choices,
	}, nil
}

// variantChoices is the hand-authored choice set per encounter variant.
func (o *orchestrator) variantChoices(variant entities.EncounterVariant) ([]entities.Choice, error) {
	switch variant {
	case entities.VariantShrine:
		return []entities.Choice{
			{
				ID:    "pray",
				Text:  "Offer a prayer to the ancient gods.",
				Check: &entities.CheckRequirement{Skill: entities.SkillReligion, DC: 12},
				Consequence: &entities.Consequence{
					Success:  "The shrine glows brightly. You feel blessed!",
					Failure:  "The shrine remains silent.",
					RewardGP: 10,
				},
			},
			{
				ID:    "arcana",
				Text:  "Study the magical runes.",
				Check: &entities.CheckRequirement{Skill: entities.SkillArcana, DC: 14},
				Consequence: &entities.Consequence{
					Success:  "You decipher a secret of power!",
					Failure:  "The runes are too complex.",
					RewardGP: 20,
				},
			},
		}, nil
	case entities.VariantBard:
		return []entities.Choice{
			{
				ID:          "listen",
				Text:        "Listen to their tale.",
				Consequence: &entities.Consequence{Success: "The tale inspires you! You feel refreshed."},
			},
			{
				ID:    "perform",
				Text:  "Join in with a song!",
				Check: &entities.CheckRequirement{Skill: entities.SkillPerformance, DC: 12},
				Consequence: &entities.Consequence{
					Success:  "The bard is impressed and shares a share of their tips!",
					Failure:  "You play out of tune, embarrassing yourself.",
					RewardGP: 10,
				},
			},
		}, nil
	case entities.VariantRiddle:
		dmg, err := o.flavorDamage(4, 0)
		if err != nil {
			return nil, err
		}
		return []entities.Choice{
			{
				ID:    "solve",
				Text:  "Solve the sphinx's riddle.",
				Check: &entities.CheckRequirement{Skill: entities.SkillIntelligence, DC: 15},
				Consequence: &entities.Consequence{
					Success:  "The statue grants you passage and a treasure revealed!",
					Failure:  "The statue's eyes flare red. You take psychic damage!",
					Damage:   dmg,
					RewardGP: 50,
				},
			},
			{
				ID:          "leave",
				Text:        "Walk away slowly.",
				Consequence: &entities.Consequence{Success: "You back away safely."},
			},
		}, nil
	case entities.VariantWildMagic:
		controlDmg, err := o.flavorDamage(6, 0)
		if err != nil {
			return nil, err
		}
		absorbDmg, err := o.flavorDamage(4, 0)
		if err != nil {
			return nil, err
		}
		return []entities.Choice{
			{
				ID:    "control",
				Text:  "Attempt to stabilize the magic.",
				Check: &entities.CheckRequirement{Skill: entities.SkillArcana, DC: 16},
				Consequence: &entities.Consequence{
					Success:  "You condense the magic into a gemstone!",
					Failure:  "The magic explodes in your face!",
					Damage:   controlDmg,
					RewardGP: 100,
				},
			},
			{
				ID:    "absorb",
				Text:  "Try to absorb the energy.",
				Check: &entities.CheckRequirement{Skill: entities.SkillConstitution, DC: 14},
				Consequence: &entities.Consequence{
					Success: "You feel invigorated by the raw power!",
					Failure: "It's too much! Your body is racked with pain.",
					Damage:  absorbDmg,
				},
			},
		}, nil
	case entities.VariantBanditToll:
		return []entities.Choice{
			{
				ID:   "pay",
				Text: "Pay the toll (10gp).",
				Consequence: &entities.Consequence{
					Success:  "You pay them and pass peacefully.",
					Failure:  "They demand more!",
					RewardGP: -10,
				},
			},
			{
				ID:    "intimidate",
				Text:  "Threaten them to step aside.",
				Check: &entities.CheckRequirement{Skill: entities.SkillIntimidation, DC: 13},
				Consequence: &entities.Consequence{
					// No damage line; failure starts the ambush instead.
					Success: "They back down, intimidated by your presence.",
					Failure: "They laugh and draw their weapons!",
				},
			},
		}, nil
	case entities.VariantLostPet:
		return []entities.Choice{
			{
				ID:    "track",
				Text:  "Track the missing animal.",
				Check: &entities.CheckRequirement{Skill: entities.SkillSurvival, DC: 11},
				Consequence: &entities.Consequence{
					Success:  "You find the scared creature and return it. The child gives you a shiny rock.",
					Failure:  "The tracks are lost in the mud.",
					RewardGP: 5,
				},
			},
			{
				ID:    "comfort",
				Text:  "Comfort the child.",
				Check: &entities.CheckRequirement{Skill: entities.SkillPersuasion, DC: 10},
				Consequence: &entities.Consequence{
					Success: "You calm the child down.",
					Failure: "The child keeps crying.",
				},
			},
		}, nil
	case entities.VariantTrap:
		investigateDmg, err := o.flavorDamage(4, 0)
		if err != nil {
			return nil, err
		}
		forceDmg, err := o.flavorDamage(4, 0)
		if err != nil {
			return nil, err
		}
		return []entities.Choice{
			{
				ID:    "investigate",
				Text:  "Search for a way to disarm the trap.",
				Check: &entities.CheckRequirement{Skill: entities.SkillInvestigation, DC: 12},
				Consequence: &entities.Consequence{
					Success:  "You carefully disarm the trap and find some coins hidden inside.",
					Failure:  "You trigger the trap!",
					Damage:   investigateDmg,
					RewardGP: 5,
				},
			},
			{
				ID:    "athletics",
				Text:  "Force your way through!",
				Check: &entities.CheckRequirement{Skill: entities.SkillAthletics, DC: 14},
				Consequence: &entities.Consequence{
					Success: "You smash through the obstacle.",
					Failure: "The door holds firm and you hurt your shoulder.",
					Damage:  forceDmg,
				},
			},
		}, nil
	case entities.VariantTrader:
		return []entities.Choice{
			{
				ID:    "diplomacy",
				Text:  "Haggle for a better deal.",
				Check: &entities.CheckRequirement{Skill: entities.SkillPersuasion, DC: 12},
				Consequence: &entities.Consequence{
					Success:  "The merchant gives you a discount - you gain 15gp worth of goods!",
					Failure:  "The merchant scoffs at your offer. \"Come back when you have real coin.\"",
					RewardGP: 15,
				},
			},
			{
				ID:    "investigate",
				Text:  "Examine the merchant's wares closely.",
				Check: &entities.CheckRequirement{Skill: entities.SkillInvestigation, DC: 10},
				Consequence: &entities.Consequence{
					Success:  "You spot a valuable item hidden among the junk!",
					Failure:  "Nothing catches your eye.",
					RewardGP: 10,
				},
			},
		}, nil
	case entities.VariantNPC:
		return []entities.Choice{
			{
				ID:    "diplomacy",
				Text:  "Offer to help them.",
				Check: &entities.CheckRequirement{Skill: entities.SkillPersuasion, DC: 8},
				Consequence: &entities.Consequence{
					Success:  "They gratefully reward you with some coins.",
					Failure:  "They eye you suspiciously and move away.",
					RewardGP: 10,
				},
			},
			{
				ID:    "medicine",
				Text:  "Tend to their wounds.",
				Check: &entities.CheckRequirement{Skill: entities.SkillMedicine, DC: 10},
				Consequence: &entities.Consequence{
					Success:  "You bandage their wounds. They thank you with a small gift.",
					Failure:  "Your efforts don't help much, but they appreciate the attempt.",
					RewardGP: 5,
				},
			},
		}, nil
	default:
		return []entities.Choice{
			{
				ID:    "investigate",
				Text:  "Look around carefully.",
				Check: &entities.CheckRequirement{Skill: entities.SkillInvestigation, DC: 12},
				Consequence: &entities.Consequence{
					Success:  "You find a hidden stash of gold!",
					Failure:  "You find nothing of interest.",
					RewardGP: 10,
				},
			},
			{
				ID:    "diplomacy",
				Text:  "Interact with your surroundings.",
				Check: &entities.CheckRequirement{Skill: entities.SkillPersuasion, DC: 10},
				Consequence: &entities.Consequence{
					Success:  "Your charisma earns you a small reward.",
					Failure:  "Your efforts go unnoticed.",
					RewardGP: 5,
				},
			},
		}, nil
	}
}

// ShopScene builds the general store: fixed buy choices, one sell choice per
// inventory item with a positive sell price, and a leave choice. Sell choice
// IDs carry the inventory index.
func (o *orchestrator) ShopScene(input *ShopSceneInput) (*ShopSceneOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	choices := []entities.Choice{
		{
			ID:          "buy_potion",
			Text:        "Buy Potion of Healing (50gp)",
			Consequence: &entities.Consequence{Success: "You bought a potion.", Failure: "Not enough gold!"},
		},
		{
			ID:          "buy_sword",
			Text:        "Buy Longsword (15gp)",
			Consequence: &entities.Consequence{Success: "You bought a sword.", Failure: "Not enough gold!"},
		},
	}

	for i, item := range input.Inventory {
		price := o.engine.SellPriceGP(&item)
		if price <= 0 {
			continue
		}
		choices = append(choices, entities.Choice{
			ID:   fmt.Sprintf("sell_item_%d", i),
			Text: fmt.Sprintf("Sell %s (%dgp)", item.Name, price),
			Consequence: &entities.Consequence{
				Success: fmt.Sprintf("Sold %s for %dgp.", item.Name, price),
			},
		})
	}

	choices = append(choices, entities.Choice{
		ID:          "leave_shop",
		Text:        "Leave Shop",
		Consequence: &entities.Consequence{Success: "You step back outside."},
	})

	return &ShopSceneOutput{Scene: entities.Scene{
		ID:          "shop_interior",
		Title:       "General Store",
		Description: "Shelves are lined with basic supplies and weapons. The shopkeeper watches you expectantly.",
		Type:        entities.SceneRoleplay,
		Variant:     entities.VariantShop,
		Choices:     choices,
	}}, nil
}

// AmbushScene builds the forced bandit combat after a failed toll
// intimidation. HP scales as 11 + 5 per level.
func (o *orchestrator) AmbushScene(input *AmbushSceneInput) (*AmbushSceneOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	level := input.Level
	if level < 1 {
		level = 1
	}

	return &AmbushSceneOutput{Scene: entities.Scene{
		ID:          o.idGen.Generate(),
		Title:       "Bandit Ambush",
		Description: "The bandits surround you, weapons drawn.",
		Type:        entities.SceneCombat,
		Variant:     entities.VariantAmbush,
		Enemy: &entities.EnemySnapshot{
			Name: "Bandit",
			HP:   11 + 5*level,
			AC:   12,
		},
		Choices: []entities.Choice{
			{ID: "melee", Text: "Attack!"},
			{ID: "magic", Text: "Cast Spell!"},
			{ID: "run", Text: "Flee!"},
		},
	}}, nil
}

// percent rolls a d100.
func (o *orchestrator) percent() (int32, error) {
	n, err := o.roller.Roll(100)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll d100")
	}
	return int32(n), nil
}

// pick returns a uniform index in [0, n).
func (o *orchestrator) pick(n int) (int, error) {
	roll, err := o.roller.Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to pick from table")
	}
	return roll - 1, nil
}

// flavorDamage rolls the narrative damage attached to a choice consequence.
func (o *orchestrator) flavorDamage(die int, bonus int32) (int32, error) {
	roll, err := o.roller.Roll(die)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll damage")
	}
	return int32(roll) + bonus, nil
}

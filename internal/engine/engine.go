package engine

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/errors"
	"github.com/torchlit/adventure-api/internal/rulebook"
)

// Config holds the dependencies for the rules engine.
type Config struct {
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

type engine struct {
	roller dice.Roller
}

// New creates a rules engine with the provided dependencies.
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &engine{
		roller: cfg.Roller,
	}, nil
}

// RollDie rolls a single die of the given size.
func (e *engine) RollDie(size int) (int32, error) {
	if size < 1 {
		return 0, errors.InvalidArgumentf("invalid die size: %d", size)
	}
	n, err := e.roller.Roll(size)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll d%d", size)
	}
	return int32(n), nil
}

// AbilityModifier computes floor((score - 10) / 2).
func (e *engine) AbilityModifier(score int32) int32 {
	// Integer division truncates toward zero, so odd scores below 10 need
	// the extra step down to floor.
	modifier := (score - 10) / 2
	if score < 10 && (score-10)%2 != 0 {
		modifier--
	}
	return modifier
}

// ProficiencyBonus computes 2 + floor((level - 1) / 4).
func (e *engine) ProficiencyBonus(level int32) int32 {
	if level < 1 {
		return 2
	}
	return 2 + ((level - 1) / 4)
}

// PerformCheck resolves a skill check: d20 + ability modifier + proficiency
// bonus (only when the character is trained in the skill) against the DC.
// There is no natural-20 rule on checks; only combat attacks have one.
func (e *engine) PerformCheck(input *PerformCheckInput) (*PerformCheckOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	ability := rulebook.SkillAbility(input.Skill)
	modifier := e.AbilityModifier(input.Character.Stats.Score(ability))

	var bonus int32
	if input.Character.HasSkill(input.Skill) {
		bonus = e.ProficiencyBonus(input.Character.Level)
	}

	roll, err := e.RollDie(20)
	if err != nil {
		return nil, err
	}
	total := roll + modifier + bonus

	return &PerformCheckOutput{
		Success:  total >= input.DC,
		Roll:     roll,
		Total:    total,
		Modifier: modifier,
		Bonus:    bonus,
	}, nil
}

// CheckLevelUp advances the character one level if their XP has reached the
// next threshold. Every 4th level grants +2 to the current highest ability.
// HP gain is the average hit-die roll plus the Constitution modifier,
// minimum 1, and leveling always heals to the new maximum. Only one level is
// processed per call.
func (e *engine) CheckLevelUp(character *entities.Character) (*LevelUpOutput, error) {
	if character == nil || character.Class == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	nextLevel := character.Level + 1
	threshold, ok := rulebook.XPThreshold(nextLevel)
	if !ok || character.XP < threshold {
		return &LevelUpOutput{LeveledUp: false}, nil
	}

	var boosted entities.Ability
	if nextLevel%4 == 0 {
		boosted = character.Stats.Highest()
		character.Stats.Add(boosted, 2)
	}

	conMod := e.AbilityModifier(character.Stats.Constitution)
	hpGain := character.Class.HitDie/2 + 1 + conMod
	if hpGain < 1 {
		hpGain = 1
	}

	character.Level = nextLevel
	character.MaxXP = rulebook.XPCap(nextLevel)
	character.HP.Max += hpGain
	character.HP.Current = character.HP.Max
	character.HP.HitDiceMax = nextLevel
	character.HP.HitDiceCurrent = nextLevel

	return &LevelUpOutput{
		LeveledUp:      true,
		NewLevel:       nextLevel,
		HPGain:         hpGain,
		BoostedAbility: boosted,
	}, nil
}

// ScaleEnemy scales a base enemy to the player's level. Level 1 is the
// identity. HP grows 15% per level above 1, floored; AC gains 1 per 4
// levels above 1, capped at 18.
func (e *engine) ScaleEnemy(enemy entities.EnemySnapshot, playerLevel int32) entities.EnemySnapshot {
	if playerLevel <= 1 {
		return enemy
	}

	factor := playerLevel - 1
	scaled := enemy
	scaled.HP = enemy.HP * (100 + 15*factor) / 100
	scaled.AC = enemy.AC + factor/4
	if scaled.AC > 18 {
		scaled.AC = 18
	}
	return scaled
}

// GenerateLoot rolls a loot bundle for a challenge rating: 1d(20*cr)+4 gold
// and a 10% per CR chance of one item drawn uniformly from the catalog.
func (e *engine) GenerateLoot(input *GenerateLootInput) (*GenerateLootOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	cr := input.CR
	if cr < 1 {
		cr = 1
	}

	gpRoll, err := e.RollDie(int(20 * cr))
	if err != nil {
		return nil, err
	}
	out := &GenerateLootOutput{GP: gpRoll + 4}

	dropRoll, err := e.RollDie(100)
	if err != nil {
		return nil, err
	}
	if dropRoll <= 10*cr {
		ids := rulebook.ItemIDs()
		pick, err := e.RollDie(len(ids))
		if err != nil {
			return nil, err
		}
		if item, ok := rulebook.ItemByID(ids[pick-1]); ok {
			out.Items = append(out.Items, item)
		}
	}

	return out, nil
}

// SellPriceGP is what the shop pays for an item: half its base value at the
// 100 cp/gp rate, floored. Cheap items sell for 0 and are not listed.
func (e *engine) SellPriceGP(item *entities.Item) int32 {
	if item == nil {
		return 0
	}
	return item.ValueCP / 200
}

// ShortRest spends one hit die to heal 1d(hitDie) + Con modifier, minimum 0.
// A character with no hit dice left or already at full HP rests without
// effect.
func (e *engine) ShortRest(character *entities.Character) (*RestOutput, error) {
	if character == nil || character.Class == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	if character.HP.HitDiceCurrent <= 0 {
		return &RestOutput{
			Message: "You have no Hit Dice remaining to spend on a Short Rest.",
		}, nil
	}
	if character.HP.Current >= character.HP.Max {
		return &RestOutput{
			Message: "You are already at full health.",
		}, nil
	}

	hitDie := character.Class.HitDie
	conMod := e.AbilityModifier(character.Stats.Constitution)

	roll, err := e.RollDie(int(hitDie))
	if err != nil {
		return nil, err
	}
	healing := roll + conMod
	if healing < 0 {
		healing = 0
	}

	before := character.HP.Current
	character.Heal(healing)
	character.HP.HitDiceCurrent--

	return &RestOutput{
		Healed:       character.HP.Current - before,
		HitDiceSpent: 1,
		Message:      fmt.Sprintf("You spent a Hit Die (d%d). Rolled %d + %d (Con) = Healed %d HP.", hitDie, roll, conMod, healing),
	}, nil
}

// LongRest restores HP to maximum and regains half the maximum hit dice,
// minimum 1, capped at the maximum. The scenes-since-rest gate lives in the
// adventure orchestrator, not here.
func (e *engine) LongRest(character *entities.Character) *RestOutput {
	healed := character.HP.Max - character.HP.Current

	regained := character.HP.HitDiceMax / 2
	if regained < 1 {
		regained = 1
	}
	character.HP.Current = character.HP.Max
	character.HP.HitDiceCurrent += regained
	if character.HP.HitDiceCurrent > character.HP.HitDiceMax {
		character.HP.HitDiceCurrent = character.HP.HitDiceMax
	}

	return &RestOutput{
		Healed:          healed,
		HitDiceRegained: regained,
		Message:         fmt.Sprintf("Long Rest complete. You regained %d HP and %d Hit Dice.", healed, regained),
	}
}

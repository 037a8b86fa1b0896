// Package engine implements the dice-driven rules core: skill checks,
// leveling, enemy scaling, loot, and rest resolution. All randomness flows
// through an injected dice.Roller so tests can script exact rolls.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/torchlit/adventure-api/internal/engine Engine

import (
	"github.com/torchlit/adventure-api/internal/entities"
)

// Engine provides game mechanics and rules calculations.
type Engine interface {
	// Check resolution
	PerformCheck(input *PerformCheckInput) (*PerformCheckOutput, error)

	// Leveling
	CheckLevelUp(character *entities.Character) (*LevelUpOutput, error)
	ScaleEnemy(enemy entities.EnemySnapshot, playerLevel int32) entities.EnemySnapshot

	// Loot and economy
	GenerateLoot(input *GenerateLootInput) (*GenerateLootOutput, error)
	SellPriceGP(item *entities.Item) int32

	// Rest
	ShortRest(character *entities.Character) (*RestOutput, error)
	LongRest(character *entities.Character) *RestOutput

	// Utility methods
	RollDie(size int) (int32, error)
	AbilityModifier(score int32) int32
	ProficiencyBonus(level int32) int32
}

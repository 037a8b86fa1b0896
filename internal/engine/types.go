package engine

import "github.com/torchlit/adventure-api/internal/entities"

// PerformCheckInput asks for a skill check against a difficulty class.
type PerformCheckInput struct {
	Character *entities.Character
	Skill     entities.Skill
	DC        int32
}

// PerformCheckOutput is the full breakdown of a resolved check.
type PerformCheckOutput struct {
	Success  bool
	Roll     int32
	Total    int32
	Modifier int32
	Bonus    int32
}

// LevelUpOutput reports what a level-up check did. When LeveledUp is false
// the character was below the next threshold and is unchanged.
type LevelUpOutput struct {
	LeveledUp      bool
	NewLevel       int32
	HPGain         int32
	BoostedAbility entities.Ability
}

// GenerateLootInput asks for loot at a challenge rating. CR below 1 is
// treated as 1.
type GenerateLootInput struct {
	CR int32
}

// GenerateLootOutput is a rolled loot bundle.
type GenerateLootOutput struct {
	GP    int32
	Items []entities.Item
}

// RestOutput reports the effect of a rest.
type RestOutput struct {
	Healed          int32
	HitDiceSpent    int32
	HitDiceRegained int32
	Message         string
}

package entities

// SceneType categorizes generated scenes.
type SceneType string

// Scene types.
const (
	SceneExploration SceneType = "exploration"
	SceneCombat      SceneType = "combat"
	SceneRoleplay    SceneType = "roleplay"
)

// EncounterVariant is the explicit sub-type tag carried by every encounter
// template. Choice sets key off this tag; descriptions are flavor only.
type EncounterVariant string

// Encounter variants.
const (
	VariantShrine     EncounterVariant = "shrine"
	VariantBard       EncounterVariant = "bard"
	VariantRiddle     EncounterVariant = "riddle"
	VariantWildMagic  EncounterVariant = "wild_magic"
	VariantBanditToll EncounterVariant = "bandit_toll"
	VariantLostPet    EncounterVariant = "lost_pet"
	VariantTrader     EncounterVariant = "trader"
	VariantNPC        EncounterVariant = "npc"
	VariantTrap       EncounterVariant = "trap"
	VariantGeneric    EncounterVariant = "generic"
	VariantTown       EncounterVariant = "town"
	VariantShop       EncounterVariant = "shop"
	VariantAmbush     EncounterVariant = "ambush"
)

// CheckRequirement names the skill check a choice calls for.
type CheckRequirement struct {
	Skill Skill `json:"skill"`
	DC    int32 `json:"dc"`
}

// Consequence describes a choice's outcome. RewardGP is a signed gold delta;
// positive rewards are suppressed when the check fails, damage applies only
// on failure.
type Consequence struct {
	Success  string `json:"success"`
	Failure  string `json:"failure"`
	Damage   int32  `json:"damage,omitempty"`
	RewardGP int32  `json:"reward_gp,omitempty"`
}

// Choice is one selectable option in a scene.
type Choice struct {
	ID          string            `json:"id"`
	Text        string            `json:"text"`
	Check       *CheckRequirement `json:"check,omitempty"`
	Consequence *Consequence      `json:"consequence,omitempty"`
}

// EnemySnapshot is the scene's view of the enemy a combat scene spawns.
type EnemySnapshot struct {
	Name            string `json:"name"`
	HP              int32  `json:"hp"`
	AC              int32  `json:"ac"`
	InitiativeBonus int32  `json:"initiative_bonus,omitempty"`
}

// Scene is an ephemeral generated scene. Scenes are never mutated once
// created; they are replaced wholesale by the next generation.
type Scene struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        SceneType        `json:"type"`
	Variant     EncounterVariant `json:"variant"`
	Choices     []Choice         `json:"choices"`
	Enemy       *EnemySnapshot   `json:"enemy,omitempty"`
}

// FindChoice returns the choice with the given ID, if present.
func (s *Scene) FindChoice(choiceID string) (Choice, bool) {
	for _, c := range s.Choices {
		if c.ID == choiceID {
			return c, true
		}
	}
	return Choice{}, false
}

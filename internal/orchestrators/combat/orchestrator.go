// Package combat implements the turn-order combat state machine: initiative,
// attack resolution, potions, fleeing, and the enemy's reply each round.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/torchlit/adventure-api/internal/orchestrators/combat Service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/torchlit/adventure-api/internal/engine"
	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/errors"
	"github.com/torchlit/adventure-api/internal/orchestrators/quest"
)

// Service defines the interface for combat operations
type Service interface {
	// StartCombat rolls initiative and builds the turn order
	StartCombat(input *StartCombatInput) (*StartCombatOutput, error)

	// ExecuteAction resolves one player action and the enemy's reply
	ExecuteAction(input *ExecuteActionInput) (*ExecuteActionOutput, error)
}

// Config holds the dependencies for the combat orchestrator. All dice flow
// through the engine's injected roller.
type Config struct {
	Engine       engine.Engine
	QuestService quest.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.QuestService == nil {
		vb.RequiredField("QuestService")
	}

	return vb.Build()
}

type orchestrator struct {
	engine engine.Engine
	quests quest.Service
}

// NewOrchestrator creates a new combat orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		engine: cfg.Engine,
		quests: cfg.QuestService,
	}, nil
}

// StartCombat builds the two combatants, rolls initiative (d20 + Dex
// modifier for the player, d20 + initiative bonus for the enemy), and sorts
// the turn order descending. Ties keep the player first.
func (o *orchestrator) StartCombat(input *StartCombatInput) (*StartCombatOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if input.Scene == nil || input.Scene.Enemy == nil {
		return nil, errors.InvalidArgument("scene with an enemy is required")
	}

	character := input.Character
	snapshot := input.Scene.Enemy
	dexMod := o.engine.AbilityModifier(character.Stats.Dexterity)

	playerRoll, err := o.engine.RollDie(20)
	if err != nil {
		return nil, err
	}
	enemyRoll, err := o.engine.RollDie(20)
	if err != nil {
		return nil, err
	}
	playerInit := playerRoll + dexMod
	enemyInit := enemyRoll + snapshot.InitiativeBonus

	player := entities.Combatant{
		ID:         "player",
		Name:       character.Name,
		Type:       entities.CombatantPlayer,
		HP:         character.HP.Current,
		MaxHP:      character.HP.Max,
		AC:         10 + dexMod,
		Initiative: playerInit,
	}
	enemy := entities.Combatant{
		ID:         "enemy",
		Name:       snapshot.Name,
		Type:       entities.CombatantEnemy,
		HP:         snapshot.HP,
		MaxHP:      snapshot.HP,
		AC:         snapshot.AC,
		Initiative: enemyInit,
	}

	order := []entities.Combatant{player, enemy}
	if enemy.Initiative > player.Initiative {
		order = []entities.Combatant{enemy, player}
	}

	started := fmt.Sprintf("Combat Started! %s (Init %d) vs %s (Init %d)", player.Name, playerInit, enemy.Name, enemyInit)
	state := entities.CombatState{
		IsActive:  true,
		Phase:     entities.CombatActive,
		TurnOrder: order,
		Log:       []string{started},
	}

	slog.Info("Combat started",
		"player", player.Name,
		"enemy", enemy.Name,
		"player_initiative", playerInit,
		"enemy_initiative", enemyInit,
	)

	return &StartCombatOutput{
		State:    state,
		Messages: []Message{{Text: started, Severity: entities.LogInfo}},
	}, nil
}

// ExecuteAction resolves one round. The player acts first; unless their
// action ends combat, the turn passes to the enemy, whose attack resolves
// before the turn returns to the player. The character's HP is synced from
// the player combatant at the end of the round.
func (o *orchestrator) ExecuteAction(input *ExecuteActionInput) (*ExecuteActionOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if !input.State.IsActive {
		return nil, errors.FailedPrecondition("combat is not active")
	}
	if _, ok := input.State.Combatant(entities.CombatantPlayer); !ok {
		return nil, errors.FailedPrecondition("combat has no player combatant")
	}
	enemy, ok := input.State.Combatant(entities.CombatantEnemy)
	if !ok {
		return nil, errors.FailedPrecondition("combat has no enemy combatant")
	}

	character := input.Character
	state := input.State
	out := &ExecuteActionOutput{}

	switch input.Action {
	case ActionAttack, ActionSpell:
		ended, err := o.playerAttack(character, &state, enemy, input.Action, out)
		if err != nil {
			return nil, err
		}
		if ended {
			out.State = state
			return out, nil
		}
	case ActionPotion:
		if err := o.drinkPotion(character, &state, out); err != nil {
			return nil, err
		}
	case ActionFlee:
		ended, err := o.flee(character, &state, out)
		if err != nil {
			return nil, err
		}
		if ended {
			out.State = state
			return out, nil
		}
	default:
		return nil, errors.InvalidArgumentf("unknown combat action: %s", input.Action)
	}

	state = state.NextTurn()

	if err := o.enemyTurn(character, &state, enemy, out); err != nil {
		return nil, err
	}

	// Player combatant HP is the source of truth during the round.
	player, _ := state.Combatant(entities.CombatantPlayer)
	character.SetHP(player.HP)

	if player.HP <= 0 {
		o.say(out, &state, "You have been defeated...", entities.LogFailure)
		state = state.Ended(entities.CombatDefeat)
		out.State = state
		return out, nil
	}

	state = state.NextTurn()
	out.State = state
	return out, nil
}

// playerAttack resolves an attack or spell. Returns true when the enemy
// falls and combat ends in victory.
func (o *orchestrator) playerAttack(character *entities.Character, state *entities.CombatState, enemy entities.Combatant, action Action, out *ExecuteActionOutput) (bool, error) {
	var abilityMod int32
	if action == ActionAttack {
		abilityMod = o.engine.AbilityModifier(character.Stats.Strength)
	} else {
		abilityMod = o.engine.AbilityModifier(character.Stats.Intelligence)
	}
	attackMod := abilityMod + o.engine.ProficiencyBonus(character.Level)

	roll, err := o.engine.RollDie(20)
	if err != nil {
		return false, err
	}
	total := roll + attackMod

	// Natural 20 always hits, natural 1 always misses.
	hit := roll == 20 || (roll != 1 && total >= enemy.AC)
	if !hit {
		o.say(out, state, fmt.Sprintf("Your %s misses! (Rolled %d+%d=%d vs AC %d)", action, roll, attackMod, total, enemy.AC), entities.LogFailure)
		return false, nil
	}

	crit := roll == 20
	damageRoll, err := o.engine.RollDie(8)
	if err != nil {
		return false, err
	}
	damage := damageRoll + abilityMod
	if crit {
		damage = damageRoll * 2
	}

	prefix := ""
	if crit {
		prefix = "🎯 CRITICAL HIT! "
	}
	o.say(out, state, fmt.Sprintf("%sYou %s the %s! (Rolled %d+%d=%d vs AC %d) - %d damage!",
		prefix, action, enemy.Name, roll, attackMod, total, enemy.AC, damage), entities.LogSuccess)

	*state = state.WithCombatantHP(entities.CombatantEnemy, -damage)

	remaining, _ := state.Combatant(entities.CombatantEnemy)
	if remaining.HP > 0 {
		return false, nil
	}

	if err := o.victory(character, state, enemy, out); err != nil {
		return false, err
	}
	return true, nil
}

// victory pays out XP and loot, records the kill against active quests, and
// checks for a level-up.
func (o *orchestrator) victory(character *entities.Character, state *entities.CombatState, enemy entities.Combatant, out *ExecuteActionOutput) error {
	tier := enemy.MaxHP / 10
	if tier < 1 {
		tier = 1
	}
	xpReward := 50 * tier

	character.XP += xpReward

	loot, err := o.engine.GenerateLoot(&engine.GenerateLootInput{CR: tier})
	if err != nil {
		return err
	}
	character.AddGold(loot.GP)
	character.Inventory = append(character.Inventory, loot.Items...)

	o.say(out, state, fmt.Sprintf("Victory! You defeated the %s.", enemy.Name), entities.LogSuccess)
	o.say(out, state, fmt.Sprintf("You gained %d XP!", xpReward), entities.LogInfo)
	o.say(out, state, lootMessage(loot), entities.LogSuccess)

	questOut, err := o.quests.ApplyEvent(&quest.ApplyEventInput{
		Character: character,
		Event:     quest.Event{Type: entities.ObjectiveKill, Target: enemy.Name},
	})
	if err != nil {
		return err
	}
	out.QuestMessages = questOut.Messages
	for _, msg := range questOut.Messages {
		out.Messages = append(out.Messages, Message{Text: msg, Severity: entities.LogSuccess})
	}

	levelOut, err := o.engine.CheckLevelUp(character)
	if err != nil {
		return err
	}
	if levelOut.LeveledUp {
		out.LeveledUp = true
		o.say(out, state, fmt.Sprintf("🌟 LEVEL UP! You are now Level %d! Max HP increased to %d.",
			character.Level, character.HP.Max), entities.LogSuccess)
	}

	out.EnemyDefeated = true
	out.DefeatedEnemy = enemy.Name
	*state = state.Ended(entities.CombatVictory)

	slog.Info("Combat won",
		"enemy", enemy.Name,
		"xp_reward", xpReward,
		"loot_gp", loot.GP,
	)
	return nil
}

// drinkPotion consumes one healing potion if the character has one. Healing
// is 2d4+2, capped at max HP on both the combatant and the character.
func (o *orchestrator) drinkPotion(character *entities.Character, state *entities.CombatState, out *ExecuteActionOutput) error {
	idx := character.FindItem("potion_healing")
	if idx < 0 {
		o.say(out, state, "You fumble for a potion but find none!", entities.LogFailure)
		return nil
	}

	first, err := o.engine.RollDie(4)
	if err != nil {
		return err
	}
	second, err := o.engine.RollDie(4)
	if err != nil {
		return err
	}
	heal := first + second + 2

	character.RemoveItemAt(idx)
	*state = state.WithCombatantHP(entities.CombatantPlayer, heal)

	o.say(out, state, fmt.Sprintf("You drink a potion and heal for %d HP.", heal), entities.LogSuccess)
	return nil
}

// flee attempts a Stealth check at DC 12. Success ends combat; failure
// wastes the turn.
func (o *orchestrator) flee(character *entities.Character, state *entities.CombatState, out *ExecuteActionOutput) (bool, error) {
	check, err := o.engine.PerformCheck(&engine.PerformCheckInput{
		Character: character,
		Skill:     entities.SkillStealth,
		DC:        12,
	})
	if err != nil {
		return false, err
	}

	if check.Success {
		o.say(out, state, "You successfully managed to escape!", entities.LogSuccess)
		*state = state.Ended(entities.CombatFled)
		return true, nil
	}

	o.say(out, state, fmt.Sprintf("Failed to flee! (Rolled %d)", check.Total), entities.LogFailure)
	return false, nil
}

// enemyTurn resolves the enemy's attack against player AC = 10 + Dex
// modifier. Enemy damage is a flat d6, doubled on a crit, no modifier.
func (o *orchestrator) enemyTurn(character *entities.Character, state *entities.CombatState, enemy entities.Combatant, out *ExecuteActionOutput) error {
	playerAC := 10 + o.engine.AbilityModifier(character.Stats.Dexterity)

	bonus := enemy.MaxHP / 10
	if bonus < 2 {
		bonus = 2
	}

	roll, err := o.engine.RollDie(20)
	if err != nil {
		return err
	}
	total := roll + bonus

	hit := roll == 20 || (roll != 1 && total >= playerAC)
	if !hit {
		o.say(out, state, fmt.Sprintf("The %s swings and misses! (%d+%d=%d vs AC %d)", enemy.Name, roll, bonus, total, playerAC), entities.LogInfo)
		return nil
	}

	crit := roll == 20
	damageRoll, err := o.engine.RollDie(6)
	if err != nil {
		return err
	}
	damage := damageRoll
	if crit {
		damage = damageRoll * 2
	}

	prefix := ""
	if crit {
		prefix = "💥 CRITICAL! "
	}
	o.say(out, state, fmt.Sprintf("%sThe %s attacks! (%d+%d=%d vs AC %d) - %d damage!",
		prefix, enemy.Name, roll, bonus, total, playerAC, damage), entities.LogFailure)

	*state = state.WithCombatantHP(entities.CombatantPlayer, -damage)
	return nil
}

// say appends a line to both the combat transcript and the round's message
// list.
func (o *orchestrator) say(out *ExecuteActionOutput, state *entities.CombatState, text string, severity entities.LogSeverity) {
	*state = state.WithLogLine(text)
	out.Messages = append(out.Messages, Message{Text: text, Severity: severity})
}

func lootMessage(loot *engine.GenerateLootOutput) string {
	if len(loot.Items) == 0 {
		return fmt.Sprintf("Loot: %dgp", loot.GP)
	}
	names := make([]string, len(loot.Items))
	for i, item := range loot.Items {
		names[i] = item.Name
	}
	return fmt.Sprintf("Loot: %dgp and %s", loot.GP, strings.Join(names, ", "))
}

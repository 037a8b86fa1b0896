// Package adventure implements the top-level adventure loop: session
// lifecycle, choice resolution, shop and inn handling, pacing between scenes,
// and handing off to the combat orchestrator when a fight starts.
package adventure

//go:generate mockgen -destination=mock/mock_service.go -package=adventuremock github.com/torchlit/adventure-api/internal/orchestrators/adventure Service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/torchlit/adventure-api/internal/engine"
	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/errors"
	"github.com/torchlit/adventure-api/internal/orchestrators/character"
	"github.com/torchlit/adventure-api/internal/orchestrators/combat"
	"github.com/torchlit/adventure-api/internal/orchestrators/quest"
	"github.com/torchlit/adventure-api/internal/orchestrators/scene"
	"github.com/torchlit/adventure-api/internal/pkg/clock"
	"github.com/torchlit/adventure-api/internal/pkg/idgen"
	adventurerepo "github.com/torchlit/adventure-api/internal/repositories/adventure"
	"github.com/torchlit/adventure-api/internal/rulebook"
)

const (
	potionPrice = 50
	swordPrice  = 15

	// Long rests outside of inns unlock after this many scenes.
	longRestInterval = 10

	// New sessions start close to the camp threshold so the mechanic
	// surfaces early.
	initialRestCounter = 8

	sellChoicePrefix = "sell_item_"
)

// Event types published on the toolkit bus.
const (
	EventCombatStarted = "adventure.combat_started"
	EventEnemyDefeated = "adventure.enemy_defeated"
	EventQuestAccepted = "adventure.quest_accepted"
	EventGameOver      = "adventure.game_over"
)

// Service defines the interface for the adventure loop
type Service interface {
	// StartAdventure creates a character, opens a session, and generates
	// the first scene
	StartAdventure(ctx context.Context, input *StartAdventureInput) (*StartAdventureOutput, error)

	// GetSession loads a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// Choose resolves a scene choice: skill checks, shop and inn handling,
	// quest pickup, and the transition to the next scene
	Choose(ctx context.Context, input *ChooseInput) (*ChooseOutput, error)

	// CombatAction performs one combat round through the combat
	// orchestrator
	CombatAction(ctx context.Context, input *CombatActionInput) (*CombatActionOutput, error)

	// Rest performs a camp rest outside of town
	Rest(ctx context.Context, input *RestInput) (*RestOutput, error)
}

// Config holds the dependencies for the adventure orchestrator
type Config struct {
	Repository       adventurerepo.Repository
	CharacterService character.Service
	SceneService     scene.Service
	CombatService    combat.Service
	QuestService     quest.Service
	Engine           engine.Engine
	EventBus         events.EventBus
	IDGenerator      idgen.Generator
	Clock            clock.Clock

	// SceneDelay is the pause between resolving a choice and showing the
	// next scene. Zero or negative applies transitions synchronously.
	SceneDelay time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	if c.SceneService == nil {
		vb.RequiredField("SceneService")
	}
	if c.CombatService == nil {
		vb.RequiredField("CombatService")
	}
	if c.QuestService == nil {
		vb.RequiredField("QuestService")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	// mu serializes all session mutation, including delayed transitions.
	mu sync.Mutex

	repo       adventurerepo.Repository
	characters character.Service
	scenes     scene.Service
	combats    combat.Service
	quests     quest.Service
	engine     engine.Engine
	eventBus   events.EventBus
	idGen      idgen.Generator
	clock      clock.Clock
	sceneDelay time.Duration
}

// NewOrchestrator creates a new adventure orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:       cfg.Repository,
		characters: cfg.CharacterService,
		scenes:     cfg.SceneService,
		combats:    cfg.CombatService,
		quests:     cfg.QuestService,
		engine:     cfg.Engine,
		eventBus:   cfg.EventBus,
		idGen:      cfg.IDGenerator,
		clock:      cfg.Clock,
		sceneDelay: cfg.SceneDelay,
	}, nil
}

// simpleEntity implements core.Entity for published events.
type simpleEntity struct {
	id         string
	entityType string
}

func (e *simpleEntity) GetID() string {
	return e.id
}

func (e *simpleEntity) GetType() string {
	return e.entityType
}

var _ core.Entity = (*simpleEntity)(nil)

func (o *orchestrator) publish(ctx context.Context, eventType string, session *entities.Session, fields map[string]any) {
	source := &simpleEntity{id: session.ID, entityType: "session"}
	event := events.NewGameEvent(eventType, source, nil)
	for k, v := range fields {
		event.Context().Set(k, v)
	}
	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish event", "event_type", eventType, "error", err)
	}
}

// StartAdventure creates the character, opens the session, and generates the
// opening scene.
func (o *orchestrator) StartAdventure(ctx context.Context, input *StartAdventureInput) (*StartAdventureOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	charOut, err := o.characters.CreateCharacter(&character.CreateCharacterInput{
		Name:      input.Name,
		RaceName:  input.RaceName,
		ClassName: input.ClassName,
	})
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	session := &entities.Session{
		ID:                  o.idGen.Generate(),
		Character:           charOut.Character,
		ScenesSinceLongRest: initialRestCounter,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	c := session.Character
	o.log(session, fmt.Sprintf("Welcome, %s the %s %s. Your adventure begins.", c.Name, c.Race.Name, c.Class.Name), entities.LogNarrative)

	if err := o.enterNextScene(ctx, session); err != nil {
		return nil, err
	}

	if err := o.save(ctx, session); err != nil {
		return nil, err
	}

	slog.Info("Adventure started",
		"session_id", session.ID,
		"character", c.Name,
		"class", c.Class.Name,
	)
	return &StartAdventureOutput{Session: session}, nil
}

// GetSession loads a session.
func (o *orchestrator) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := o.repo.Get(ctx, adventurerepo.GetInput{ID: input.SessionID})
	if err != nil {
		return nil, err
	}
	return &GetSessionOutput{Session: out.Session}, nil
}

// Choose resolves one scene choice.
func (o *orchestrator) Choose(ctx context.Context, input *ChooseInput) (*ChooseOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if input.ChoiceID == "" {
		return nil, errors.InvalidArgument("choice ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	session, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session.GameOver {
		return nil, errors.FailedPrecondition("the adventure is over")
	}
	if session.Combat != nil && session.Combat.IsActive {
		return nil, errors.FailedPrecondition("cannot choose while combat is active")
	}
	if session.Scene == nil {
		return nil, errors.FailedPrecondition("no active scene")
	}

	choice, found := session.Scene.FindChoice(input.ChoiceID)
	if !found {
		return nil, errors.InvalidArgumentf("unknown choice: %s", input.ChoiceID)
	}

	// A fresh intent strands any pending delayed transition.
	session.TransitionToken++

	if err := o.resolveChoice(ctx, session, choice); err != nil {
		return nil, err
	}

	if err := o.save(ctx, session); err != nil {
		return nil, err
	}
	return &ChooseOutput{Session: session}, nil
}

// resolveChoice routes the choice by intent. Town and shop choices are keyed
// by ID; everything else goes through generic check resolution.
func (o *orchestrator) resolveChoice(ctx context.Context, session *entities.Session, choice entities.Choice) error {
	sc := session.Scene

	if sc.Variant == entities.VariantShop {
		return o.resolveShopChoice(ctx, session, choice)
	}

	if sc.Variant == entities.VariantTown {
		switch choice.ID {
		case "shop":
			o.log(session, "> "+choice.Text, entities.LogNarrative)
			o.log(session, "You enter the shop.", entities.LogInfo)
			return o.enterShop(session)
		case "rest":
			o.log(session, "> "+choice.Text, entities.LogNarrative)
			rest := o.engine.LongRest(session.Character)
			session.ScenesSinceLongRest = 0
			o.log(session, "You sleep soundly in a warm bed.", entities.LogSuccess)
			o.log(session, rest.Message, entities.LogInfo)
			return o.scheduleTransition(session)
		case "find_quest":
			return o.acceptQuest(ctx, session, choice)
		case "leave":
			o.log(session, "> "+choice.Text, entities.LogNarrative)
			return o.scheduleTransition(session)
		}
	}

	return o.resolveGenericChoice(ctx, session, choice)
}

// acceptQuest generates a quest scaled to the character's level and attaches
// it.
func (o *orchestrator) acceptQuest(ctx context.Context, session *entities.Session, choice entities.Choice) error {
	c := session.Character

	questOut, err := o.quests.GenerateQuest(&quest.GenerateQuestInput{Level: c.Level})
	if err != nil {
		return err
	}
	q := questOut.Quest
	c.Quests = append(c.Quests, q)

	o.log(session, "> "+choice.Text, entities.LogNarrative)
	o.log(session, fmt.Sprintf("📜 New Quest Accepted: %s", q.Title), entities.LogSuccess)
	o.log(session, q.Description, entities.LogNarrative)
	for _, obj := range q.Objectives {
		o.log(session, fmt.Sprintf("Objective: Defeat %d %s(s)", obj.Count, obj.Target), entities.LogInfo)
	}

	o.publish(ctx, EventQuestAccepted, session, map[string]any{
		"quest_id":    q.ID,
		"quest_title": q.Title,
	})

	// The job board stays available, so regenerate the town scene choices
	// by staying put; the player leaves town explicitly.
	return nil
}

// enterShop swaps the active scene for the general store.
func (o *orchestrator) enterShop(session *entities.Session) error {
	shopOut, err := o.scenes.ShopScene(&scene.ShopSceneInput{Inventory: session.Character.Inventory})
	if err != nil {
		return err
	}
	session.Scene = &shopOut.Scene
	return nil
}

// resolveShopChoice handles buying, selling, and leaving the store.
func (o *orchestrator) resolveShopChoice(ctx context.Context, session *entities.Session, choice entities.Choice) error {
	c := session.Character

	switch {
	case choice.ID == "buy_potion":
		if !c.SpendGold(potionPrice) {
			o.log(session, "Not enough gold!", entities.LogFailure)
			return nil
		}
		if item, ok := rulebook.ItemByID("potion_healing"); ok {
			c.Inventory = append(c.Inventory, item)
		}
		o.log(session, "Bought Potion of Healing.", entities.LogSuccess)
		return o.enterShop(session)

	case choice.ID == "buy_sword":
		if !c.SpendGold(swordPrice) {
			o.log(session, "Not enough gold!", entities.LogFailure)
			return nil
		}
		if item, ok := rulebook.ItemByID("longsword"); ok {
			c.Inventory = append(c.Inventory, item)
		}
		o.log(session, "Bought Longsword.", entities.LogSuccess)
		return o.enterShop(session)

	case strings.HasPrefix(choice.ID, sellChoicePrefix):
		idx, err := strconv.Atoi(strings.TrimPrefix(choice.ID, sellChoicePrefix))
		if err != nil {
			return errors.InvalidArgumentf("malformed sell choice: %s", choice.ID)
		}
		item, ok := c.RemoveItemAt(idx)
		if !ok {
			return errors.InvalidArgumentf("no item at index %d", idx)
		}
		price := o.engine.SellPriceGP(&item)
		c.AddGold(price)
		o.log(session, fmt.Sprintf("Sold %s for %dgp.", item.Name, price), entities.LogSuccess)
		return o.enterShop(session)

	case choice.ID == "leave_shop":
		o.log(session, "You leave the shop.", entities.LogInfo)
		return o.scheduleTransition(session)

	default:
		return errors.InvalidArgumentf("unknown shop choice: %s", choice.ID)
	}
}

// resolveGenericChoice runs the choice's skill check, applies rewards and
// damage, and moves on. Positive rewards are suppressed on failure; damage
// lands only on failure.
func (o *orchestrator) resolveGenericChoice(ctx context.Context, session *entities.Session, choice entities.Choice) error {
	c := session.Character
	o.log(session, "> "+choice.Text, entities.LogNarrative)

	success := true
	if choice.Check != nil {
		check, err := o.engine.PerformCheck(&engine.PerformCheckInput{
			Character: c,
			Skill:     choice.Check.Skill,
			DC:        choice.Check.DC,
		})
		if err != nil {
			return err
		}
		success = check.Success

		if check.Bonus != 0 {
			o.log(session, fmt.Sprintf("[%s Check] Rolled %d + %d (mod) + %d (prof) = %d (DC %d)",
				choice.Check.Skill, check.Roll, check.Modifier, check.Bonus, check.Total, choice.Check.DC), entities.LogInfo)
		} else {
			o.log(session, fmt.Sprintf("[%s Check] Rolled %d + %d (mod) = %d (DC %d)",
				choice.Check.Skill, check.Roll, check.Modifier, check.Total, choice.Check.DC), entities.LogInfo)
		}
	}

	if choice.Consequence == nil {
		return o.scheduleTransition(session)
	}
	cons := choice.Consequence

	if success {
		if cons.Success != "" {
			o.log(session, cons.Success, entities.LogSuccess)
		}
		switch {
		case cons.RewardGP > 0:
			c.AddGold(cons.RewardGP)
			o.log(session, fmt.Sprintf("You gained %dgp!", cons.RewardGP), entities.LogSuccess)
		case cons.RewardGP < 0:
			if c.SpendGold(-cons.RewardGP) {
				o.log(session, fmt.Sprintf("You lost %dgp.", -cons.RewardGP), entities.LogInfo)
			} else {
				o.log(session, "Not enough gold!", entities.LogFailure)
			}
		}
		return o.scheduleTransition(session)
	}

	if cons.Failure != "" {
		o.log(session, cons.Failure, entities.LogFailure)
	}

	// A failed intimidation at the toll escalates into a fight instead of
	// dealing consequence damage.
	if session.Scene.Variant == entities.VariantBanditToll && choice.ID == "intimidate" {
		return o.startBanditAmbush(ctx, session)
	}

	// Losing gold happens even on a failed check; the toll gets paid one
	// way or another.
	if cons.RewardGP < 0 {
		if c.SpendGold(-cons.RewardGP) {
			o.log(session, fmt.Sprintf("You lost %dgp.", -cons.RewardGP), entities.LogInfo)
		} else {
			o.log(session, "Not enough gold!", entities.LogFailure)
		}
	}

	if cons.Damage > 0 {
		c.ApplyDamage(cons.Damage)
		o.log(session, fmt.Sprintf("You took %d damage!", cons.Damage), entities.LogFailure)
		if c.IsDefeated() {
			return o.gameOver(ctx, session)
		}
	}

	return o.scheduleTransition(session)
}

// startBanditAmbush swaps in the forced combat scene and starts the fight
// immediately.
func (o *orchestrator) startBanditAmbush(ctx context.Context, session *entities.Session) error {
	o.log(session, "The bandits draw their weapons! 'You made a mistake, traveler!'", entities.LogFailure)
	o.log(session, "A fight breaks out!", entities.LogInfo)

	ambush, err := o.scenes.AmbushScene(&scene.AmbushSceneInput{Level: session.Character.Level})
	if err != nil {
		return err
	}
	session.Scene = &ambush.Scene

	return o.autoStartCombat(ctx, session)
}

// CombatAction performs one combat round.
func (o *orchestrator) CombatAction(ctx context.Context, input *CombatActionInput) (*CombatActionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	session, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session.GameOver {
		return nil, errors.FailedPrecondition("the adventure is over")
	}
	if session.Combat == nil || !session.Combat.IsActive {
		return nil, errors.FailedPrecondition("no active combat")
	}

	session.TransitionToken++

	out, err := o.combats.ExecuteAction(&combat.ExecuteActionInput{
		Character: session.Character,
		State:     *session.Combat,
		Action:    input.Action,
	})
	if err != nil {
		return nil, err
	}

	state := out.State
	session.Combat = &state
	for _, msg := range out.Messages {
		o.log(session, msg.Text, msg.Severity)
	}

	switch state.Phase {
	case entities.CombatVictory:
		o.publish(ctx, EventEnemyDefeated, session, map[string]any{
			"enemy":      out.DefeatedEnemy,
			"leveled_up": out.LeveledUp,
		})
		session.Combat = nil
		if err := o.scheduleTransition(session); err != nil {
			return nil, err
		}
	case entities.CombatFled:
		session.Combat = nil
		if err := o.scheduleTransition(session); err != nil {
			return nil, err
		}
	case entities.CombatDefeat:
		session.Combat = nil
		if err := o.gameOver(ctx, session); err != nil {
			return nil, err
		}
	}

	if err := o.save(ctx, session); err != nil {
		return nil, err
	}
	return &CombatActionOutput{Session: session}, nil
}

// Rest performs a camp rest in the wild. Long rests are gated by distance
// traveled since the last one; the inn has no such gate.
func (o *orchestrator) Rest(ctx context.Context, input *RestInput) (*RestOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	session, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session.GameOver {
		return nil, errors.FailedPrecondition("the adventure is over")
	}
	if session.Combat != nil && session.Combat.IsActive {
		return nil, errors.FailedPrecondition("cannot rest during combat")
	}

	c := session.Character
	switch input.Kind {
	case RestShort:
		rest, err := o.engine.ShortRest(c)
		if err != nil {
			return nil, err
		}
		severity := entities.LogInfo
		if rest.Healed > 0 {
			severity = entities.LogSuccess
		}
		o.log(session, rest.Message, severity)

	case RestLong:
		if session.ScenesSinceLongRest < longRestInterval {
			o.log(session, "You are not weary enough to make camp. Press on.", entities.LogInfo)
			break
		}
		rest := o.engine.LongRest(c)
		session.ScenesSinceLongRest = 0
		o.log(session, rest.Message, entities.LogSuccess)

	default:
		return nil, errors.InvalidArgumentf("unknown rest kind: %s", input.Kind)
	}

	if err := o.save(ctx, session); err != nil {
		return nil, err
	}
	return &RestOutput{Session: session}, nil
}

// scheduleTransition moves to the next scene after the configured pacing
// delay. A zero delay applies the transition synchronously; otherwise the
// delayed apply is guarded by the transition token so a newer intent wins.
func (o *orchestrator) scheduleTransition(session *entities.Session) error {
	if o.sceneDelay <= 0 {
		return o.applyTransition(context.Background(), session)
	}

	token := session.TransitionToken
	sessionID := session.ID
	time.AfterFunc(o.sceneDelay, func() {
		o.mu.Lock()
		defer o.mu.Unlock()

		ctx := context.Background()
		current, err := o.load(ctx, sessionID)
		if err != nil {
			slog.Warn("Delayed transition lost its session", "session_id", sessionID, "error", err)
			return
		}
		if current.TransitionToken != token || current.GameOver {
			return
		}
		if err := o.applyTransition(ctx, current); err != nil {
			slog.Warn("Delayed transition failed", "session_id", sessionID, "error", err)
			return
		}
		if err := o.save(ctx, current); err != nil {
			slog.Warn("Failed to save after delayed transition", "session_id", sessionID, "error", err)
		}
	})
	return nil
}

// applyTransition logs the scene break and enters the next scene.
func (o *orchestrator) applyTransition(ctx context.Context, session *entities.Session) error {
	o.log(session, "---", entities.LogInfo)
	return o.enterNextScene(ctx, session)
}

// enterNextScene generates the next scene, logs its description, bumps the
// rest counter, and auto-starts combat for combat scenes.
func (o *orchestrator) enterNextScene(ctx context.Context, session *entities.Session) error {
	var prevID string
	if session.Scene != nil {
		prevID = session.Scene.ID
	}

	next, err := o.scenes.NextScene(&scene.NextSceneInput{
		PreviousSceneID: prevID,
		Level:           session.Character.Level,
		ActiveQuests:    session.Character.ActiveQuests(),
	})
	if err != nil {
		return err
	}
	session.Scene = &next.Scene
	session.ScenesSinceLongRest++

	o.log(session, next.Scene.Description, entities.LogNarrative)

	if next.Scene.Type == entities.SceneCombat {
		return o.autoStartCombat(ctx, session)
	}
	return nil
}

// autoStartCombat opens combat against the active scene's enemy.
func (o *orchestrator) autoStartCombat(ctx context.Context, session *entities.Session) error {
	if session.Character.IsDefeated() {
		return nil
	}

	out, err := o.combats.StartCombat(&combat.StartCombatInput{
		Character: session.Character,
		Scene:     session.Scene,
	})
	if err != nil {
		return err
	}
	state := out.State
	session.Combat = &state
	for _, msg := range out.Messages {
		o.log(session, msg.Text, msg.Severity)
	}

	o.publish(ctx, EventCombatStarted, session, map[string]any{
		"enemy":    session.Scene.Enemy.Name,
		"scene_id": session.Scene.ID,
	})
	return nil
}

// gameOver marks the session terminal.
func (o *orchestrator) gameOver(ctx context.Context, session *entities.Session) error {
	session.GameOver = true
	o.log(session, "Your adventure ends here.", entities.LogFailure)

	o.publish(ctx, EventGameOver, session, map[string]any{
		"character": session.Character.Name,
		"level":     session.Character.Level,
	})

	slog.Info("Game over",
		"session_id", session.ID,
		"character", session.Character.Name,
		"level", session.Character.Level,
	)
	return nil
}

func (o *orchestrator) log(session *entities.Session, text string, severity entities.LogSeverity) {
	session.Log = append(session.Log, entities.LogEntry{
		Text:     text,
		Severity: severity,
		At:       o.clock.Now(),
	})
}

func (o *orchestrator) load(ctx context.Context, sessionID string) (*entities.Session, error) {
	out, err := o.repo.Get(ctx, adventurerepo.GetInput{ID: sessionID})
	if err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (o *orchestrator) save(ctx context.Context, session *entities.Session) error {
	session.UpdatedAt = o.clock.Now()
	_, err := o.repo.Save(ctx, adventurerepo.SaveInput{Session: session})
	return err
}

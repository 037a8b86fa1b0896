package adventure_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/torchlit/adventure-api/internal/engine"
	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/errors"
	"github.com/torchlit/adventure-api/internal/orchestrators/adventure"
	"github.com/torchlit/adventure-api/internal/orchestrators/character"
	"github.com/torchlit/adventure-api/internal/orchestrators/combat"
	"github.com/torchlit/adventure-api/internal/orchestrators/quest"
	"github.com/torchlit/adventure-api/internal/orchestrators/scene"
	"github.com/torchlit/adventure-api/internal/pkg/clock"
	"github.com/torchlit/adventure-api/internal/pkg/idgen"
	adventurerepo "github.com/torchlit/adventure-api/internal/repositories/adventure"
	adventuremock "github.com/torchlit/adventure-api/internal/repositories/adventure/mock"
	"github.com/torchlit/adventure-api/internal/testutils"
)

// harness wires the full stack against an in-memory repository and one
// scripted roller shared by the engine and the scene generator. Tests append
// rolls step by step; an exhausted script fails the test loudly.
type harness struct {
	roller  *testutils.ScriptedRoller
	bus     events.EventBus
	service adventure.Service
}

func newHarness(t *testing.T, rolls ...int) *harness {
	roller := testutils.NewScriptedRoller(rolls...)
	bus := events.NewBus()

	eng, err := engine.New(&engine.Config{Roller: roller})
	if err != nil {
		t.Fatal(err)
	}
	questSvc, err := quest.NewOrchestrator(&quest.Config{
		Roller:      roller,
		IDGenerator: idgen.NewSequential("quest"),
	})
	if err != nil {
		t.Fatal(err)
	}
	combatSvc, err := combat.NewOrchestrator(&combat.Config{
		Engine:       eng,
		QuestService: questSvc,
	})
	if err != nil {
		t.Fatal(err)
	}
	sceneSvc, err := scene.NewOrchestrator(&scene.Config{
		Engine:      eng,
		Roller:      roller,
		IDGenerator: idgen.NewSequential("scene"),
	})
	if err != nil {
		t.Fatal(err)
	}
	charSvc, err := character.NewOrchestrator(&character.Config{Engine: eng})
	if err != nil {
		t.Fatal(err)
	}

	svc, err := adventure.NewOrchestrator(&adventure.Config{
		Repository:       adventurerepo.NewInMemoryRepository(),
		CharacterService: charSvc,
		SceneService:     sceneSvc,
		CombatService:    combatSvc,
		QuestService:     questSvc,
		Engine:           eng,
		EventBus:         bus,
		IDGenerator:      idgen.NewSequential("session"),
		Clock:            &clock.Fixed{T: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatal(err)
	}

	return &harness{roller: roller, bus: bus, service: svc}
}

// queue appends rolls to the script before the next step.
func (h *harness) queue(rolls ...int) {
	h.roller.Rolls = append(h.roller.Rolls, rolls...)
}

type AdventureOrchestratorTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *AdventureOrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *AdventureOrchestratorTestSuite) hasLog(session *entities.Session, text string) bool {
	for _, entry := range session.Log {
		if entry.Text == text {
			return true
		}
	}
	return false
}

func (s *AdventureOrchestratorTestSuite) start(h *harness) *entities.Session {
	out, err := h.service.StartAdventure(s.ctx, &adventure.StartAdventureInput{
		Name:      "Thorin",
		RaceName:  "Human",
		ClassName: "Fighter",
	})
	s.Require().NoError(err)
	return out.Session
}

func (s *AdventureOrchestratorTestSuite) TestStartAdventure_OpensInTown() {
	// 10 on the d100 lands the opening scene in town.
	h := newHarness(s.T(), 10)

	session := s.start(h)

	s.NotEmpty(session.ID)
	s.Equal("Thorin", session.Character.Name)
	s.Require().NotNil(session.Scene)
	s.Equal(entities.VariantTown, session.Scene.Variant)
	s.Nil(session.Combat)
	s.False(session.GameOver)
	s.True(s.hasLog(session, "Welcome, Thorin the Human Fighter. Your adventure begins."))
	s.True(s.hasLog(session, session.Scene.Description))
	s.Equal(int32(9), session.ScenesSinceLongRest, "counter starts near the camp threshold")
}

func (s *AdventureOrchestratorTestSuite) TestChoose_FindQuest() {
	h := newHarness(s.T(), 10)
	session := s.start(h)

	// Template pick 2 is Rat Catcher.
	h.queue(2)
	out, err := h.service.Choose(s.ctx, &adventure.ChooseInput{
		SessionID: session.ID,
		ChoiceID:  "find_quest",
	})
	s.Require().NoError(err)

	got := out.Session
	s.Require().Len(got.Character.Quests, 1)
	q := got.Character.Quests[0]
	s.Equal("Rat Catcher", q.Title)
	s.Equal(entities.QuestStatusActive, q.Status)
	s.True(s.hasLog(got, "📜 New Quest Accepted: Rat Catcher"))
	s.True(s.hasLog(got, "Objective: Defeat 6 Giant Rat(s)"))
	s.Equal(entities.VariantTown, got.Scene.Variant, "accepting a quest stays in town")
}

func (s *AdventureOrchestratorTestSuite) TestChoose_ShopFlow() {
	h := newHarness(s.T(), 10)
	session := s.start(h)

	out, err := h.service.Choose(s.ctx, &adventure.ChooseInput{SessionID: session.ID, ChoiceID: "shop"})
	s.Require().NoError(err)
	s.Equal("shop_interior", out.Session.Scene.ID)
	s.True(s.hasLog(out.Session, "You enter the shop."))

	// 15gp starting gold cannot afford the 50gp potion.
	out, err = h.service.Choose(s.ctx, &adventure.ChooseInput{SessionID: session.ID, ChoiceID: "buy_potion"})
	s.Require().NoError(err)
	s.True(s.hasLog(out.Session, "Not enough gold!"))
	s.Equal(int32(15), out.Session.Character.Wallet.GP)

	// The 15gp sword is exactly affordable.
	out, err = h.service.Choose(s.ctx, &adventure.ChooseInput{SessionID: session.ID, ChoiceID: "buy_sword"})
	s.Require().NoError(err)
	s.True(s.hasLog(out.Session, "Bought Longsword."))
	s.Equal(int32(0), out.Session.Character.Wallet.GP)
	s.Len(out.Session.Character.Inventory, 6)

	// Inventory index 1 is the kit longsword, selling for half value.
	out, err = h.service.Choose(s.ctx, &adventure.ChooseInput{SessionID: session.ID, ChoiceID: "sell_item_1"})
	s.Require().NoError(err)
	s.True(s.hasLog(out.Session, "Sold Longsword for 7gp."))
	s.Equal(int32(7), out.Session.Character.Wallet.GP)
	s.Len(out.Session.Character.Inventory, 5)

	// Leaving the shop transitions; 10 on the d100 lands in town again.
	h.queue(10)
	out, err = h.service.Choose(s.ctx, &adventure.ChooseInput{SessionID: session.ID, ChoiceID: "leave_shop"})
	s.Require().NoError(err)
	s.True(s.hasLog(out.Session, "You leave the shop."))
	s.True(s.hasLog(out.Session, "---"))
	s.Equal(entities.VariantTown, out.Session.Scene.Variant)
}

func (s *AdventureOrchestratorTestSuite) TestChoose_InnRestResetsCounter() {
	h := newHarness(s.T(), 10)
	session := s.start(h)
	s.Equal(int32(9), session.ScenesSinceLongRest)

	h.queue(10)
	out, err := h.service.Choose(s.ctx, &adventure.ChooseInput{SessionID: session.ID, ChoiceID: "rest"})
	s.Require().NoError(err)

	got := out.Session
	s.True(s.hasLog(got, "You sleep soundly in a warm bed."))
	s.True(s.hasLog(got, "Long Rest complete. You regained 0 HP and 1 Hit Dice."))
	s.Equal(int32(1), got.ScenesSinceLongRest, "reset to zero, then one scene traveled")
}

func (s *AdventureOrchestratorTestSuite) TestChoose_CheckSuccessPaysReward() {
	// 50 skips town, location 3, 30 picks the non-combat pool, 5 is the
	// bard encounter.
	h := newHarness(s.T(), 50, 3, 30, 5)
	session := s.start(h)
	s.Equal(entities.VariantBard, session.Scene.Variant)

	// Check roll 15, then 10 on the d100 sends the follow-up scene to town.
	h.queue(15, 10)
	out, err := h.service.Choose(s.ctx, &adventure.ChooseInput{SessionID: session.ID, ChoiceID: "perform"})
	s.Require().NoError(err)

	got := out.Session
	s.True(s.hasLog(got, "[Performance Check] Rolled 15 + 0 (mod) = 15 (DC 12)"))
	s.True(s.hasLog(got, "You gained 10gp!"))
	s.Equal(int32(25), got.Character.Wallet.GP)
	s.Equal(entities.VariantTown, got.Scene.Variant)
}

func (s *AdventureOrchestratorTestSuite) TestChoose_CheckFailureDealsDamage() {
	// Trap encounter: 50 skips town, location 1, 30 non-combat, 2 is the
	// trap, then two flavor damage d4s (3 and 2).
	h := newHarness(s.T(), 50, 1, 30, 2, 3, 2)
	session := s.start(h)
	s.Equal(entities.VariantTrap, session.Scene.Variant)

	// Investigation DC 12: roll 4 + 0 fails. Damage 3 lands, then town.
	h.queue(4, 10)
	out, err := h.service.Choose(s.ctx, &adventure.ChooseInput{SessionID: session.ID, ChoiceID: "investigate"})
	s.Require().NoError(err)

	got := out.Session
	s.True(s.hasLog(got, "You took 3 damage!"))
	s.Equal(int32(9), got.Character.HP.Current, "12 max minus 3")
	s.Equal(int32(15), got.Character.Wallet.GP, "reward suppressed on failure")
}

func (s *AdventureOrchestratorTestSuite) TestChoose_FailedIntimidationStartsAmbush() {
	// Bandit toll: 50 skips town, location 1, 30 non-combat, 9 is the toll.
	h := newHarness(s.T(), 50, 1, 30, 9)
	session := s.start(h)
	s.Equal(entities.VariantBanditToll, session.Scene.Variant)

	// Intimidation roll 5 fails DC 13, then initiative 15 vs 10.
	h.queue(5, 15, 10)
	out, err := h.service.Choose(s.ctx, &adventure.ChooseInput{SessionID: session.ID, ChoiceID: "intimidate"})
	s.Require().NoError(err)

	got := out.Session
	s.True(s.hasLog(got, "The bandits draw their weapons! 'You made a mistake, traveler!'"))
	s.True(s.hasLog(got, "A fight breaks out!"))
	s.Equal(entities.VariantAmbush, got.Scene.Variant)
	s.Require().NotNil(got.Combat)
	s.True(got.Combat.IsActive)
	s.True(s.hasLog(got, "Combat Started! Thorin (Init 15) vs Bandit (Init 10)"))
}

func (s *AdventureOrchestratorTestSuite) TestCombatAction_VictoryMovesOn() {
	// Combat scene: 50 skips town, location 1, 90 combat, 1 is the Goblin,
	// flavor damage 4/4/2, then initiative 20 vs 1.
	h := newHarness(s.T(), 50, 1, 90, 1, 4, 4, 2, 20, 1)
	session := s.start(h)
	s.Require().NotNil(session.Combat)

	// Attack 15 (+4) hits AC 11; damage 8+2 kills the 10 HP Goblin. Loot
	// rolls 10 gold and 50 misses the item drop; 10 lands the next scene
	// in town.
	h.queue(15, 8, 10, 50, 10)
	out, err := h.service.CombatAction(s.ctx, &adventure.CombatActionInput{
		SessionID: session.ID,
		Action:    combat.ActionAttack,
	})
	s.Require().NoError(err)

	got := out.Session
	s.Nil(got.Combat)
	s.True(s.hasLog(got, "Victory! You defeated the Goblin."))
	s.True(s.hasLog(got, "You gained 50 XP!"))
	s.Equal(int32(50), got.Character.XP)
	s.Equal(int32(29), got.Character.Wallet.GP, "15 starting + 14 loot")
	s.Equal(entities.VariantTown, got.Scene.Variant)
	s.False(got.GameOver)
}

func (s *AdventureOrchestratorTestSuite) TestCombatAction_RequiresActiveCombat() {
	h := newHarness(s.T(), 10)
	session := s.start(h)

	_, err := h.service.CombatAction(s.ctx, &adventure.CombatActionInput{
		SessionID: session.ID,
		Action:    combat.ActionAttack,
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *AdventureOrchestratorTestSuite) TestChoose_BlockedDuringCombat() {
	h := newHarness(s.T(), 50, 1, 90, 1, 4, 4, 2, 20, 1)
	session := s.start(h)
	s.Require().NotNil(session.Combat)

	_, err := h.service.Choose(s.ctx, &adventure.ChooseInput{
		SessionID: session.ID,
		ChoiceID:  "melee",
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *AdventureOrchestratorTestSuite) TestRest_LongRestGatedByTravel() {
	h := newHarness(s.T(), 10)
	session := s.start(h)
	s.Equal(int32(9), session.ScenesSinceLongRest)

	out, err := h.service.Rest(s.ctx, &adventure.RestInput{
		SessionID: session.ID,
		Kind:      adventure.RestLong,
	})
	s.Require().NoError(err)
	s.True(s.hasLog(out.Session, "You are not weary enough to make camp. Press on."))
	s.Equal(int32(9), out.Session.ScenesSinceLongRest)
}

func (s *AdventureOrchestratorTestSuite) TestRest_ShortRestAtFullHealth() {
	h := newHarness(s.T(), 10)
	session := s.start(h)

	out, err := h.service.Rest(s.ctx, &adventure.RestInput{
		SessionID: session.ID,
		Kind:      adventure.RestShort,
	})
	s.Require().NoError(err)
	s.True(s.hasLog(out.Session, "You are already at full health."))
	s.Equal(int32(1), out.Session.Character.HP.HitDiceCurrent, "no hit die spent")
}

func (s *AdventureOrchestratorTestSuite) TestEvents_MilestonesPublishedOnBus() {
	h := newHarness(s.T(), 10)
	session := s.start(h)

	var fired []string
	var questTitle, enemy string
	record := func(_ context.Context, e events.Event) error {
		fired = append(fired, e.Type())
		if v, ok := e.Context().Get("quest_title"); ok {
			questTitle, _ = v.(string)
		}
		if v, ok := e.Context().Get("enemy"); ok {
			enemy, _ = v.(string)
		}
		return nil
	}
	h.bus.SubscribeFunc(adventure.EventQuestAccepted, 0, record)
	h.bus.SubscribeFunc(adventure.EventCombatStarted, 0, record)

	// Template pick 2 is Rat Catcher.
	h.queue(2)
	_, err := h.service.Choose(s.ctx, &adventure.ChooseInput{
		SessionID: session.ID,
		ChoiceID:  "find_quest",
	})
	s.Require().NoError(err)
	s.Equal([]string{adventure.EventQuestAccepted}, fired)
	s.Equal("Rat Catcher", questTitle)

	// Leaving town: 50 skips town, 40 steers toward the quest target,
	// location 2, flavor damage 4/4/2, then initiative 15 vs 10 opens
	// combat against the synthesized Giant Rat.
	h.queue(50, 40, 2, 4, 4, 2, 15, 10)
	out, err := h.service.Choose(s.ctx, &adventure.ChooseInput{
		SessionID: session.ID,
		ChoiceID:  "leave",
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Session.Combat)
	s.Equal([]string{adventure.EventQuestAccepted, adventure.EventCombatStarted}, fired)
	s.Equal("Giant Rat", enemy)
}

func (s *AdventureOrchestratorTestSuite) TestGetSession_NotFound() {
	h := newHarness(s.T())

	_, err := h.service.GetSession(s.ctx, &adventure.GetSessionInput{SessionID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func TestAdventureOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(AdventureOrchestratorTestSuite))
}

func TestChoosePropagatesRepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := adventuremock.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), adventurerepo.GetInput{ID: "session_1"}).
		Return(nil, errors.Internal("redis unavailable"))

	roller := testutils.NewScriptedRoller()
	eng, err := engine.New(&engine.Config{Roller: roller})
	if err != nil {
		t.Fatal(err)
	}
	questSvc, err := quest.NewOrchestrator(&quest.Config{Roller: roller, IDGenerator: idgen.NewSequential("quest")})
	if err != nil {
		t.Fatal(err)
	}
	combatSvc, err := combat.NewOrchestrator(&combat.Config{Engine: eng, QuestService: questSvc})
	if err != nil {
		t.Fatal(err)
	}
	sceneSvc, err := scene.NewOrchestrator(&scene.Config{Engine: eng, Roller: roller, IDGenerator: idgen.NewSequential("scene")})
	if err != nil {
		t.Fatal(err)
	}
	charSvc, err := character.NewOrchestrator(&character.Config{Engine: eng})
	if err != nil {
		t.Fatal(err)
	}

	svc, err := adventure.NewOrchestrator(&adventure.Config{
		Repository:       repo,
		CharacterService: charSvc,
		SceneService:     sceneSvc,
		CombatService:    combatSvc,
		QuestService:     questSvc,
		Engine:           eng,
		EventBus:         events.NewBus(),
		IDGenerator:      idgen.NewSequential("session"),
		Clock:            clock.New(),
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Choose(context.Background(), &adventure.ChooseInput{SessionID: "session_1", ChoiceID: "leave"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

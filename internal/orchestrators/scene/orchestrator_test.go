package scene_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/torchlit/adventure-api/internal/engine"
	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/orchestrators/scene"
	"github.com/torchlit/adventure-api/internal/pkg/idgen"
	"github.com/torchlit/adventure-api/internal/testutils"
)

type SceneOrchestratorTestSuite struct {
	suite.Suite
}

// newService routes both the scene rolls and the engine's dice through one
// scripted sequence. Scene generation consumes rolls in a fixed order: town
// d100, steer d100 (only with an incomplete kill objective), location pick,
// pool d100 and table pick (unless steered), then per-choice flavor damage.
func (s *SceneOrchestratorTestSuite) newService(rolls ...int) scene.Service {
	roller := testutils.NewScriptedRoller(rolls...)
	eng, err := engine.New(&engine.Config{Roller: roller})
	s.Require().NoError(err)

	svc, err := scene.NewOrchestrator(&scene.Config{
		Engine:      eng,
		Roller:      roller,
		IDGenerator: idgen.NewSequential("scene"),
	})
	s.Require().NoError(err)
	return svc
}

func activeKillQuest(target string) entities.Quest {
	return entities.Quest{
		ID:    "quest_1",
		Title: "Hunt",
		Objectives: []entities.QuestObjective{
			{Type: entities.ObjectiveKill, Target: target, Count: 3},
		},
		Status: entities.QuestStatusActive,
	}
}

func (s *SceneOrchestratorTestSuite) TestNextScene_Town() {
	svc := s.newService(10)

	out, err := svc.NextScene(&scene.NextSceneInput{Level: 1})
	s.Require().NoError(err)

	sc := out.Scene
	s.Equal("Nearby Town", sc.Title)
	s.Equal(entities.SceneRoleplay, sc.Type)
	s.Equal(entities.VariantTown, sc.Variant)
	s.Require().Len(sc.Choices, 4)
	s.Equal("shop", sc.Choices[0].ID)
	s.Equal("find_quest", sc.Choices[1].ID, "job board slots in after the shop")
	s.Equal("rest", sc.Choices[2].ID)
	s.Equal("leave", sc.Choices[3].ID)
}

func (s *SceneOrchestratorTestSuite) TestNextScene_TownWithFullQuestLog() {
	svc := s.newService(10)
	quests := []entities.Quest{activeKillQuest("Goblin"), activeKillQuest("Wolf"), activeKillQuest("Bandit")}

	out, err := svc.NextScene(&scene.NextSceneInput{Level: 1, ActiveQuests: quests})
	s.Require().NoError(err)

	s.Len(out.Scene.Choices, 3)
	_, found := out.Scene.FindChoice("find_quest")
	s.False(found)
}

func (s *SceneOrchestratorTestSuite) TestNextScene_NonCombatEncounter() {
	// 50: not town; 3: location; 30: non-combat; 5: bard template.
	svc := s.newService(50, 3, 30, 5)

	out, err := svc.NextScene(&scene.NextSceneInput{Level: 1})
	s.Require().NoError(err)

	sc := out.Scene
	s.Equal(entities.SceneRoleplay, sc.Type)
	s.Equal(entities.VariantBard, sc.Variant)
	s.Contains(sc.Description, "You arrive at ")
	s.Contains(sc.Description, "bard")
	s.Require().Len(sc.Choices, 2)
	s.Equal("listen", sc.Choices[0].ID)
	s.Equal("perform", sc.Choices[1].ID)
	s.Equal(int32(10), sc.Choices[1].Consequence.RewardGP)
}

func (s *SceneOrchestratorTestSuite) TestNextScene_CombatEncounter() {
	// 50: not town; 1: location; 90: combat; 1: Goblin; 4, 4, 2: flavor damage.
	svc := s.newService(50, 1, 90, 1, 4, 4, 2)

	out, err := svc.NextScene(&scene.NextSceneInput{Level: 1})
	s.Require().NoError(err)

	sc := out.Scene
	s.Equal(entities.SceneCombat, sc.Type)
	s.Require().NotNil(sc.Enemy)
	// Level 1 is identity scaling.
	s.Equal("Goblin", sc.Enemy.Name)
	s.Equal(int32(10), sc.Enemy.HP)
	s.Equal(int32(11), sc.Enemy.AC)

	s.Require().Len(sc.Choices, 3)
	s.Equal("melee", sc.Choices[0].ID)
	s.Equal(int32(12), sc.Choices[0].Check.DC)
	s.Equal("magic", sc.Choices[1].ID)
	s.Equal(int32(13), sc.Choices[1].Check.DC)
	s.Equal("run", sc.Choices[2].ID)
	s.Equal(int32(15), sc.Choices[2].Check.DC)
	s.Equal(int32(2), sc.Choices[2].Consequence.Damage)
}

func (s *SceneOrchestratorTestSuite) TestNextScene_CombatScalesWithLevel() {
	svc := s.newService(50, 1, 90, 1, 4, 4, 2)

	out, err := svc.NextScene(&scene.NextSceneInput{Level: 5})
	s.Require().NoError(err)

	sc := out.Scene
	// Goblin 10 HP, 11 AC at level 5: hp*1.60 = 16, ac+1 = 12.
	s.Equal(int32(16), sc.Enemy.HP)
	s.Equal(int32(12), sc.Enemy.AC)
	s.Equal(int32(14), sc.Choices[0].Check.DC)
}

func (s *SceneOrchestratorTestSuite) TestNextScene_QuestSteeringUsesCatalogEnemy() {
	// 50: not town; 40: steer hits; 2: location; 4, 4, 2: flavor damage.
	svc := s.newService(50, 40, 2, 4, 4, 2)

	out, err := svc.NextScene(&scene.NextSceneInput{
		Level:        1,
		ActiveQuests: []entities.Quest{activeKillQuest("Goblin")},
	})
	s.Require().NoError(err)

	sc := out.Scene
	s.Equal(entities.SceneCombat, sc.Type)
	s.Equal("Goblin", sc.Enemy.Name)
	s.Equal(int32(10), sc.Enemy.HP)
}

func (s *SceneOrchestratorTestSuite) TestNextScene_QuestSteeringSynthesizesUnknownTarget() {
	svc := s.newService(50, 40, 2, 4, 4, 2)

	out, err := svc.NextScene(&scene.NextSceneInput{
		Level:        2,
		ActiveQuests: []entities.Quest{activeKillQuest("Giant Rat")},
	})
	s.Require().NoError(err)

	sc := out.Scene
	s.Equal("Giant Rat", sc.Enemy.Name)
	// Synthesized at 15 + 5*level, then scaled for level 2: 25*1.15 = 28.
	s.Equal(int32(28), sc.Enemy.HP)
	s.Contains(sc.Description, "You track down the Giant Rats you were hunting.")
}

func (s *SceneOrchestratorTestSuite) TestNextScene_SteerMissFallsThrough() {
	// Steer roll 60 misses; pool roll 30 lands non-combat (bard, no damage).
	svc := s.newService(50, 60, 3, 30, 5)

	out, err := svc.NextScene(&scene.NextSceneInput{
		Level:        1,
		ActiveQuests: []entities.Quest{activeKillQuest("Goblin")},
	})
	s.Require().NoError(err)
	s.Equal(entities.VariantBard, out.Scene.Variant)
}

func (s *SceneOrchestratorTestSuite) TestNextScene_CompletedObjectiveDoesNotSteer() {
	// No steer roll: the only kill objective is complete.
	svc := s.newService(50, 3, 30, 5)
	quest := activeKillQuest("Goblin")
	quest.Objectives[0].Current = 3

	out, err := svc.NextScene(&scene.NextSceneInput{
		Level:        1,
		ActiveQuests: []entities.Quest{quest},
	})
	s.Require().NoError(err)
	s.Equal(entities.VariantBard, out.Scene.Variant)
}

func (s *SceneOrchestratorTestSuite) TestNextScene_BanditTollChoices() {
	// NonCombatEncounters[8] is the bandit toll.
	svc := s.newService(50, 1, 30, 9)

	out, err := svc.NextScene(&scene.NextSceneInput{Level: 1})
	s.Require().NoError(err)

	sc := out.Scene
	s.Equal(entities.VariantBanditToll, sc.Variant)
	pay, found := sc.FindChoice("pay")
	s.Require().True(found)
	s.Equal(int32(-10), pay.Consequence.RewardGP)
	intimidate, found := sc.FindChoice("intimidate")
	s.Require().True(found)
	s.Equal(entities.SkillIntimidation, intimidate.Check.Skill)
	s.Equal(int32(13), intimidate.Check.DC)
	s.Zero(intimidate.Consequence.Damage)
}

func (s *SceneOrchestratorTestSuite) TestShopScene() {
	svc := s.newService()
	inventory := []entities.Item{
		{ID: "longsword", Name: "Longsword", ValueCP: 1500},
		{ID: "staff", Name: "Quarterstaff", ValueCP: 20},
		{ID: "potion_healing", Name: "Potion of Healing", ValueCP: 5000},
	}

	out, err := svc.ShopScene(&scene.ShopSceneInput{Inventory: inventory})
	s.Require().NoError(err)

	sc := out.Scene
	s.Equal("shop_interior", sc.ID)
	s.Equal("General Store", sc.Title)
	s.Equal(entities.VariantShop, sc.Variant)

	s.Equal("buy_potion", sc.Choices[0].ID)
	s.Equal("buy_sword", sc.Choices[1].ID)
	// The 20 cp staff sells for 0gp and is not listed.
	s.Equal("sell_item_0", sc.Choices[2].ID)
	s.Equal("Sell Longsword (7gp)", sc.Choices[2].Text)
	s.Equal("sell_item_2", sc.Choices[3].ID)
	s.Equal("Sell Potion of Healing (25gp)", sc.Choices[3].Text)
	s.Equal("leave_shop", sc.Choices[len(sc.Choices)-1].ID)
}

func (s *SceneOrchestratorTestSuite) TestAmbushScene() {
	svc := s.newService()

	out, err := svc.AmbushScene(&scene.AmbushSceneInput{Level: 3})
	s.Require().NoError(err)

	sc := out.Scene
	s.Equal("Bandit Ambush", sc.Title)
	s.Equal(entities.SceneCombat, sc.Type)
	s.Equal(entities.VariantAmbush, sc.Variant)
	s.Require().NotNil(sc.Enemy)
	s.Equal("Bandit", sc.Enemy.Name)
	s.Equal(int32(26), sc.Enemy.HP)
	s.Equal(int32(12), sc.Enemy.AC)
}

func TestSceneOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(SceneOrchestratorTestSuite))
}

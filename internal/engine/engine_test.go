package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torchlit/adventure-api/internal/engine"
	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/testutils"
)

func newEngine(t *testing.T, rolls ...int) engine.Engine {
	t.Helper()
	e, err := engine.New(&engine.Config{Roller: testutils.NewScriptedRoller(rolls...)})
	require.NoError(t, err)
	return e
}

func TestNew_RequiresRoller(t *testing.T) {
	_, err := engine.New(&engine.Config{})
	assert.Error(t, err)
}

func TestAbilityModifier(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		score int32
		want  int32
	}{
		{1, -5},
		{7, -2},
		{8, -1},
		{9, -1},
		{10, 0},
		{11, 0},
		{12, 1},
		{14, 2},
		{16, 3},
		{20, 5},
		{30, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.AbilityModifier(tt.score), "score %d", tt.score)
	}
}

func TestProficiencyBonus(t *testing.T) {
	e := newEngine(t)

	assert.Equal(t, int32(2), e.ProficiencyBonus(1))
	assert.Equal(t, int32(2), e.ProficiencyBonus(4))
	assert.Equal(t, int32(3), e.ProficiencyBonus(5))
	assert.Equal(t, int32(3), e.ProficiencyBonus(8))
	assert.Equal(t, int32(4), e.ProficiencyBonus(9))
}

func TestPerformCheck_ProficientSkill(t *testing.T) {
	e := newEngine(t, 10)
	c := testutils.CreateTestFighter()

	// Athletics is proficient: 10 (roll) + 2 (Str 14) + 2 (prof) = 14.
	out, err := e.PerformCheck(&engine.PerformCheckInput{
		Character: c,
		Skill:     entities.SkillAthletics,
		DC:        14,
	})
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, int32(10), out.Roll)
	assert.Equal(t, int32(2), out.Modifier)
	assert.Equal(t, int32(2), out.Bonus)
	assert.Equal(t, out.Roll+out.Modifier+out.Bonus, out.Total)
}

func TestPerformCheck_UntrainedSkillHasNoBonus(t *testing.T) {
	e := newEngine(t, 13)
	c := testutils.CreateTestFighter()

	// Stealth is not proficient: 13 + 0 (Dex 11) + 0 = 13 vs DC 14.
	out, err := e.PerformCheck(&engine.PerformCheckInput{
		Character: c,
		Skill:     entities.SkillStealth,
		DC:        14,
	})
	require.NoError(t, err)

	assert.False(t, out.Success)
	assert.Zero(t, out.Bonus)
	assert.Equal(t, int32(13), out.Total)
}

func TestPerformCheck_UnknownSkillDefaultsToDexterity(t *testing.T) {
	e := newEngine(t, 10)
	c := testutils.CreateTestFighter()
	c.Stats.Dexterity = 16

	out, err := e.PerformCheck(&engine.PerformCheckInput{
		Character: c,
		Skill:     entities.Skill("Juggling"),
		DC:        10,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(3), out.Modifier)
}

func TestCheckLevelUp_BelowThresholdUnchanged(t *testing.T) {
	e := newEngine(t)
	c := testutils.CreateTestFighter()
	c.XP = 299

	out, err := e.CheckLevelUp(c)
	require.NoError(t, err)

	assert.False(t, out.LeveledUp)
	assert.Equal(t, int32(1), c.Level)
	assert.Equal(t, int32(12), c.HP.Max)
}

func TestCheckLevelUp_CrossingThreshold(t *testing.T) {
	e := newEngine(t)
	c := testutils.CreateTestFighter()
	c.XP = 300
	c.HP.Current = 3

	out, err := e.CheckLevelUp(c)
	require.NoError(t, err)

	assert.True(t, out.LeveledUp)
	assert.Equal(t, int32(2), out.NewLevel)
	assert.Equal(t, int32(2), c.Level)
	// d10 class, Con 14: gain = 5 + 1 + 2 = 8.
	assert.Equal(t, int32(8), out.HPGain)
	assert.Equal(t, int32(20), c.HP.Max)
	assert.Equal(t, c.HP.Max, c.HP.Current, "level up fully heals")
	assert.Equal(t, int32(2), c.HP.HitDiceMax)
	assert.Equal(t, int32(2), c.HP.HitDiceCurrent)
	assert.Equal(t, int32(900), c.MaxXP)
	assert.Empty(t, out.BoostedAbility, "no ability boost outside 4th levels")
}

func TestCheckLevelUp_FourthLevelBoostsHighestAbility(t *testing.T) {
	e := newEngine(t)
	c := testutils.CreateTestFighter()
	c.Level = 3
	c.XP = 2700

	out, err := e.CheckLevelUp(c)
	require.NoError(t, err)

	assert.True(t, out.LeveledUp)
	// Strength 14 and Constitution 14 tie; the later ability wins.
	assert.Equal(t, entities.AbilityConstitution, out.BoostedAbility)
	assert.Equal(t, int32(16), c.Stats.Constitution)
	assert.Equal(t, int32(14), c.Stats.Strength)
}

func TestCheckLevelUp_OneLevelPerCall(t *testing.T) {
	e := newEngine(t)
	c := testutils.CreateTestFighter()
	c.XP = 5000

	out, err := e.CheckLevelUp(c)
	require.NoError(t, err)
	assert.True(t, out.LeveledUp)
	assert.Equal(t, int32(2), c.Level)
}

func TestCheckLevelUp_CapsAtTableTop(t *testing.T) {
	e := newEngine(t)
	c := testutils.CreateTestFighter()
	c.Level = 10
	c.XP = 1000000

	out, err := e.CheckLevelUp(c)
	require.NoError(t, err)
	assert.False(t, out.LeveledUp)
	assert.Equal(t, int32(10), c.Level)
}

func TestScaleEnemy_IdentityAtLevelOne(t *testing.T) {
	e := newEngine(t)
	base := entities.EnemySnapshot{Name: "Goblin", HP: 10, AC: 11}

	assert.Equal(t, base, e.ScaleEnemy(base, 1))
}

func TestScaleEnemy_Scaling(t *testing.T) {
	e := newEngine(t)
	base := entities.EnemySnapshot{Name: "Orc Warrior", HP: 20, AC: 12}

	scaled := e.ScaleEnemy(base, 5)
	// hp = floor(20 * 1.60) = 32; ac = 12 + floor(4/4) = 13.
	assert.Equal(t, int32(32), scaled.HP)
	assert.Equal(t, int32(13), scaled.AC)
}

func TestScaleEnemy_ACNeverExceeds18(t *testing.T) {
	e := newEngine(t)
	base := entities.EnemySnapshot{Name: "Wolf", HP: 11, AC: 13}

	for level := int32(1); level <= 10; level++ {
		assert.LessOrEqual(t, e.ScaleEnemy(base, level).AC, int32(18))
	}
	high := entities.EnemySnapshot{Name: "Thug", HP: 16, AC: 17}
	assert.Equal(t, int32(18), e.ScaleEnemy(high, 9).AC)
}

func TestGenerateLoot_GoldOnly(t *testing.T) {
	// gp roll 7 (+4 = 11), drop roll 95 misses the 10% band at CR 1.
	e := newEngine(t, 7, 95)

	out, err := e.GenerateLoot(&engine.GenerateLootInput{CR: 1})
	require.NoError(t, err)

	assert.Equal(t, int32(11), out.GP)
	assert.Empty(t, out.Items)
}

func TestGenerateLoot_ItemDrop(t *testing.T) {
	// gp roll 1 (+4 = 5), drop roll 10 hits at CR 1, pick 3 = longsword.
	e := newEngine(t, 1, 10, 3)

	out, err := e.GenerateLoot(&engine.GenerateLootInput{CR: 1})
	require.NoError(t, err)

	assert.Equal(t, int32(5), out.GP)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "longsword", out.Items[0].ID)
}

func TestSellPriceGP(t *testing.T) {
	e := newEngine(t)

	longsword := &entities.Item{ID: "longsword", ValueCP: 1500}
	staff := &entities.Item{ID: "staff", ValueCP: 20}

	assert.Equal(t, int32(7), e.SellPriceGP(longsword))
	assert.Zero(t, e.SellPriceGP(staff))
}

func TestShortRest_HealsAndSpendsHitDie(t *testing.T) {
	// Con 14 (mod +2), d10 class, forced roll 6: heal 8.
	e := newEngine(t, 6)
	c := testutils.CreateTestFighter()
	c.HP.Current = 1

	out, err := e.ShortRest(c)
	require.NoError(t, err)

	assert.Equal(t, int32(8), out.Healed)
	assert.Equal(t, int32(1), out.HitDiceSpent)
	assert.Equal(t, int32(9), c.HP.Current)
	assert.Zero(t, c.HP.HitDiceCurrent)
}

func TestShortRest_NoHitDiceLeft(t *testing.T) {
	e := newEngine(t)
	c := testutils.CreateTestFighter()
	c.HP.Current = 1
	c.HP.HitDiceCurrent = 0

	out, err := e.ShortRest(c)
	require.NoError(t, err)

	assert.Zero(t, out.Healed)
	assert.Zero(t, out.HitDiceSpent)
	assert.Equal(t, int32(1), c.HP.Current)
}

func TestShortRest_AlreadyFull(t *testing.T) {
	e := newEngine(t)
	c := testutils.CreateTestFighter()

	out, err := e.ShortRest(c)
	require.NoError(t, err)

	assert.Zero(t, out.Healed)
	assert.Equal(t, int32(1), c.HP.HitDiceCurrent)
}

func TestShortRest_HealingClampsAtMax(t *testing.T) {
	e := newEngine(t, 10)
	c := testutils.CreateTestFighter()
	c.HP.Current = 11

	out, err := e.ShortRest(c)
	require.NoError(t, err)

	assert.Equal(t, int32(1), out.Healed)
	assert.Equal(t, c.HP.Max, c.HP.Current)
}

func TestLongRest(t *testing.T) {
	e := newEngine(t)
	c := testutils.CreateTestFighter()
	c.Level = 4
	c.HP.Max = 36
	c.HP.Current = 10
	c.HP.HitDiceMax = 4
	c.HP.HitDiceCurrent = 0

	out := e.LongRest(c)

	assert.Equal(t, int32(26), out.Healed)
	assert.Equal(t, int32(2), out.HitDiceRegained)
	assert.Equal(t, c.HP.Max, c.HP.Current)
	assert.Equal(t, int32(2), c.HP.HitDiceCurrent)
}

func TestLongRest_HitDiceCappedAtMax(t *testing.T) {
	e := newEngine(t)
	c := testutils.CreateTestFighter()

	out := e.LongRest(c)

	assert.Equal(t, int32(1), out.HitDiceRegained)
	assert.Equal(t, c.HP.HitDiceMax, c.HP.HitDiceCurrent)
}

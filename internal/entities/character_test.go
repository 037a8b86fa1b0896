package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torchlit/adventure-api/internal/entities"
)

func newTestCharacter() *entities.Character {
	return &entities.Character{
		Name: "Thorin",
		HP:   entities.HitPoints{Current: 12, Max: 12},
		Wallet: entities.Wallet{
			GP: 15,
		},
		Inventory: []entities.Item{
			{ID: "longsword", Name: "Longsword"},
			{ID: "potion_healing", Name: "Potion of Healing"},
		},
	}
}

func TestCharacterDamageAndHealClamp(t *testing.T) {
	c := newTestCharacter()

	c.ApplyDamage(5)
	assert.Equal(t, int32(7), c.HP.Current)

	c.ApplyDamage(100)
	assert.Equal(t, int32(0), c.HP.Current)
	assert.True(t, c.IsDefeated())

	c.Heal(100)
	assert.Equal(t, int32(12), c.HP.Current)

	c.ApplyDamage(-3)
	assert.Equal(t, int32(12), c.HP.Current, "negative damage is ignored")
}

func TestCharacterSpendGold(t *testing.T) {
	c := newTestCharacter()

	assert.True(t, c.SpendGold(15))
	assert.Equal(t, int32(0), c.Wallet.GP)

	assert.False(t, c.SpendGold(1), "wallet never underflows")
	assert.Equal(t, int32(0), c.Wallet.GP)

	c.AddGold(-5)
	assert.Equal(t, int32(0), c.Wallet.GP, "negative credits are ignored")
}

func TestCharacterInventory(t *testing.T) {
	c := newTestCharacter()

	assert.Equal(t, 1, c.FindItem("potion_healing"))
	assert.Equal(t, -1, c.FindItem("greatsword"))

	item, ok := c.RemoveItemAt(0)
	require.True(t, ok)
	assert.Equal(t, "longsword", item.ID)
	assert.Len(t, c.Inventory, 1)

	_, ok = c.RemoveItemAt(5)
	assert.False(t, ok)
}

func TestCharacterActiveQuests(t *testing.T) {
	c := newTestCharacter()
	c.Quests = []entities.Quest{
		{ID: "q1", Status: entities.QuestStatusActive},
		{ID: "q2", Status: entities.QuestStatusCompleted},
		{ID: "q3", Status: entities.QuestStatusActive},
	}

	active := c.ActiveQuests()
	require.Len(t, active, 2)
	assert.Equal(t, "q1", active[0].ID)
	assert.Equal(t, "q3", active[1].ID)
}

func TestAbilityScoresHighestPrefersLaterOnTie(t *testing.T) {
	scores := entities.AbilityScores{
		Strength:     16,
		Dexterity:    10,
		Constitution: 16,
		Intelligence: 10,
		Wisdom:       10,
		Charisma:     10,
	}
	assert.Equal(t, entities.AbilityConstitution, scores.Highest())

	scores.Add(entities.AbilityStrength, 2)
	assert.Equal(t, entities.AbilityStrength, scores.Highest())
}

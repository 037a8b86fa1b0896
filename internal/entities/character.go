package entities

// Trait is a racial trait.
type Trait struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Feature is a class feature gained at a level.
type Feature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       int32  `json:"level"`
}

// Race is an immutable race template.
type Race struct {
	Name           string            `json:"name"`
	Speed          int32             `json:"speed"`
	AbilityBonuses map[Ability]int32 `json:"ability_bonuses"`
	Traits         []Trait           `json:"traits"`
}

// Class is an immutable class template.
type Class struct {
	Name         string    `json:"name"`
	HitDie       int32     `json:"hit_die"` // 6, 8, 10 or 12
	SavingThrows []Ability `json:"saving_throws"`
	Features     []Feature `json:"features"`
}

// HitPoints tracks current and maximum HP plus the hit-die pool spent on
// short rests.
type HitPoints struct {
	Current        int32 `json:"current"`
	Max            int32 `json:"max"`
	HitDiceCurrent int32 `json:"hit_dice_current"`
	HitDiceMax     int32 `json:"hit_dice_max"`
}

// Wallet holds the five coin denominations. Gold pieces are the canonical
// unit for all pricing; 100 cp = 1 gp.
type Wallet struct {
	CP int32 `json:"cp"`
	SP int32 `json:"sp"`
	EP int32 `json:"ep"`
	GP int32 `json:"gp"`
	PP int32 `json:"pp"`
}

// Equipment holds the three named slots. Equipped items stay in the
// inventory; slots are references, not transfers.
type Equipment struct {
	MainHand *Item `json:"main_hand,omitempty"`
	OffHand  *Item `json:"off_hand,omitempty"`
	Armor    *Item `json:"armor,omitempty"`
}

// Character is the mutable aggregate root the adventure loop operates on.
// The adventure orchestrator is its single owner; all mutation happens in
// response to one in-flight intent at a time.
type Character struct {
	Name      string        `json:"name"`
	Race      *Race         `json:"race"`
	Class     *Class        `json:"class"`
	Level     int32         `json:"level"`
	Stats     AbilityScores `json:"stats"`
	HP        HitPoints     `json:"hp"`
	XP        int32         `json:"xp"`
	MaxXP     int32         `json:"max_xp"`
	Skills    []Skill       `json:"skills"`
	Inventory []Item        `json:"inventory"`
	Wallet    Wallet        `json:"wallet"`
	Equipment Equipment     `json:"equipment"`
	Quests    []Quest       `json:"quests"`
}

// HasSkill reports whether the character is proficient in the skill.
func (c *Character) HasSkill(skill Skill) bool {
	for _, s := range c.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// ApplyDamage reduces current HP, clamped at 0.
func (c *Character) ApplyDamage(amount int32) {
	if amount < 0 {
		amount = 0
	}
	c.HP.Current -= amount
	if c.HP.Current < 0 {
		c.HP.Current = 0
	}
}

// Heal raises current HP, clamped at max.
func (c *Character) Heal(amount int32) {
	if amount < 0 {
		amount = 0
	}
	c.HP.Current += amount
	if c.HP.Current > c.HP.Max {
		c.HP.Current = c.HP.Max
	}
}

// SetHP sets current HP directly, clamped to [0, max].
func (c *Character) SetHP(hp int32) {
	if hp < 0 {
		hp = 0
	}
	if hp > c.HP.Max {
		hp = c.HP.Max
	}
	c.HP.Current = hp
}

// IsDefeated reports whether the character has dropped to 0 HP, the terminal
// state for the adventure loop.
func (c *Character) IsDefeated() bool {
	return c.HP.Current <= 0
}

// AddGold credits gold pieces. Negative amounts are ignored; use SpendGold
// for debits so the not-enough-gold guard applies.
func (c *Character) AddGold(gp int32) {
	if gp > 0 {
		c.Wallet.GP += gp
	}
}

// SpendGold debits gold pieces, refusing to underflow the wallet.
func (c *Character) SpendGold(gp int32) bool {
	if gp < 0 || c.Wallet.GP < gp {
		return false
	}
	c.Wallet.GP -= gp
	return true
}

// FindItem returns the index of the first inventory item with the given
// catalog ID, or -1.
func (c *Character) FindItem(itemID string) int {
	for i, item := range c.Inventory {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// RemoveItemAt removes the inventory item at index, guarding out-of-range
// indices.
func (c *Character) RemoveItemAt(index int) (Item, bool) {
	if index < 0 || index >= len(c.Inventory) {
		return Item{}, false
	}
	item := c.Inventory[index]
	c.Inventory = append(c.Inventory[:index], c.Inventory[index+1:]...)
	return item, true
}

// ActiveQuests returns the character's quests that are still active.
func (c *Character) ActiveQuests() []Quest {
	var active []Quest
	for _, q := range c.Quests {
		if q.Status == QuestStatusActive {
			active = append(active, q)
		}
	}
	return active
}

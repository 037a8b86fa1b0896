package entities

// ItemType categorizes catalog items.
type ItemType string

// Item types.
const (
	ItemTypeWeapon   ItemType = "weapon"
	ItemTypeArmor    ItemType = "armor"
	ItemTypePotion   ItemType = "potion"
	ItemTypeMisc     ItemType = "misc"
	ItemTypeCurrency ItemType = "currency"
)

// Rarity tiers an item's scarcity.
type Rarity string

// Rarities.
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// WeaponStats describes a weapon's combat properties.
type WeaponStats struct {
	Damage     string   `json:"damage"` // dice notation, e.g. "1d8"
	DamageType string   `json:"damage_type"`
	Properties []string `json:"properties,omitempty"`
	Range      string   `json:"range,omitempty"` // e.g. "20/60"
}

// ArmorStats describes an armor's defensive properties. A nil MaxDexBonus
// means the full Dexterity modifier applies (light armor).
type ArmorStats struct {
	BaseAC              int32  `json:"base_ac"`
	Category            string `json:"category"` // "light", "medium", "heavy", "shield"
	StealthDisadvantage bool   `json:"stealth_disadvantage"`
	MaxDexBonus         *int32 `json:"max_dex_bonus,omitempty"`
}

// Item is an immutable template instance. Catalog lookups return copies so
// mutations to one holder's item never bleed into another's.
type Item struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        ItemType     `json:"type"`
	Description string       `json:"description,omitempty"`
	Rarity      Rarity       `json:"rarity"`
	ValueCP     int32        `json:"value_cp"`
	WeaponStats *WeaponStats `json:"weapon_stats,omitempty"`
	ArmorStats  *ArmorStats  `json:"armor_stats,omitempty"`
}

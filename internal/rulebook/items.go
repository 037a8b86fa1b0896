package rulebook

import "github.com/torchlit/adventure-api/internal/entities"

func dexCap(n int32) *int32 { return &n }

var items = map[string]entities.Item{
	// Weapons
	"dagger": {
		ID:          "dagger",
		Name:        "Dagger",
		Type:        entities.ItemTypeWeapon,
		Description: "A small, easily concealed knife.",
		Rarity:      entities.RarityCommon,
		ValueCP:     200,
		WeaponStats: &entities.WeaponStats{
			Damage:     "1d4",
			DamageType: "piercing",
			Properties: []string{"finesse", "light", "range"},
			Range:      "20/60",
		},
	},
	"shortsword": {
		ID:          "shortsword",
		Name:        "Shortsword",
		Type:        entities.ItemTypeWeapon,
		Description: "A standard soldier's blade.",
		Rarity:      entities.RarityCommon,
		ValueCP:     1000,
		WeaponStats: &entities.WeaponStats{
			Damage:     "1d6",
			DamageType: "piercing",
			Properties: []string{"finesse", "light"},
		},
	},
	"longsword": {
		ID:          "longsword",
		Name:        "Longsword",
		Type:        entities.ItemTypeWeapon,
		Description: "A versatile blade favored by knights.",
		Rarity:      entities.RarityCommon,
		ValueCP:     1500,
		WeaponStats: &entities.WeaponStats{
			Damage:     "1d8",
			DamageType: "slashing",
			Properties: []string{"versatile"},
		},
	},
	"greatsword": {
		ID:          "greatsword",
		Name:        "Greatsword",
		Type:        entities.ItemTypeWeapon,
		Description: "A massive blade requiring two hands.",
		Rarity:      entities.RarityCommon,
		ValueCP:     5000,
		WeaponStats: &entities.WeaponStats{
			Damage:     "2d6",
			DamageType: "slashing",
			Properties: []string{"heavy", "two-handed"},
		},
	},
	"shortbow": {
		ID:          "shortbow",
		Name:        "Shortbow",
		Type:        entities.ItemTypeWeapon,
		Description: "A light bow.",
		Rarity:      entities.RarityCommon,
		ValueCP:     2500,
		WeaponStats: &entities.WeaponStats{
			Damage:     "1d6",
			DamageType: "piercing",
			Properties: []string{"two-handed", "range"},
			Range:      "80/320",
		},
	},
	"staff": {
		ID:          "staff",
		Name:        "Quarterstaff",
		Type:        entities.ItemTypeWeapon,
		Description: "A simple length of wood.",
		Rarity:      entities.RarityCommon,
		ValueCP:     20,
		WeaponStats: &entities.WeaponStats{
			Damage:     "1d6",
			DamageType: "bludgeoning",
			Properties: []string{"versatile"},
		},
	},
	"mace": {
		ID:          "mace",
		Name:        "Mace",
		Type:        entities.ItemTypeWeapon,
		Description: "A heavy club with a metal head.",
		Rarity:      entities.RarityCommon,
		ValueCP:     500,
		WeaponStats: &entities.WeaponStats{
			Damage:     "1d6",
			DamageType: "bludgeoning",
		},
	},

	// Armor
	"leather_armor": {
		ID:          "leather_armor",
		Name:        "Leather Armor",
		Type:        entities.ItemTypeArmor,
		Description: "Stiff leather protecting the torso.",
		Rarity:      entities.RarityCommon,
		ValueCP:     1000,
		ArmorStats: &entities.ArmorStats{
			BaseAC:   11,
			Category: "light",
		},
	},
	"studded_leather": {
		ID:          "studded_leather",
		Name:        "Studded Leather",
		Type:        entities.ItemTypeArmor,
		Description: "Enhanced leather with metal rivets.",
		Rarity:      entities.RarityCommon,
		ValueCP:     4500,
		ArmorStats: &entities.ArmorStats{
			BaseAC:   12,
			Category: "light",
		},
	},
	"chain_shirt": {
		ID:          "chain_shirt",
		Name:        "Chain Shirt",
		Type:        entities.ItemTypeArmor,
		Description: "Interlocked metal rings worn between layers of clothing.",
		Rarity:      entities.RarityCommon,
		ValueCP:     5000,
		ArmorStats: &entities.ArmorStats{
			BaseAC:      13,
			Category:    "medium",
			MaxDexBonus: dexCap(2),
		},
	},
	"scale_mail": {
		ID:          "scale_mail",
		Name:        "Scale Mail",
		Type:        entities.ItemTypeArmor,
		Description: "Overlapping metal scales.",
		Rarity:      entities.RarityCommon,
		ValueCP:     5000,
		ArmorStats: &entities.ArmorStats{
			BaseAC:              14,
			Category:            "medium",
			StealthDisadvantage: true,
			MaxDexBonus:         dexCap(2),
		},
	},
	"chain_mail": {
		ID:          "chain_mail",
		Name:        "Chain Mail",
		Type:        entities.ItemTypeArmor,
		Description: "Heavy rings covering the entire body.",
		Rarity:      entities.RarityCommon,
		ValueCP:     7500,
		ArmorStats: &entities.ArmorStats{
			BaseAC:              16,
			Category:            "heavy",
			StealthDisadvantage: true,
			MaxDexBonus:         dexCap(0),
		},
	},
	"shield": {
		ID:          "shield",
		Name:        "Shield",
		Type:        entities.ItemTypeArmor,
		Description: "A basic wooden or metal shield.",
		Rarity:      entities.RarityCommon,
		ValueCP:     1000,
		ArmorStats: &entities.ArmorStats{
			BaseAC:   2,
			Category: "shield",
		},
	},

	// Consumables
	"potion_healing": {
		ID:          "potion_healing",
		Name:        "Potion of Healing",
		Type:        entities.ItemTypePotion,
		Description: "Restores 2d4+2 Hit Points.",
		Rarity:      entities.RarityCommon,
		ValueCP:     5000,
	},
}

// itemIDs is the stable order for uniform catalog picks.
var itemIDs = []string{
	"dagger", "shortsword", "longsword", "greatsword", "shortbow", "staff", "mace",
	"leather_armor", "studded_leather", "chain_shirt", "scale_mail", "chain_mail", "shield",
	"potion_healing",
}

// ItemIDs returns the catalog item IDs in a stable order.
func ItemIDs() []string {
	ids := make([]string, len(itemIDs))
	copy(ids, itemIDs)
	return ids
}

// ItemByID returns a copy of the catalog item with the given ID.
func ItemByID(id string) (entities.Item, bool) {
	item, ok := items[id]
	return item, ok
}

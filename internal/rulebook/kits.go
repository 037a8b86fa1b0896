package rulebook

import "github.com/torchlit/adventure-api/internal/entities"

// StartingKit is the equipment package a freshly created character of a
// class begins with. WalletGP is the starting gold.
type StartingKit struct {
	ItemIDs    []string
	MainHandID string
	OffHandID  string
	ArmorID    string
	WalletGP   int32
}

var startingKits = map[string]StartingKit{
	"Fighter": {
		ItemIDs:    []string{"chain_mail", "longsword", "shield", "shortbow", "potion_healing"},
		MainHandID: "longsword",
		OffHandID:  "shield",
		ArmorID:    "chain_mail",
		WalletGP:   15,
	},
	"Rogue": {
		ItemIDs:    []string{"leather_armor", "dagger", "shortsword", "shortbow", "potion_healing"},
		MainHandID: "shortsword",
		OffHandID:  "dagger",
		ArmorID:    "leather_armor",
		WalletGP:   15,
	},
	"Wizard": {
		ItemIDs:    []string{"staff", "dagger", "potion_healing"},
		MainHandID: "staff",
		WalletGP:   10,
	},
	"Cleric": {
		ItemIDs:    []string{"mace", "scale_mail", "shield", "potion_healing"},
		MainHandID: "mace",
		OffHandID:  "shield",
		ArmorID:    "scale_mail",
		WalletGP:   5,
	},
}

// StartingKitFor returns the kit for the given class name. Unknown classes
// fall back to the Fighter kit.
func StartingKitFor(className string) StartingKit {
	if kit, ok := startingKits[className]; ok {
		return kit
	}
	return startingKits["Fighter"]
}

// ApplyStartingKit fills a character's inventory, equipment slots, and
// wallet from their class kit.
func ApplyStartingKit(c *entities.Character) {
	kit := StartingKitFor(c.Class.Name)

	c.Inventory = nil
	for _, id := range kit.ItemIDs {
		if item, ok := ItemByID(id); ok {
			c.Inventory = append(c.Inventory, item)
		}
	}

	equip := func(id string) *entities.Item {
		if id == "" {
			return nil
		}
		item, ok := ItemByID(id)
		if !ok {
			return nil
		}
		return &item
	}
	c.Equipment = entities.Equipment{
		MainHand: equip(kit.MainHandID),
		OffHand:  equip(kit.OffHandID),
		Armor:    equip(kit.ArmorID),
	}
	c.Wallet = entities.Wallet{GP: kit.WalletGP}
}

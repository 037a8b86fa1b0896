package scene

import "github.com/torchlit/adventure-api/internal/entities"

// NextSceneInput asks for the next procedurally generated scene.
type NextSceneInput struct {
	PreviousSceneID string
	Level           int32
	ActiveQuests    []entities.Quest
}

// NextSceneOutput carries the generated scene.
type NextSceneOutput struct {
	Scene entities.Scene
}

// ShopSceneInput builds the general store from the character's inventory,
// which drives the sell choices.
type ShopSceneInput struct {
	Inventory []entities.Item
}

// ShopSceneOutput carries the shop scene.
type ShopSceneOutput struct {
	Scene entities.Scene
}

// AmbushSceneInput builds the forced bandit combat that follows a failed
// intimidation at a toll.
type AmbushSceneInput struct {
	Level int32
}

// AmbushSceneOutput carries the ambush scene.
type AmbushSceneOutput struct {
	Scene entities.Scene
}

package character

import (
	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/rulebook"
)

// CreateCharacterInput holds the data needed to create a new character
type CreateCharacterInput struct {
	Name      string
	RaceName  string
	ClassName string
}

// CreateCharacterOutput contains the created character
type CreateCharacterOutput struct {
	Character *entities.Character
}

// RecommendClassInput holds questionnaire answers keyed by question ID
type RecommendClassInput struct {
	Answers map[string]string
}

// RecommendClassOutput contains the recommended class name
type RecommendClassOutput struct {
	ClassName string
}

// QuestionnaireOutput contains the class-recommendation questions
type QuestionnaireOutput struct {
	Questions []rulebook.Question
}

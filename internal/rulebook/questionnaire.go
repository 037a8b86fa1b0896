package rulebook

// QuestionOption is one answer to a questionnaire question along with the
// class affinity scores it contributes.
type QuestionOption struct {
	Label  string
	Value  string
	Scores map[string]int32
}

// Question is a single class-recommendation question.
type Question struct {
	ID      string
	Text    string
	Options []QuestionOption
}

// Questionnaire holds the personality questions used to recommend a class
// during character creation.
var Questionnaire = []Question{
	{
		ID:   "combat_style",
		Text: "When enemies approach, how do you react?",
		Options: []QuestionOption{
			{Label: "Charge them head-on with a roar!", Value: "melee", Scores: map[string]int32{"Barbarian": 3, "Fighter": 2, "Paladin": 1}},
			{Label: "Keep your distance and shoot arrows or spells.", Value: "ranged", Scores: map[string]int32{"Ranger": 3, "Wizard": 2, "Sorcerer": 2}},
			{Label: "Hide in the shadows and strike when they aren't looking.", Value: "stealth", Scores: map[string]int32{"Rogue": 3, "Ranger": 1}},
			{Label: "Stand your ground and protect your allies.", Value: "support", Scores: map[string]int32{"Cleric": 3, "Paladin": 2}},
		},
	},
	{
		ID:   "social_style",
		Text: "You need to get past a guard. What do you do?",
		Options: []QuestionOption{
			{Label: "Intimidate him with a menacing glare.", Value: "intimidate", Scores: map[string]int32{"Barbarian": 2, "Fighter": 1}},
			{Label: "Persuade him with a silver tongue.", Value: "persuade", Scores: map[string]int32{"Bard": 3, "Sorcerer": 2, "Paladin": 1}},
			{Label: "Distract him with a magic trick.", Value: "magic", Scores: map[string]int32{"Wizard": 1, "Bard": 1}},
			{Label: "Sneak past him while he's distracted.", Value: "stealth", Scores: map[string]int32{"Rogue": 2}},
		},
	},
	{
		ID:   "magic_preference",
		Text: "How do you feel about magic?",
		Options: []QuestionOption{
			{Label: "It's a powerful tool to master.", Value: "pro_magic", Scores: map[string]int32{"Wizard": 3, "Sorcerer": 3, "Warlock": 3}},
			{Label: "It's useful for healing and nature.", Value: "nature_magic", Scores: map[string]int32{"Druid": 3, "Cleric": 2, "Ranger": 1}},
			{Label: "I prefer cold steel.", Value: "no_magic", Scores: map[string]int32{"Fighter": 2, "Barbarian": 2, "Rogue": 1}},
		},
	},
}

// RecommendClass tallies the class affinity scores for a set of answers,
// keyed by question ID, and returns the class with the highest total.
// Fighter is the default when no answers score.
func RecommendClass(answers map[string]string) string {
	scores := make(map[string]int32)
	var order []string

	for _, q := range Questionnaire {
		value, ok := answers[q.ID]
		if !ok {
			continue
		}
		for _, opt := range q.Options {
			if opt.Value != value {
				continue
			}
			for class, score := range opt.Scores {
				if _, seen := scores[class]; !seen {
					order = append(order, class)
				}
				scores[class] += score
			}
		}
	}

	best := "Fighter"
	var max int32 = -1
	for _, class := range order {
		if scores[class] > max {
			max = scores[class]
			best = class
		}
	}
	return best
}

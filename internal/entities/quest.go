package entities

// ObjectiveType categorizes quest objectives.
type ObjectiveType string

// Objective types.
const (
	ObjectiveKill    ObjectiveType = "kill"
	ObjectiveCollect ObjectiveType = "collect"
	ObjectiveVisit   ObjectiveType = "visit"
)

// QuestStatus is a quest's lifecycle state. Active to completed is a one-way
// transition that pays the reward exactly once.
type QuestStatus string

// Quest statuses.
const (
	QuestStatusActive    QuestStatus = "active"
	QuestStatusCompleted QuestStatus = "completed"
	QuestStatusFailed    QuestStatus = "failed"
)

// QuestObjective tracks progress toward one target. Current never exceeds
// Count.
type QuestObjective struct {
	Type    ObjectiveType `json:"type"`
	Target  string        `json:"target"`
	Count   int32         `json:"count"`
	Current int32         `json:"current"`
}

// Complete reports whether the objective has reached its count.
func (o QuestObjective) Complete() bool {
	return o.Current >= o.Count
}

// QuestReward is paid when a quest completes.
type QuestReward struct {
	XP    int32  `json:"xp"`
	GP    int32  `json:"gp"`
	Items []Item `json:"items,omitempty"`
}

// Quest is an accepted job with one or more objectives.
type Quest struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Objectives  []QuestObjective `json:"objectives"`
	Reward      QuestReward      `json:"reward"`
	Status      QuestStatus      `json:"status"`
}

// ObjectivesComplete reports whether every objective has reached its count.
func (q Quest) ObjectivesComplete() bool {
	for _, o := range q.Objectives {
		if !o.Complete() {
			return false
		}
	}
	return true
}

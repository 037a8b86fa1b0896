// Package quest implements quest generation from the template catalog and
// objective progress tracking.
package quest

//go:generate mockgen -destination=mock/mock_service.go -package=questmock github.com/torchlit/adventure-api/internal/orchestrators/quest Service

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/errors"
	"github.com/torchlit/adventure-api/internal/pkg/idgen"
	"github.com/torchlit/adventure-api/internal/rulebook"
)

// Service defines the interface for quest operations
type Service interface {
	// GenerateQuest creates a new quest from a random template, scaled to
	// the character's level
	GenerateQuest(input *GenerateQuestInput) (*GenerateQuestOutput, error)

	// ApplyEvent records a game event against the character's active quests
	ApplyEvent(input *ApplyEventInput) (*ApplyEventOutput, error)
}

// Config holds the dependencies for the quest orchestrator
type Config struct {
	Roller      dice.Roller
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	roller dice.Roller
	idGen  idgen.Generator
}

// NewOrchestrator creates a new quest orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		roller: cfg.Roller,
		idGen:  cfg.IDGenerator,
	}, nil
}

// GenerateQuest picks a template uniformly and scales it: objective count by
// ceil(base * (1 + 0.1*level)), rewards linearly by level.
func (o *orchestrator) GenerateQuest(input *GenerateQuestInput) (*GenerateQuestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	level := input.Level
	if level < 1 {
		level = 1
	}

	pick, err := o.roller.Roll(len(rulebook.QuestTemplates))
	if err != nil {
		return nil, errors.Wrap(err, "failed to pick quest template")
	}
	template := rulebook.QuestTemplates[pick-1]

	objective := template.Objective
	objective.Count = int32(math.Ceil(float64(objective.Count) * (1 + 0.1*float64(level))))
	objective.Current = 0

	quest := entities.Quest{
		ID:          o.idGen.Generate(),
		Title:       template.Title,
		Description: template.Description,
		Objectives:  []entities.QuestObjective{objective},
		Reward: entities.QuestReward{
			XP: template.RewardXP * level,
			GP: template.RewardGP * level,
		},
		Status: entities.QuestStatusActive,
	}

	slog.Info("Quest generated",
		"quest_id", quest.ID,
		"title", quest.Title,
		"level", level,
	)

	return &GenerateQuestOutput{Quest: quest}, nil
}

// ApplyEvent increments matching objectives on all active quests. An
// objective matches when its type equals the event type and its target is a
// substring of the event target. Quests whose objectives all complete
// transition to completed and pay their reward exactly once, in this call.
func (o *orchestrator) ApplyEvent(input *ApplyEventInput) (*ApplyEventOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	character := input.Character
	out := &ApplyEventOutput{}

	for i := range character.Quests {
		quest := &character.Quests[i]
		if quest.Status != entities.QuestStatusActive {
			continue
		}

		updated := false
		for j := range quest.Objectives {
			obj := &quest.Objectives[j]
			if obj.Type != input.Event.Type {
				continue
			}
			if !strings.Contains(input.Event.Target, obj.Target) {
				continue
			}
			if obj.Current < obj.Count {
				obj.Current++
				updated = true
			}
		}
		if !updated {
			continue
		}

		if quest.ObjectivesComplete() {
			quest.Status = entities.QuestStatusCompleted
			out.Messages = append(out.Messages, fmt.Sprintf("Quest Completed: %s!", quest.Title))

			character.XP += quest.Reward.XP
			character.AddGold(quest.Reward.GP)
			out.Messages = append(out.Messages, fmt.Sprintf("Reward: %d XP, %d gp", quest.Reward.XP, quest.Reward.GP))
			out.CompletedQuests = append(out.CompletedQuests, *quest)

			slog.Info("Quest completed",
				"quest_id", quest.ID,
				"title", quest.Title,
				"reward_xp", quest.Reward.XP,
				"reward_gp", quest.Reward.GP,
			)
			continue
		}

		first := quest.Objectives[0]
		out.Messages = append(out.Messages,
			fmt.Sprintf("Quest Update: %s (%d/%d %s)", quest.Title, first.Current, first.Count, first.Target))
	}

	return out, nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/torchlit/adventure-api/internal/engine"
	"github.com/torchlit/adventure-api/internal/entities"
	"github.com/torchlit/adventure-api/internal/orchestrators/adventure"
	"github.com/torchlit/adventure-api/internal/orchestrators/character"
	"github.com/torchlit/adventure-api/internal/orchestrators/combat"
	"github.com/torchlit/adventure-api/internal/orchestrators/quest"
	"github.com/torchlit/adventure-api/internal/orchestrators/scene"
	"github.com/torchlit/adventure-api/internal/pkg/clock"
	"github.com/torchlit/adventure-api/internal/pkg/idgen"
	redisclient "github.com/torchlit/adventure-api/internal/redis"
	adventurerepo "github.com/torchlit/adventure-api/internal/repositories/adventure"
	"github.com/torchlit/adventure-api/internal/rulebook"
)

var (
	redisAddr  string
	sceneDelay time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an adventure in the terminal",
	Long:  `Start an interactive adventure session: create a character, explore, fight, and trade until defeat or quit.`,
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for session storage (empty uses in-memory)")
	playCmd.Flags().DurationVar(&sceneDelay, "delay", 1500*time.Millisecond, "pause before the next scene appears")
}

func runPlay(cmd *cobra.Command, args []string) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	svc, charSvc, tale, err := buildServices()
	if err != nil {
		return err
	}

	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)

	name := prompt(in, "Name your adventurer: ")
	if name == "" {
		name = "Adventurer"
	}
	race := chooseFrom(in, "Choose a race", rulebook.RaceNames())
	className := chooseClass(in, charSvc)

	out, err := svc.StartAdventure(ctx, &adventure.StartAdventureInput{
		Name:      name,
		RaceName:  race,
		ClassName: className,
	})
	if err != nil {
		return err
	}
	session := out.Session
	printed := 0
	printed = printLog(session, printed)

	for {
		if session.GameOver {
			tale.print()
			fmt.Println("\nGame over.")
			return nil
		}

		var err error
		if session.Combat != nil && session.Combat.IsActive {
			session, err = combatTurn(ctx, svc, in, session)
		} else {
			session, err = sceneTurn(ctx, svc, in, session)
		}
		if err != nil {
			return err
		}
		if session == nil {
			tale.print()
			return nil
		}

		// Give any pending scene transition time to land, then reload.
		if sceneDelay > 0 {
			time.Sleep(sceneDelay + 100*time.Millisecond)
			got, err := svc.GetSession(ctx, &adventure.GetSessionInput{SessionID: session.ID})
			if err != nil {
				return err
			}
			session = got.Session
		}
		printed = printLog(session, printed)
	}
}

func buildServices() (adventure.Service, character.Service, *journal, error) {
	roller := dice.DefaultRoller

	eng, err := engine.New(&engine.Config{Roller: roller})
	if err != nil {
		return nil, nil, nil, err
	}
	questSvc, err := quest.NewOrchestrator(&quest.Config{
		Roller:      roller,
		IDGenerator: idgen.NewUUID("quest"),
	})
	if err != nil {
		return nil, nil, nil, err
	}
	combatSvc, err := combat.NewOrchestrator(&combat.Config{
		Engine:       eng,
		QuestService: questSvc,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	sceneSvc, err := scene.NewOrchestrator(&scene.Config{
		Engine:      eng,
		Roller:      roller,
		IDGenerator: idgen.NewUUID("scene"),
	})
	if err != nil {
		return nil, nil, nil, err
	}
	charSvc, err := character.NewOrchestrator(&character.Config{Engine: eng})
	if err != nil {
		return nil, nil, nil, err
	}

	repo := adventurerepo.NewInMemoryRepository()
	if redisAddr != "" {
		client, err := redisclient.NewClient(redisAddr, nil)
		if err != nil {
			return nil, nil, nil, err
		}
		repo = adventurerepo.NewRedisRepository(client)
	}

	bus := events.NewBus()
	tale := newJournal(bus)

	svc, err := adventure.NewOrchestrator(&adventure.Config{
		Repository:       repo,
		CharacterService: charSvc,
		SceneService:     sceneSvc,
		CombatService:    combatSvc,
		QuestService:     questSvc,
		Engine:           eng,
		EventBus:         bus,
		IDGenerator:      idgen.NewUUID("session"),
		Clock:            clock.New(),
		SceneDelay:       sceneDelay,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return svc, charSvc, tale, nil
}

// journal listens on the event bus and collects milestones so the run can
// be recounted when the session ends. Delayed scene transitions publish
// from a timer goroutine, so appends are guarded.
type journal struct {
	mu         sync.Mutex
	milestones []string
}

func newJournal(bus events.EventBus) *journal {
	j := &journal{}
	bus.SubscribeFunc(adventure.EventQuestAccepted, 0, j.handle)
	bus.SubscribeFunc(adventure.EventCombatStarted, 0, j.handle)
	bus.SubscribeFunc(adventure.EventEnemyDefeated, 0, j.handle)
	bus.SubscribeFunc(adventure.EventGameOver, 0, j.handle)
	return j
}

func (j *journal) handle(_ context.Context, e events.Event) error {
	var line string
	switch e.Type() {
	case adventure.EventQuestAccepted:
		line = fmt.Sprintf("Took on the quest %q", eventField(e, "quest_title"))
	case adventure.EventCombatStarted:
		line = fmt.Sprintf("Crossed blades with a %v", eventField(e, "enemy"))
	case adventure.EventEnemyDefeated:
		line = fmt.Sprintf("Slew a %v", eventField(e, "enemy"))
	case adventure.EventGameOver:
		line = fmt.Sprintf("Fell at level %v", eventField(e, "level"))
	default:
		return nil
	}
	j.mu.Lock()
	j.milestones = append(j.milestones, line)
	j.mu.Unlock()
	return nil
}

func (j *journal) print() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.milestones) == 0 {
		return
	}
	fmt.Println("\nThe tale of this run:")
	for _, m := range j.milestones {
		fmt.Printf("  %s\n", m)
	}
}

func eventField(e events.Event, key string) any {
	if v, ok := e.Context().Get(key); ok {
		return v
	}
	return "?"
}

// chooseClass offers the questionnaire or a direct pick.
func chooseClass(in *bufio.Scanner, charSvc character.Service) string {
	answer := prompt(in, "Answer a few questions to find your class? (y/n): ")
	if !strings.HasPrefix(strings.ToLower(answer), "y") {
		return chooseFrom(in, "Choose a class", rulebook.ClassNames())
	}

	answers := make(map[string]string)
	for _, q := range charSvc.Questionnaire().Questions {
		labels := make([]string, len(q.Options))
		for i, opt := range q.Options {
			labels[i] = opt.Label
		}
		picked := chooseFrom(in, q.Text, labels)
		for _, opt := range q.Options {
			if opt.Label == picked {
				answers[q.ID] = opt.Value
				break
			}
		}
	}

	out, err := charSvc.RecommendClass(&character.RecommendClassInput{Answers: answers})
	if err != nil {
		return "Fighter"
	}
	fmt.Printf("The signs point to: %s\n", out.ClassName)
	return out.ClassName
}

func sceneTurn(ctx context.Context, svc adventure.Service, in *bufio.Scanner, session *entities.Session) (*entities.Session, error) {
	sc := session.Scene
	if sc == nil {
		return session, nil
	}

	fmt.Println()
	for i, choice := range sc.Choices {
		fmt.Printf("  %d) %s\n", i+1, choice.Text)
	}
	fmt.Println("  (or: rest, camp, status, quit)")

	input := prompt(in, "> ")
	switch strings.ToLower(input) {
	case "quit", "q":
		fmt.Println("Farewell, adventurer.")
		return nil, nil
	case "status":
		printStatus(session.Character)
		return session, nil
	case "rest":
		out, err := svc.Rest(ctx, &adventure.RestInput{SessionID: session.ID, Kind: adventure.RestShort})
		if err != nil {
			return nil, err
		}
		return out.Session, nil
	case "camp":
		out, err := svc.Rest(ctx, &adventure.RestInput{SessionID: session.ID, Kind: adventure.RestLong})
		if err != nil {
			return nil, err
		}
		return out.Session, nil
	}

	idx, err := strconv.Atoi(input)
	if err != nil || idx < 1 || idx > len(sc.Choices) {
		fmt.Println("Pick a numbered choice.")
		return session, nil
	}

	out, err := svc.Choose(ctx, &adventure.ChooseInput{
		SessionID: session.ID,
		ChoiceID:  sc.Choices[idx-1].ID,
	})
	if err != nil {
		return nil, err
	}
	return out.Session, nil
}

func combatTurn(ctx context.Context, svc adventure.Service, in *bufio.Scanner, session *entities.Session) (*entities.Session, error) {
	fmt.Println("\n  (a)ttack  (s)pell  (p)otion  (f)lee")

	var action combat.Action
	switch strings.ToLower(prompt(in, "> ")) {
	case "a", "attack":
		action = combat.ActionAttack
	case "s", "spell":
		action = combat.ActionSpell
	case "p", "potion":
		action = combat.ActionPotion
	case "f", "flee":
		action = combat.ActionFlee
	default:
		fmt.Println("Pick an action.")
		return session, nil
	}

	out, err := svc.CombatAction(ctx, &adventure.CombatActionInput{
		SessionID: session.ID,
		Action:    action,
	})
	if err != nil {
		return nil, err
	}
	return out.Session, nil
}

// printLog prints log entries past the given index and returns the new high
// water mark.
func printLog(session *entities.Session, from int) int {
	for _, entry := range session.Log[from:] {
		switch entry.Severity {
		case entities.LogSuccess:
			fmt.Printf("+ %s\n", entry.Text)
		case entities.LogFailure:
			fmt.Printf("- %s\n", entry.Text)
		case entities.LogInfo:
			fmt.Printf("  %s\n", entry.Text)
		default:
			fmt.Println(entry.Text)
		}
	}
	return len(session.Log)
}

func printStatus(c *entities.Character) {
	fmt.Printf("%s, Level %d %s %s\n", c.Name, c.Level, c.Race.Name, c.Class.Name)
	fmt.Printf("HP %d/%d  XP %d/%d  Gold %dgp  Hit Dice %d/%d\n",
		c.HP.Current, c.HP.Max, c.XP, c.MaxXP, c.Wallet.GP, c.HP.HitDiceCurrent, c.HP.HitDiceMax)
	for _, q := range c.ActiveQuests() {
		for _, obj := range q.Objectives {
			fmt.Printf("Quest: %s (%d/%d %s)\n", q.Title, obj.Current, obj.Count, obj.Target)
		}
	}
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return "quit"
	}
	return strings.TrimSpace(in.Text())
}

func chooseFrom(in *bufio.Scanner, label string, options []string) string {
	fmt.Println(label + ":")
	for i, opt := range options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	for {
		idx, err := strconv.Atoi(prompt(in, "> "))
		if err == nil && idx >= 1 && idx <= len(options) {
			return options[idx-1]
		}
		fmt.Println("Pick a number from the list.")
	}
}

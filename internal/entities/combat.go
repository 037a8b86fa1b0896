package entities

// CombatantType tags a combatant as the player or an enemy.
type CombatantType string

// Combatant types.
const (
	CombatantPlayer CombatantType = "player"
	CombatantEnemy  CombatantType = "enemy"
)

// Combatant is a transient per-encounter snapshot. The player combatant's HP
// is the source of truth during combat and is synced back into the character
// after each round.
type Combatant struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Type       CombatantType `json:"type"`
	HP         int32         `json:"hp"`
	MaxHP      int32         `json:"max_hp"`
	AC         int32         `json:"ac"`
	Initiative int32         `json:"initiative"`
}

// CombatPhase is the combat state machine's position. Active is the only
// non-terminal phase; victory, defeat and fled all discard the state.
type CombatPhase string

// Combat phases.
const (
	CombatActive  CombatPhase = "active"
	CombatVictory CombatPhase = "victory"
	CombatDefeat  CombatPhase = "defeat"
	CombatFled    CombatPhase = "fled"
)

// CombatState is the turn-order state machine for one encounter. Transitions
// return new values rather than mutating in place so rounds are easy to
// reason about and test.
type CombatState struct {
	IsActive         bool        `json:"is_active"`
	Phase            CombatPhase `json:"phase"`
	TurnOrder        []Combatant `json:"turn_order"`
	CurrentTurnIndex int32       `json:"current_turn_index"`
	Log              []string    `json:"log"`
}

// Current returns the combatant whose turn it is.
func (s CombatState) Current() (Combatant, bool) {
	if len(s.TurnOrder) == 0 {
		return Combatant{}, false
	}
	idx := int(s.CurrentTurnIndex) % len(s.TurnOrder)
	return s.TurnOrder[idx], true
}

// Combatant returns the combatant of the given type.
func (s CombatState) Combatant(t CombatantType) (Combatant, bool) {
	for _, c := range s.TurnOrder {
		if c.Type == t {
			return c, true
		}
	}
	return Combatant{}, false
}

// NextTurn returns a copy of the state with the turn pointer advanced
// cyclically.
func (s CombatState) NextTurn() CombatState {
	next := s.clone()
	if len(next.TurnOrder) > 0 {
		next.CurrentTurnIndex = (next.CurrentTurnIndex + 1) % int32(len(next.TurnOrder))
	}
	return next
}

// WithCombatantHP returns a copy of the state with the named combatant's HP
// adjusted by delta, clamped to [0, max].
func (s CombatState) WithCombatantHP(t CombatantType, delta int32) CombatState {
	next := s.clone()
	for i := range next.TurnOrder {
		if next.TurnOrder[i].Type != t {
			continue
		}
		hp := next.TurnOrder[i].HP + delta
		if hp < 0 {
			hp = 0
		}
		if hp > next.TurnOrder[i].MaxHP {
			hp = next.TurnOrder[i].MaxHP
		}
		next.TurnOrder[i].HP = hp
	}
	return next
}

// WithLogLine returns a copy of the state with a line appended to the combat
// log.
func (s CombatState) WithLogLine(line string) CombatState {
	next := s.clone()
	next.Log = append(next.Log, line)
	return next
}

// Ended returns a copy of the state in the given terminal phase.
func (s CombatState) Ended(phase CombatPhase) CombatState {
	next := s.clone()
	next.IsActive = false
	next.Phase = phase
	return next
}

func (s CombatState) clone() CombatState {
	next := s
	next.TurnOrder = make([]Combatant, len(s.TurnOrder))
	copy(next.TurnOrder, s.TurnOrder)
	next.Log = make([]string, len(s.Log))
	copy(next.Log, s.Log)
	return next
}

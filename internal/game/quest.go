package game

import (
	"fmt"
	"slices"
	"time"

	"github.com/pixil98/go-errors"
)

// Objective types.
const (
	ObjectiveVisit   = "visit"
	ObjectiveCollect = "collect"
	ObjectiveDefeat  = "defeat"
	ObjectiveUse     = "use"
	ObjectiveSolve   = "solve"
)

// Failure condition types.
const (
	FailTimeLimit     = "timeLimit"
	FailItemLost      = "itemLost"
	FailEnemyDefeated = "enemyDefeated"
	FailLocationLeft  = "locationLeft"
)

type QuestState string

const (
	QuestInactive  QuestState = "inactive"
	QuestActive    QuestState = "active"
	QuestCompleted QuestState = "completed"
	QuestFailed    QuestState = "failed"
)

type Objective struct {
	Type        string `json:"type"`
	Target      string `json:"target"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
}

func (o Objective) Validate() error {
	switch o.Type {
	case ObjectiveVisit, ObjectiveCollect, ObjectiveDefeat, ObjectiveUse, ObjectiveSolve:
	default:
		return fmt.Errorf("unknown objective type %q", o.Type)
	}
	if o.Target == "" {
		return fmt.Errorf("%s objective: target is required", o.Type)
	}
	if o.Quantity < 1 {
		return fmt.Errorf("%s objective: quantity must be positive", o.Type)
	}
	return nil
}

func (o Objective) String() string {
	if o.Description != "" {
		return o.Description
	}
	return fmt.Sprintf("%s %s", o.Type, o.Target)
}

// ObjectiveProgress tracks one objective of a running quest.
type ObjectiveProgress struct {
	Objective
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

// FailureCondition ends an active quest in failure when it holds. Seconds
// applies to timeLimit, Target names the item, enemy or room for the others.
type FailureCondition struct {
	Type    string `json:"type"`
	Seconds int    `json:"seconds,omitempty"`
	Target  string `json:"target,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func (f FailureCondition) Validate() error {
	switch f.Type {
	case FailTimeLimit:
		if f.Seconds < 1 {
			return fmt.Errorf("timeLimit condition: seconds must be positive")
		}
	case FailItemLost, FailEnemyDefeated, FailLocationLeft:
		if f.Target == "" {
			return fmt.Errorf("%s condition: target is required", f.Type)
		}
	default:
		return fmt.Errorf("unknown failure condition %q", f.Type)
	}
	return nil
}

// Stage is one step of a staged quest. Stage zero uses the quest's own
// objectives; later stages add theirs when reached.
type Stage struct {
	Title      string      `json:"title,omitempty"`
	Objectives []Objective `json:"objectives,omitempty"`
}

type Rewards struct {
	Experience int      `json:"experience,omitempty"`
	Items      []string `json:"items,omitempty"`
}

// Quest defines a task for the player.
type Quest struct {
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Objectives        []Objective        `json:"objectives"`
	Rewards           Rewards            `json:"rewards"`
	Prerequisites     []string           `json:"prerequisites,omitempty"`
	AutoStart         bool               `json:"autoStart,omitempty"`
	Hidden            bool               `json:"hidden,omitempty"`
	Optional          bool               `json:"optional,omitempty"`
	TimeLimit         int                `json:"timeLimit,omitempty"` // seconds
	FailureConditions []FailureCondition `json:"failureConditions,omitempty"`
	Stages            []Stage            `json:"stages,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (q *Quest) Validate() error {
	el := errors.NewErrorList()

	if q.Title == "" {
		el.Add(fmt.Errorf("quest title is required"))
	}
	if len(q.Objectives) == 0 {
		el.Add(fmt.Errorf("quest needs at least one objective"))
	}
	for _, o := range q.Objectives {
		el.Add(o.Validate())
	}
	for i, s := range q.Stages {
		for _, o := range s.Objectives {
			if err := o.Validate(); err != nil {
				el.Add(fmt.Errorf("stage %d: %w", i, err))
			}
		}
	}
	for _, f := range q.FailureConditions {
		el.Add(f.Validate())
	}
	if q.TimeLimit < 0 {
		el.Add(fmt.Errorf("timeLimit must not be negative"))
	}

	return el.Err()
}

// QuestInstance is the live state of a Quest definition.
type QuestInstance struct {
	Id    string
	Quest *Quest

	State         QuestState
	Objectives    []ObjectiveProgress
	Stage         int
	Hidden        bool
	StartedAt     time.Time
	CompletedAt   time.Time
	FailureReason string
}

func NewQuestInstance(id string, def *Quest) *QuestInstance {
	qi := &QuestInstance{Id: id, Quest: def}
	qi.Reset()
	return qi
}

func (qi *QuestInstance) Reset() {
	qi.State = QuestInactive
	qi.Objectives = make([]ObjectiveProgress, 0, len(qi.Quest.Objectives))
	for _, o := range qi.Quest.Objectives {
		qi.Objectives = append(qi.Objectives, ObjectiveProgress{Objective: o})
	}
	qi.Stage = 0
	qi.Hidden = qi.Quest.Hidden
	qi.StartedAt = time.Time{}
	qi.CompletedAt = time.Time{}
	qi.FailureReason = ""
}

func (qi *QuestInstance) Title() string {
	return qi.Quest.Title
}

func (qi *QuestInstance) Completed() bool {
	return qi.State == QuestCompleted
}

func (qi *QuestInstance) Active() bool {
	return qi.State == QuestActive
}

// CanStart reports whether the quest is inactive with every prerequisite
// completed.
func (qi *QuestInstance) CanStart(completed func(id string) bool) bool {
	if qi.State != QuestInactive {
		return false
	}
	for _, id := range qi.Quest.Prerequisites {
		if !completed(id) {
			return false
		}
	}
	return true
}

// Start activates an inactive quest.
func (qi *QuestInstance) Start(now time.Time) bool {
	if qi.State != QuestInactive {
		return false
	}
	qi.State = QuestActive
	qi.StartedAt = now
	qi.Hidden = false
	return true
}

// UpdateObjective advances the first unfinished objective matching kind and
// target. When that finishes every objective, the quest moves to its next
// stage or, on the last stage, completes. It reports whether anything
// changed.
func (qi *QuestInstance) UpdateObjective(kind, target string, amount int, now time.Time) bool {
	if qi.State != QuestActive || amount <= 0 {
		return false
	}

	i := slices.IndexFunc(qi.Objectives, func(o ObjectiveProgress) bool {
		return o.Type == kind && o.Target == target && !o.Completed
	})
	if i < 0 {
		return false
	}

	o := &qi.Objectives[i]
	o.Progress += amount
	if o.Progress >= o.Quantity {
		o.Progress = o.Quantity
		o.Completed = true
	}

	if qi.allComplete() {
		if !qi.AdvanceStage() {
			qi.complete(now)
		}
	}
	return true
}

func (qi *QuestInstance) allComplete() bool {
	for _, o := range qi.Objectives {
		if !o.Completed {
			return false
		}
	}
	return true
}

func (qi *QuestInstance) complete(now time.Time) {
	qi.State = QuestCompleted
	qi.CompletedAt = now
}

// AdvanceStage moves an active quest to its next stage, adding the stage's
// objectives. It returns false on the last stage.
func (qi *QuestInstance) AdvanceStage() bool {
	if qi.State != QuestActive || qi.Stage >= len(qi.Quest.Stages)-1 {
		return false
	}

	qi.Stage++
	for _, o := range qi.Quest.Stages[qi.Stage].Objectives {
		qi.Objectives = append(qi.Objectives, ObjectiveProgress{Objective: o})
	}
	return true
}

// Fail ends an active quest.
func (qi *QuestInstance) Fail(reason string) bool {
	if qi.State != QuestActive {
		return false
	}
	qi.State = QuestFailed
	qi.FailureReason = reason
	return true
}

// FailureContext answers the questions failure conditions ask of the world.
type FailureContext interface {
	HasItem(id string) bool
	EnemyDefeated(id string) bool
	CurrentRoomId() string
}

// CheckFailure fails the quest on the first condition that holds, the
// quest's own time limit included. It reports whether the quest failed.
func (qi *QuestInstance) CheckFailure(ctx FailureContext, now time.Time) bool {
	if qi.State != QuestActive {
		return false
	}

	conds := qi.Quest.FailureConditions
	if qi.Quest.TimeLimit > 0 {
		conds = append(slices.Clone(conds), FailureCondition{
			Type:    FailTimeLimit,
			Seconds: qi.Quest.TimeLimit,
			Reason:  "You ran out of time.",
		})
	}

	for _, c := range conds {
		if qi.holds(c, ctx, now) {
			return qi.Fail(c.Reason)
		}
	}
	return false
}

func (qi *QuestInstance) holds(c FailureCondition, ctx FailureContext, now time.Time) bool {
	switch c.Type {
	case FailTimeLimit:
		return now.Sub(qi.StartedAt) > time.Duration(c.Seconds)*time.Second
	case FailItemLost:
		return !ctx.HasItem(c.Target)
	case FailEnemyDefeated:
		return ctx.EnemyDefeated(c.Target)
	case FailLocationLeft:
		return ctx.CurrentRoomId() != c.Target
	}
	return false
}

// Progress is the completion percentage, counting partial progress.
func (qi *QuestInstance) Progress() int {
	switch qi.State {
	case QuestCompleted:
		return 100
	case QuestInactive:
		return 0
	}
	if len(qi.Objectives) == 0 {
		return 0
	}

	total := 0.0
	for _, o := range qi.Objectives {
		if o.Completed {
			total++
		} else {
			total += float64(o.Progress) / float64(o.Quantity)
		}
	}
	return int(total / float64(len(qi.Objectives)) * 100)
}

// TimeRemaining returns the time left on a time-limited active quest.
func (qi *QuestInstance) TimeRemaining(now time.Time) (time.Duration, bool) {
	if qi.Quest.TimeLimit == 0 || qi.State != QuestActive {
		return 0, false
	}
	left := time.Duration(qi.Quest.TimeLimit)*time.Second - now.Sub(qi.StartedAt)
	return max(left, 0), true
}

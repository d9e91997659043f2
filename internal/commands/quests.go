package commands

import (
	"fmt"

	"github.com/pixil98/go-adventure/internal/game"
)

// progress starts quests that became eligible, records progress against
// every active quest and pays out completed ones. Completing a quest can
// make another eligible, so eligibility is checked again afterwards.
func (s *Session) progress(kind, target string) {
	now := s.now()
	s.startQuests()

	completed := false
	for _, ev := range s.world.RecordProgress(kind, target, 1, now) {
		q := ev.Quest
		switch {
		case q.State == game.QuestCompleted:
			s.message(narrate(msgQuestCompleted, q.Quest))
			s.reward(q)
			completed = true
		case q.State == game.QuestFailed:
			s.message(narrate(msgQuestFailed, struct{ Title, Reason string }{q.Title(), q.FailureReason}))
		case q.Stage != ev.Stage:
			s.message(narrate(msgQuestStage, struct{ Title, Stage string }{q.Title(), stageTitle(q)}))
		}
		s.publishQuest(q)
	}

	if completed {
		s.startQuests()
	}
}

func stageTitle(q *game.QuestInstance) string {
	if q.Stage < len(q.Quest.Stages) && q.Quest.Stages[q.Stage].Title != "" {
		return q.Quest.Stages[q.Stage].Title
	}
	return fmt.Sprintf("stage %d", q.Stage+1)
}

func (s *Session) startQuests() {
	for _, q := range s.world.StartEligibleQuests(s.now()) {
		if !q.Hidden {
			s.message(narrate(msgQuestStarted, q.Quest))
		}
		s.publishQuest(q)
	}
}

func (s *Session) reward(q *game.QuestInstance) {
	p := s.world.Player
	r := q.Quest.Rewards

	if r.Experience > 0 {
		s.gainExperience(r.Experience)
	}
	if len(r.Items) > 0 {
		for _, id := range r.Items {
			p.AddItem(id)
		}
		s.message(narrate(msgQuestReward, struct{ Items []string }{names(s.itemInstances(r.Items))}))
		s.publishInventory()
	}
}

func (s *Session) gainExperience(amount int) {
	p := s.world.Player
	s.message(narrate(msgExperience, struct{ Amount int }{amount}))
	if p.GainExperience(amount) > 0 {
		s.message(narrate(msgLevelUp, p))
	}
	s.publishStats()
}

func (s *Session) itemInstances(ids []string) []*game.ItemInstance {
	var out []*game.ItemInstance
	for _, id := range ids {
		if item, ok := s.world.Registry.Items.Get(id); ok {
			out = append(out, item)
		}
	}
	return out
}

package engine

import (
	"github.com/mindmirror/mindmirror/internal/alignment"
	"github.com/mindmirror/mindmirror/internal/domain"
)

// FeedbackKind tags an achievement-trigger emission.
type FeedbackKind string

const (
	FeedbackCrown  FeedbackKind = "crown"
	FeedbackDamage FeedbackKind = "damage"
)

// FeedbackEvent is one emission from the achievement/effect trigger.
type FeedbackEvent struct {
	Kind       FeedbackKind
	Score      int
	Severity   domain.EffectSeverity // damage only
	CrownColor domain.CrownColor     // crown only
	CrownCount int                   // crown only
}

// EvaluateAlignment reads the overall score and emits crown or damage
// events. Crowns are rate-limited by the configured cooldown; damage is
// suppressed while a modal is open and during the post-creation grace
// period. All feedback is suppressed until enough total time has been
// tracked to mean anything.
func (s *State) EvaluateAlignment(modalOpen bool) []FeedbackEvent {
	score := s.OverallAlignment()
	nowMs := s.nowMillis()

	if score != s.lastAlignment {
		s.events.Append(domain.EventAlignmentChange, map[string]any{
			"oldAlignment": s.lastAlignment,
			"newAlignment": score,
		}, nowMs)
		s.lastAlignment = score
	}

	if !alignment.FeedbackEligible(s.TotalTrackedSeconds()) {
		return nil
	}

	var out []FeedbackEvent
	if score == 100 && s.crownReady(nowMs) {
		s.achievements.CrownCount++
		s.achievements.LastCrownTime = nowMs
		s.achievements.CrownColor = crownColorFor(s.achievements.CrownCount)
		if s.achievements.CrownCount >= 100 && score >= 40 {
			s.achievements.IsPermanentBackground = true
		}
		out = append(out, FeedbackEvent{
			Kind:       FeedbackCrown,
			Score:      score,
			CrownColor: s.achievements.CrownColor,
			CrownCount: s.achievements.CrownCount,
		})
	}

	if score < 95 && !modalOpen && !s.inCreationGrace(nowMs) {
		out = append(out, FeedbackEvent{
			Kind:     FeedbackDamage,
			Score:    score,
			Severity: damageSeverity(score),
		})
	}
	return out
}

func (s *State) crownReady(nowMs int64) bool {
	if s.achievements.LastCrownTime == 0 {
		return true
	}
	// The cooldown is exclusive: a crown exactly on the boundary waits.
	return nowMs-s.achievements.LastCrownTime > s.cfg.CrownCooldown.Milliseconds()
}

func (s *State) inCreationGrace(nowMs int64) bool {
	return s.lastCreatedAt != 0 && nowMs-s.lastCreatedAt <= s.cfg.CreationGrace.Milliseconds()
}

func crownColorFor(count int) domain.CrownColor {
	switch {
	case count >= 10:
		return domain.CrownBlue
	case count >= 5:
		return domain.CrownGreen
	default:
		return domain.CrownGold
	}
}

func damageSeverity(score int) domain.EffectSeverity {
	switch {
	case score < 10:
		return domain.EffectBarrage
	case score < 30:
		return domain.EffectMulti
	case score < 40:
		return domain.EffectDouble
	default:
		return domain.EffectFlash
	}
}

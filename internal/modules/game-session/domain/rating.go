package domain

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

const (
	MinStars = 1
	MaxStars = 5

	maxNotesLength = 500
)

type ReportReason string

const (
	ReportNoShow          ReportReason = "no_show"
	ReportUnsportsmanlike ReportReason = "unsportsmanlike"
	ReportScoreDispute    ReportReason = "score_dispute"
	ReportHarassment      ReportReason = "harassment"
	ReportOther           ReportReason = "other"
)

var knownReportReasons = []ReportReason{
	ReportNoShow,
	ReportUnsportsmanlike,
	ReportScoreDispute,
	ReportHarassment,
	ReportOther,
}

type Rating struct {
	TargetPlayerID uuid.UUID      `json:"targetPlayerId"`
	Stars          int            `json:"stars"`
	Skipped        bool           `json:"skipped"`
	ReportReasons  []ReportReason `json:"reportReasons,omitempty"`
	Notes          string         `json:"notes,omitempty"`
}

// Recorded reports whether a rating or a counted skip was given.
func (r Rating) Recorded() bool {
	return r.Stars > 0 || r.Skipped
}

// complete closes the match and starts collecting ratings for everyone but
// the local user, in roster order.
func (s Session) complete() (Session, error) {
	next, err := s.transition(PhaseCompleted)
	if err != nil {
		return s, err
	}

	next.RatingTargets = make([]uuid.UUID, 0, len(next.Roster))
	for _, p := range next.Roster {
		if !p.IsLocalUser {
			next.RatingTargets = append(next.RatingTargets, p.ID)
		}
	}
	next.RatingCursor = 0

	return next.settleIfRated(), nil
}

// RatingComplete reports whether the cursor has passed the last rating target.
func (s Session) RatingComplete() bool {
	return s.Phase == PhaseCompleted && s.RatingCursor >= len(s.RatingTargets)
}

// CurrentRatingTarget returns the player awaiting a rating, if any.
func (s Session) CurrentRatingTarget() (uuid.UUID, bool) {
	if s.Phase != PhaseCompleted || s.RatingComplete() {
		return uuid.Nil, false
	}
	return s.RatingTargets[s.RatingCursor], true
}

func (s Session) requireRatingTarget(target uuid.UUID) error {
	if err := s.requirePhase(PhaseCompleted); err != nil {
		return err
	}

	current, _ := s.CurrentRatingTarget()
	if current != target {
		return fmt.Errorf("%w: expected rating for %s, got %s", ErrInvalidTransition, current, target)
	}

	return nil
}

func Rate(s Session, target uuid.UUID, stars int) (Session, error) {
	if s.RatingComplete() {
		return s, nil
	}

	if stars < MinStars || stars > MaxStars {
		return s, fmt.Errorf("%w: stars must be in [%d, %d], got %d", ErrInvalidRating, MinStars, MaxStars, stars)
	}

	if err := s.requireRatingTarget(target); err != nil {
		return s, err
	}

	next := s.clone()
	rating := next.Ratings[target]
	rating.TargetPlayerID = target
	rating.Stars = stars
	rating.Skipped = false
	next.Ratings[target] = rating

	return next.advanceRating(), nil
}

// Skip moves past the current target without a star value. Whether the skip
// counts as a rating depends on the session's SkipPolicy.
func Skip(s Session, target uuid.UUID) (Session, error) {
	if s.RatingComplete() {
		return s, nil
	}

	if err := s.requireRatingTarget(target); err != nil {
		return s, err
	}

	next := s.clone()
	if next.Policy.SkipPolicy != SkipLeavesUnrated {
		rating := next.Ratings[target]
		rating.TargetPlayerID = target
		rating.Stars = 0
		rating.Skipped = true
		next.Ratings[target] = rating
	}

	return next.advanceRating(), nil
}

// Report attaches misconduct reasons to a player. It is independent of the
// rating cursor and may be filed before or after the player is rated.
func Report(s Session, target uuid.UUID, reasons []ReportReason, notes string) (Session, error) {
	if err := s.requirePhase(PhaseCompleted); err != nil {
		return s, err
	}

	if s.RatingComplete() {
		return s, fmt.Errorf("%w: rating already complete", ErrInvalidTransition)
	}

	if !slices.Contains(s.RatingTargets, target) {
		return s, fmt.Errorf("%w: %s", ErrPlayerNotFound, target)
	}

	if len(reasons) == 0 {
		return s, fmt.Errorf("%w: at least one reason is required", ErrInvalidReport)
	}

	for _, r := range reasons {
		if !slices.Contains(knownReportReasons, r) {
			return s, fmt.Errorf("%w: unknown reason '%s'", ErrInvalidReport, r)
		}
	}

	if len(notes) > maxNotesLength {
		return s, fmt.Errorf("%w: notes longer than %d characters", ErrInvalidReport, maxNotesLength)
	}

	next := s.clone()
	rating := next.Ratings[target]
	rating.TargetPlayerID = target
	rating.ReportReasons = slices.Clone(reasons)
	rating.Notes = notes
	next.Ratings[target] = rating

	return next, nil
}

func (s Session) advanceRating() Session {
	s.RatingCursor++
	return s.settleIfRated()
}

func (s Session) settleIfRated() Session {
	if s.RatingComplete() && s.Reward == nil {
		reward := Settle(s)
		s.Reward = &reward
	}
	return s
}

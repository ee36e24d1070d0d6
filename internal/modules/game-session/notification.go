package gamesession

import (
	"slices"

	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"
)

type NotificationKind string

const (
	NotificationSnapshot          NotificationKind = "snapshot"
	NotificationRosterChanged     NotificationKind = "roster_changed"
	NotificationProposalSubmitted NotificationKind = "proposal_submitted"
	NotificationVoteCast          NotificationKind = "vote_cast"
	NotificationPhaseChanged      NotificationKind = "phase_changed"
	NotificationRatingRecorded    NotificationKind = "rating_recorded"
	NotificationSettled           NotificationKind = "settled"
)

type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Phase   domain.Phase     `json:"phase"`
	Session domain.Session   `json:"session"`
}

func newNotification(kind NotificationKind, s domain.Session) Notification {
	return Notification{Kind: kind, Phase: s.Phase, Session: s}
}

// notificationsFor lists what observers need to hear about after action
// moved the session from prev to next.
func notificationsFor(action domain.Action, prev, next domain.Session) []Notification {
	var notifications []Notification

	if prev.HostID != next.HostID || !slices.Equal(prev.Roster, next.Roster) {
		notifications = append(notifications, newNotification(NotificationRosterChanged, next))
	}

	if next.ActiveProposal != nil && (prev.ActiveProposal == nil || prev.ActiveProposal.Round != next.ActiveProposal.Round) {
		notifications = append(notifications, newNotification(NotificationProposalSubmitted, next))
	}

	switch action.(type) {
	case domain.CastVoteAction:
		notifications = append(notifications, newNotification(NotificationVoteCast, next))
	case domain.RateAction, domain.SkipAction, domain.ReportAction:
		notifications = append(notifications, newNotification(NotificationRatingRecorded, next))
	}

	if prev.Phase != next.Phase {
		notifications = append(notifications, newNotification(NotificationPhaseChanged, next))
	}

	if prev.Reward == nil && next.Reward != nil {
		notifications = append(notifications, newNotification(NotificationSettled, next))
	}

	return notifications
}

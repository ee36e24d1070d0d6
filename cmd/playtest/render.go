package main

import (
	"fmt"
	"strconv"

	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/pterm/pterm"
)

func render(n gamesession.Notification) {
	s := n.Session

	switch n.Kind {
	case gamesession.NotificationSnapshot, gamesession.NotificationRosterChanged:
		renderRoster(s)
	case gamesession.NotificationPhaseChanged:
		pterm.DefaultSection.Println(phaseTitle(s))
		if s.Phase == domain.PhaseReady || s.Phase == domain.PhaseInProgress {
			renderRoster(s)
		}
	case gamesession.NotificationProposalSubmitted:
		p := s.ActiveProposal
		pterm.Info.Printfln("Round %d: host proposes %s", p.Round, pterm.LightCyan(fmt.Sprintf("%d:%d", p.TeamAScore, p.TeamBScore)))
	case gamesession.NotificationVoteCast:
		tally := s.Tally()
		pterm.Info.Printfln("Votes: %s agree, %s reject, %d needed", pterm.LightGreen(tally.Agreed), pterm.LightRed(tally.Disagreed), tally.Threshold)
	case gamesession.NotificationRatingRecorded:
		pterm.Info.Printfln("Rated %d of %d players", s.RatingCursor, len(s.RatingTargets))
	case gamesession.NotificationSettled:
		renderReward(s)
	}
}

func phaseTitle(s domain.Session) string {
	switch s.Phase {
	case domain.PhaseInProgress:
		return "Match in progress"
	case domain.PhaseCompleted:
		return fmt.Sprintf("Final score %d:%d", s.FinalScore.TeamAScore, s.FinalScore.TeamBScore)
	case domain.PhaseCancelled:
		return "Session cancelled"
	default:
		return "Phase: " + s.Phase.String()
	}
}

func renderRoster(s domain.Session) {
	data := pterm.TableData{{"Player", "Team", "Skill", "Ready", "Role"}}

	for _, p := range s.Roster {
		name := p.DisplayName
		if p.IsLocalUser {
			name = pterm.LightCyan(name + " (you)")
		}

		ready := pterm.LightRed("no")
		if p.Ready {
			ready = pterm.LightGreen("yes")
		}

		role := ""
		if p.IsHost {
			role = "host"
		}

		data = append(data, []string{name, p.Team.String(), p.SkillLevel.String(), ready, role})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
	pterm.Println(fmt.Sprintf("%d/%d ready", s.CountReady(), len(s.Roster)))
}

func renderReward(s domain.Session) {
	if s.Reward == nil {
		return
	}

	box := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	body := pterm.Sprintfln("Points: %s", pterm.LightGreen(strconv.Itoa(s.Reward.Points))) +
		pterm.Sprintfln("Reliability: +%d", s.Reward.ReliabilityDelta) +
		pterm.Sprintfln("Rounds: %d", s.Round)

	box.WithTitle(pterm.LightYellow("|REWARD|")).WithTitleTopCenter().Println(body)
}

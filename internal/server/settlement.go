package server

import (
	"context"
	"strings"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	profilecommands "github.com/eskrenkovic/matchday/internal/modules/profile/commands"
	profiledomain "github.com/eskrenkovic/matchday/internal/modules/profile/domain"

	"github.com/eskrenkovic/mediator-go"
)

// sendSettlement hands a settled session over to the profile slice.
func sendSettlement(ctx context.Context, settlement gamesession.Settlement) error {
	_, err := mediator.Send[profilecommands.ApplySettlementCommand, core.Unit](ctx, settlementCommand(settlement))
	return err
}

func settlementCommand(settlement gamesession.Settlement) profilecommands.ApplySettlementCommand {
	ratings := make([]profiledomain.PlayerRating, 0, len(settlement.Ratings))
	for _, rating := range settlement.Ratings {
		reasons := make([]string, 0, len(rating.ReportReasons))
		for _, reason := range rating.ReportReasons {
			reasons = append(reasons, string(reason))
		}

		ratings = append(ratings, profiledomain.PlayerRating{
			SessionID:     settlement.SessionID,
			RaterID:       settlement.PlayerID,
			TargetID:      rating.TargetPlayerID,
			Stars:         rating.Stars,
			Skipped:       rating.Skipped,
			ReportReasons: strings.Join(reasons, ","),
			Notes:         rating.Notes,
		})
	}

	return profilecommands.ApplySettlementCommand{
		SessionID:        settlement.SessionID,
		PlayerID:         settlement.PlayerID,
		TeamAScore:       settlement.FinalScore.TeamAScore,
		TeamBScore:       settlement.FinalScore.TeamBScore,
		Rounds:           settlement.Rounds,
		Points:           settlement.Reward.Points,
		ReliabilityDelta: settlement.Reward.ReliabilityDelta,
		Ratings:          ratings,
	}
}

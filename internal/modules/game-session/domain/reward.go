package domain

// Settle computes the reward earned for a completed session. The organizer
// path pays the organizer bonus; joining someone else's game pays the
// participant bonus. Nothing else about the session affects the result.
func Settle(s Session) Reward {
	policy := s.Policy.Reward

	points := policy.ParticipantPoints
	if s.IsOrganizer() {
		points = policy.OrganizerPoints
	}

	return Reward{
		Points:           points,
		ReliabilityDelta: policy.ReliabilityBonus,
	}
}

package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/pterm/pterm"
)

const skipOption = "skip"

type interactiveDecider struct{}

func (interactiveDecider) confirm(_ domain.Session, question string) bool {
	ok, err := pterm.DefaultInteractiveConfirm.WithDefaultText(question).WithDefaultValue(true).Show()
	if err != nil {
		pterm.Error.Println(err)
		return true
	}
	return ok
}

func (interactiveDecider) score(_ domain.Session, title string) (int, int) {
	for {
		input, err := pterm.DefaultInteractiveTextInput.WithDefaultText(title + " (A:B)").Show()
		if err != nil {
			pterm.Error.Println(err)
			continue
		}

		a, b, err := parseScore(input)
		if err != nil {
			pterm.Warning.Println(err)
			continue
		}
		return a, b
	}
}

func (interactiveDecider) stars(_ domain.Session, target domain.Player) (int, bool) {
	options := []string{"5", "4", "3", "2", "1", skipOption}

	selected, err := pterm.DefaultInteractiveSelect.
		WithDefaultText(fmt.Sprintf("Rate %s", target.DisplayName)).
		WithOptions(options).
		Show()
	if err != nil || selected == skipOption {
		return 0, true
	}

	stars, _ := strconv.Atoi(selected)
	return stars, false
}

func parseScore(input string) (int, int, error) {
	a, b, found := strings.Cut(strings.TrimSpace(input), ":")
	if !found {
		return 0, 0, fmt.Errorf("expected a score like 21:17, got '%s'", input)
	}

	teamA, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid team A score - '%s'", a)
	}

	teamB, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid team B score - '%s'", b)
	}

	if teamA < 0 || teamB < 0 {
		return 0, 0, fmt.Errorf("scores must be non-negative")
	}

	return teamA, teamB, nil
}

// autoDecider plays the local user without prompting.
type autoDecider struct {
	gen              *rand.Rand
	agreeProbability float64
}

func (d autoDecider) confirm(s domain.Session, _ string) bool {
	if s.Phase == domain.PhaseVoting || s.Phase == domain.PhaseRevoting {
		return d.gen.Float64() < d.agreeProbability
	}
	return true
}

func (d autoDecider) score(s domain.Session, _ string) (int, int) {
	if s.Phase == domain.PhaseArbitration && s.PreviousProposal != nil {
		return s.PreviousProposal.TeamAScore, s.PreviousProposal.TeamBScore
	}
	return d.gen.Intn(22), d.gen.Intn(22)
}

func (d autoDecider) stars(domain.Session, domain.Player) (int, bool) {
	if d.gen.Intn(6) == 0 {
		return 0, true
	}
	return 3 + d.gen.Intn(3), false
}

package commands

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_ApplySettlementCommand_Validate(t *testing.T) {
	valid := ApplySettlementCommand{SessionID: uuid.New(), PlayerID: uuid.New(), Rounds: 1}

	tests := []struct {
		name    string
		command func() ApplySettlementCommand
		valid   bool
	}{
		{"valid", func() ApplySettlementCommand { return valid }, true},
		{"missing session", func() ApplySettlementCommand { c := valid; c.SessionID = uuid.Nil; return c }, false},
		{"missing player", func() ApplySettlementCommand { c := valid; c.PlayerID = uuid.Nil; return c }, false},
		{"no rounds", func() ApplySettlementCommand { c := valid; c.Rounds = 0; return c }, false},
		{"negative score", func() ApplySettlementCommand { c := valid; c.TeamBScore = -1; return c }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			err := tt.command().Validate()

			// Assert
			require.Equal(t, tt.valid, err == nil)
		})
	}
}

package env

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_GetDurationOrDefault(t *testing.T) {
	// Arrange
	t.Setenv("TEST_DURATION", "90s")

	// Act
	d := GetDurationOrDefault("TEST_DURATION", time.Second)

	// Assert
	require.Equal(t, 90*time.Second, d)
	require.Equal(t, time.Minute, GetDurationOrDefault("TEST_DURATION_MISSING", time.Minute))
}

func Test_GetOrDefault_Falls_Back_On_Empty_Value(t *testing.T) {
	// Arrange
	t.Setenv("TEST_EMPTY", "")

	// Assert
	require.Equal(t, 3, GetIntOrDefault("TEST_EMPTY", 3))
	require.Equal(t, 0.5, GetFloatOrDefault("TEST_EMPTY", 0.5))
	require.True(t, GetBoolOrDefault("TEST_EMPTY", true))
	require.Equal(t, "fallback", GetStringOrDefault("TEST_EMPTY", "fallback"))
}

func Test_GetIntOrDefault_Panics_On_Invalid_Value(t *testing.T) {
	// Arrange
	t.Setenv("TEST_INT", "three")

	// Act
	defer func() {
		r := recover()

		// Assert
		err, ok := r.(error)
		require.True(t, ok)
		require.True(t, errors.Is(err, ErrConversionFailed))
	}()

	GetIntOrDefault("TEST_INT", 1)
}

func Test_MustGetString_Panics_When_Missing(t *testing.T) {
	// Assert
	require.PanicsWithError(t, errNotFound("TEST_MISSING").Error(), func() {
		MustGetString("TEST_MISSING")
	})
}

package statusflow

import (
	"testing"

	"campus-eats-api/models"

	"github.com/stretchr/testify/require"
)

func TestNextStates(t *testing.T) {
	require.ElementsMatch(t,
		[]models.OrderStatus{models.StatusConfirmed, models.StatusCancelled},
		NextStates(models.StatusPending))
	require.Equal(t,
		[]models.OrderStatus{models.StatusDelivered},
		NextStates(models.StatusReady))
	require.Empty(t, NextStates(models.StatusDelivered))
	require.Empty(t, NextStates(models.StatusCancelled))
}

func TestLifecycleStatesAreValid(t *testing.T) {
	for _, step := range Lifecycle() {
		require.True(t, step.From.Valid(), "from state %q", step.From)
		require.True(t, step.To.Valid(), "to state %q", step.To)
	}
}

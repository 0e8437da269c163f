package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	require.True(t, RoleStudent.Valid())
	require.True(t, RoleVendor.Valid())
	require.False(t, Role("admin").Valid())
	require.False(t, Role("").Valid())
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled} {
		require.True(t, s.Valid(), "status %q", s)
	}
	require.False(t, OrderStatus("shipped").Valid())
	require.False(t, OrderStatus("").Valid())
}

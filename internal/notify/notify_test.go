package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNotificationsStackInOrder(t *testing.T) {
	center := NewCenter()
	center.Push("s1", Success, "primero")
	center.Push("s1", Error, "segundo")
	center.Push("s2", Info, "otro")

	active := center.Active("s1")
	require.Len(t, active, 2)
	require.Equal(t, "primero", active[0].Message)
	require.Equal(t, "segundo", active[1].Message)
	require.Equal(t, Error, active[1].Kind)

	require.Len(t, center.Active("s2"), 1)
}

func TestNotificationsExpireAfterTTL(t *testing.T) {
	center := NewCenter()
	now := time.Now()
	center.SetClock(func() time.Time { return now })

	center.Push("s1", Success, "fugaz")
	require.Len(t, center.Active("s1"), 1)

	center.SetClock(func() time.Time { return now.Add(TTL - time.Millisecond) })
	require.Len(t, center.Active("s1"), 1)

	center.SetClock(func() time.Time { return now.Add(TTL) })
	require.Empty(t, center.Active("s1"))
}

func TestDismissDropsOnlyThatNotification(t *testing.T) {
	center := NewCenter()
	center.Push("s1", Success, "se queda")
	center.Push("s1", Success, "se va")

	active := center.Active("s1")
	center.Dismiss("s1", active[1].ID)

	remaining := center.Active("s1")
	require.Len(t, remaining, 1)
	require.Equal(t, "se queda", remaining[0].Message)
}

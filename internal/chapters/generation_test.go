package chapters

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerations(t *testing.T) {
	var g Generations

	require.False(t, g.IsCurrent(SlotPassage, 0))
	require.Equal(t, uint64(0), g.Latest(SlotPassage))

	first := g.Next(SlotPassage)
	require.True(t, g.IsCurrent(SlotPassage, first))

	second := g.Next(SlotPassage)
	require.False(t, g.IsCurrent(SlotPassage, first), "older generation is stale")
	require.True(t, g.IsCurrent(SlotPassage, second))

	other := g.Next(Slot("songs"))
	require.Equal(t, uint64(1), other, "slots are independent")
	require.True(t, g.IsCurrent(SlotPassage, second))
}

package ids_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go/ids"
)

func TestNewAnimId_Unique(t *testing.T) {
	a := ids.NewAnimId()
	b := ids.NewAnimId()
	require.NotEqual(t, a, b)
	require.NotEmpty(t, a)
}

func TestSequence_MonotonicFromOne(t *testing.T) {
	var seq ids.Sequence
	require.Equal(t, ids.Handle(1), seq.Next())
	require.Equal(t, ids.Handle(2), seq.Next())
	require.Equal(t, ids.Handle(3), seq.Next())
}

func TestSequence_Reset(t *testing.T) {
	var seq ids.Sequence
	seq.Next()
	seq.Next()
	seq.Reset()
	require.Equal(t, ids.Handle(1), seq.Next())
}

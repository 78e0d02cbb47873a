package vzerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go/vzerr"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := vzerr.New(vzerr.KindShapeError, "graphrt.EvalAll", fmt.Errorf("boom"))
	require.True(t, errors.Is(err, vzerr.ErrShapeError))
	require.False(t, errors.Is(err, vzerr.ErrSelectorError))
}

func TestError_UnwrapExposesCause(t *testing.T) {
	cause := errors.New("root cause")
	err := vzerr.New(vzerr.KindCycleDetected, "graphrt.LoadGraph", cause)
	require.ErrorIs(t, err, cause)
}

func TestNewf_FormatsCause(t *testing.T) {
	err := vzerr.Newf(vzerr.KindStrictParamError, "graphrt.SetParam", "node %q: want numeric", "n1")
	require.Contains(t, err.Error(), `node "n1"`)
	require.True(t, errors.Is(err, vzerr.ErrStrictParamError))
}

func TestNew_NilCause(t *testing.T) {
	err := vzerr.New(vzerr.KindOverflow, "anim.UpdateValues", nil)
	require.Nil(t, err.Unwrap())
	require.Equal(t, "anim.UpdateValues: overflow", err.Error())
}

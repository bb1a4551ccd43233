package types_test

import (
	"testing"

	"github.com/mdemirhan/dux/pkg/diskscan/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileNode_SharesEmptyChildren(t *testing.T) {
	a := types.NewFileNode("/r/a", "a", 10, 512)
	b := types.NewFileNode("/r/b", "b", 20, 1024)

	assert.Equal(t, 0, len(a.Children))
	assert.Equal(t, 0, len(b.Children))
	assert.False(t, a.IsDir())
}

func TestNewDirNode(t *testing.T) {
	d := types.NewDirNode("/r", "r")
	assert.True(t, d.IsDir())
	assert.Equal(t, int64(0), d.SizeBytes)
	assert.NotNil(t, d.Children)
}

func TestParseApplyTo(t *testing.T) {
	cases := map[string]types.ApplyTo{
		"file":  types.ApplyFile,
		"dir":   types.ApplyDir,
		"both":  types.ApplyBoth,
		"FILE":  types.ApplyFile,
		"bogus": types.ApplyBoth,
	}
	for in, want := range cases {
		assert.Equal(t, want, types.ParseApplyTo(in))
	}
}

func TestParseCategory(t *testing.T) {
	got, err := types.ParseCategory("build_artifact")
	require.NoError(t, err)
	assert.Equal(t, types.BuildArtifact, got)

	_, err = types.ParseCategory("nope")
	assert.ErrorIs(t, err, types.ErrUnknownCategory)
}

func TestParseSize(t *testing.T) {
	got, err := types.ParseSize("10MB")
	require.NoError(t, err)
	assert.Equal(t, int64(10*types.MiB), got)

	_, err = types.ParseSize("-1MB")
	assert.ErrorIs(t, err, types.ErrNegativeSize)

	_, err = types.ParseSize("not-a-size")
	assert.ErrorIs(t, err, types.ErrInvalidSize)
}

package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatchCmdBindsBuildTypeAndInheritance(t *testing.T) {
	t.Parallel()
	var got WatchOptions
	cmd := NewWatchCmd(func(ctx context.Context, opts WatchOptions) error {
		got = opts
		return nil
	})
	cmd.SetArgs([]string{"--build-type", "types", "--inheritance", "--out", "build"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "types", got.BuildType)
	assert.True(t, got.Inheritance)
	assert.True(t, got.InheritanceSet)
	assert.Equal(t, "build", got.OutDir)
}

func TestNewWatchCmdDefaultsInheritanceUnset(t *testing.T) {
	t.Parallel()
	var got WatchOptions
	cmd := NewWatchCmd(func(ctx context.Context, opts WatchOptions) error {
		got = opts
		return nil
	})
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.False(t, got.InheritanceSet)
}

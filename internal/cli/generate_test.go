package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerateCmdRejectsUnknownEnvironment(t *testing.T) {
	t.Parallel()
	called := false
	cmd := NewGenerateCmd(func(ctx context.Context, opts GenerateOptions) error {
		called = true
		return nil
	})
	cmd.SetArgs([]string{"--environment", "deno"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.False(t, called, "the run function must not execute when validation fails")
}

func TestNewGenerateCmdAcceptsGjs(t *testing.T) {
	t.Parallel()
	var got GenerateOptions
	cmd := NewGenerateCmd(func(ctx context.Context, opts GenerateOptions) error {
		got = opts
		return nil
	})
	cmd.SetArgs([]string{"--environment", "gjs", "--out", "build"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "gjs", got.Environment)
	assert.Equal(t, "build", got.OutDir)
}

func TestNewGenerateCmdRejectsUnknownBuildType(t *testing.T) {
	t.Parallel()
	called := false
	cmd := NewGenerateCmd(func(ctx context.Context, opts GenerateOptions) error {
		called = true
		return nil
	})
	cmd.SetArgs([]string{"--build-type", "umd"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.False(t, called, "the run function must not execute when validation fails")
}

func TestNewGenerateCmdBindsBuildTypeAndInheritance(t *testing.T) {
	t.Parallel()
	var got GenerateOptions
	cmd := NewGenerateCmd(func(ctx context.Context, opts GenerateOptions) error {
		got = opts
		return nil
	})
	cmd.SetArgs([]string{"--build-type", "lib", "--inheritance"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "lib", got.BuildType)
	assert.True(t, got.Inheritance)
	assert.True(t, got.InheritanceSet)
}

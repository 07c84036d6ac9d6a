package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nverrors "github.com/NVIDIA/driver-update/pkg/errors"
)

func setupDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SetupName), nil, 0o700))
	return dir
}

func TestRequestFlags(t *testing.T) {
	assert.Equal(t, []string{"-passive", "-noeula", "-nofinish"}, Request{}.Flags())
	assert.Equal(t, []string{"-passive", "-noeula", "-nofinish", "-clean"}, Request{Clean: true}.Flags())
}

func TestLaunch(t *testing.T) {
	dir := setupDir(t)
	var gotName string
	var gotArgs []string

	l := &Launcher{
		Run: func(_ context.Context, name string, args ...string) error {
			gotName = name
			gotArgs = args
			return nil
		},
	}

	require.NoError(t, l.Launch(t.Context(), Request{ExtractedDir: dir}))
	assert.Equal(t, filepath.Join(dir, SetupName), gotName)
	assert.Equal(t, []string{"-passive", "-noeula", "-nofinish"}, gotArgs)
}

func TestLaunchCleanFlag(t *testing.T) {
	dir := setupDir(t)
	var gotArgs []string

	l := &Launcher{
		Run: func(_ context.Context, _ string, args ...string) error {
			gotArgs = args
			return nil
		},
	}

	require.NoError(t, l.Launch(t.Context(), Request{ExtractedDir: dir, Clean: true}))
	assert.Contains(t, gotArgs, "-clean")
}

func TestLaunchMissingSetup(t *testing.T) {
	l := &Launcher{
		Run: func(context.Context, string, ...string) error {
			return nil
		},
	}

	err := l.Launch(t.Context(), Request{ExtractedDir: t.TempDir()})
	require.Error(t, err)
	assert.Equal(t, nverrors.ErrCodeInstaller, nverrors.CodeOf(err))
}

func TestLaunchStartFailure(t *testing.T) {
	dir := setupDir(t)
	l := &Launcher{
		Run: func(context.Context, string, ...string) error {
			return errors.New("access denied")
		},
	}

	err := l.Launch(t.Context(), Request{ExtractedDir: dir})
	require.Error(t, err)
	assert.Equal(t, nverrors.ErrCodeInstaller, nverrors.CodeOf(err))
}

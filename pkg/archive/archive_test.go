package archive

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

type fakeEnsurer struct {
	calls int
	err   error
}

func (f *fakeEnsurer) EnsureFile(_ context.Context, _, dest string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dest, []byte("tool"), 0o700)
}

func TestEnsureTool(t *testing.T) {
	dir := t.TempDir()
	e := &fakeEnsurer{}

	tool, err := EnsureTool(t.Context(), e, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ToolName), tool)
	assert.Equal(t, 1, e.calls)
}

func TestEnsureToolFailure(t *testing.T) {
	e := &fakeEnsurer{err: errors.New("connection reset")}

	_, err := EnsureTool(t.Context(), e, t.TempDir())
	require.Error(t, err)
	assert.Equal(t, nverrors.ErrCodeDownload, nverrors.CodeOf(err))
}

func TestExtract(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "extracted")
	var gotArgs []string

	e := &Extractor{
		Tool: `C:\work\7zr.exe`,
		Run: func(_ context.Context, name string, args ...string) (int, error) {
			assert.Equal(t, `C:\work\7zr.exe`, name)
			gotArgs = args
			return 0, nil
		},
	}

	require.NoError(t, e.Extract(t.Context(), `C:\work\pkg.exe`, dest))
	assert.Equal(t, []string{"x", "-aoa", "-bso0", "-y", `C:\work\pkg.exe`, "-o" + dest}, gotArgs)
	assert.DirExists(t, dest)
}

func TestExtractNonZeroExit(t *testing.T) {
	e := &Extractor{
		Tool: "7zr.exe",
		Run: func(context.Context, string, ...string) (int, error) {
			return 2, nil
		},
	}

	err := e.Extract(t.Context(), "pkg.exe", filepath.Join(t.TempDir(), "out"))
	require.Error(t, err)
	assert.Equal(t, nverrors.ErrCodeExtraction, nverrors.CodeOf(err))
	assert.ErrorContains(t, err, "exited with code 2")
}

func TestExtractRunFailure(t *testing.T) {
	e := &Extractor{
		Tool: "7zr.exe",
		Run: func(context.Context, string, ...string) (int, error) {
			return -1, errors.New("file not found")
		},
	}

	err := e.Extract(t.Context(), "pkg.exe", filepath.Join(t.TempDir(), "out"))
	require.Error(t, err)
	assert.Equal(t, nverrors.ErrCodeExtraction, nverrors.CodeOf(err))
}

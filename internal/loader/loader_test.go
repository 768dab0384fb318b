package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load rom file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x12, 0x34, 0x56, 0x78})

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, data)
	})

	t.Run("load rom of maximum size", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, machine.MaxProgramSize))

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, data, machine.MaxProgramSize)
	})

	t.Run("error on too large rom", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, machine.MaxProgramSize+1))

		_, err := New().Load(tmpFile)
		assert.True(t, errors.Is(err, machine.ErrRomTooLarge))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New().Load("/nonexistent/file.ch8")
		assert.True(t, errors.Is(err, ErrRomUnreadable))
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.ErrorContains(t, err, "/nonexistent/file.ch8")
	})

	t.Run("error on directory", func(t *testing.T) {
		_, err := New().Load(t.TempDir())
		assert.True(t, errors.Is(err, ErrRomUnreadable))
	})
}

func TestLoadFromReader(t *testing.T) {
	reader := iotest.ErrReader(errors.New("disk failure"))

	_, err := New().LoadFromReader(reader)
	assert.True(t, errors.Is(err, ErrRomUnreadable))
	assert.ErrorContains(t, err, "disk failure")
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}

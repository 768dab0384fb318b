// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/machine"
)

// ErrRomUnreadable is returned when the ROM file can not be opened or read.
var ErrRomUnreadable = errors.New("rom unreadable")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw CHIP-8 ROM image. The file has no header, its content is
// placed verbatim at the program start address.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening file %s: %w", ErrRomUnreadable, path, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads a raw CHIP-8 ROM image from a reader.
// It reads at most one byte more than fits into memory to detect
// oversized images without reading large files completely.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, machine.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading data: %w", ErrRomUnreadable, err)
	}
	if len(data) > machine.MaxProgramSize {
		return nil, fmt.Errorf("%w: more than %d bytes", machine.ErrRomTooLarge, machine.MaxProgramSize)
	}
	return data, nil
}

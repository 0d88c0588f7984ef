package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	domainRepo "salon-booking/internal/domain/repository"

	"github.com/spf13/afero"
)

var ErrInvalidSlotKey = errors.New("invalid slot key")

// fileSlotRepository keeps each key in its own JSON file under dir.
type fileSlotRepository struct {
	fs  afero.Fs
	dir string
}

func NewFileSlotRepository(fs afero.Fs, dir string) domainRepo.SlotRepository {
	return &fileSlotRepository{fs: fs, dir: dir}
}

func (r *fileSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := r.path(key)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return data, nil
}

// Set writes to a temporary file and renames it over the old one, so a reader
// never sees a half-written slot.
func (r *fileSlotRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := r.path(key)
	if err != nil {
		return err
	}

	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create slot dir %s: %w", r.dir, err)
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(r.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := r.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace slot %s: %w", key, err)
	}
	return nil
}

func (r *fileSlotRepository) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || key != filepath.Base(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlotKey, key)
	}
	return filepath.Join(r.dir, key+".json"), nil
}

package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/cbudget/internal/model"
	"github.com/theirongolddev/cbudget/internal/store"
)

// File is a ledger backed by a JSON dataset on disk. It is held in memory;
// changes reach the disk only through Flush.
type File struct {
	*store.Memory
	path     string
	readOnly bool
}

// Open loads path into memory. A missing file starts an empty ledger.
// JSONL files are opened read-only because they are written as JSON.
func Open(path string) (*File, error) {
	f := &File{path: path}

	ds, _, err := ReadDataset(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		ds = model.Dataset{}
	default:
		return nil, err
	}

	f.Memory = store.NewMemory(ds)
	f.readOnly = isJSONL(path)
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// Writable returns an error when changes to f cannot be saved.
func (f *File) Writable() error {
	if f.readOnly {
		return fmt.Errorf("%s is read-only; export to .json to save changes", f.path)
	}
	return nil
}

// Flush writes the current ledger back to disk.
func (f *File) Flush() error {
	if err := f.Writable(); err != nil {
		return err
	}
	return WriteDataset(f.path, f.Snapshot())
}

var _ store.Store = (*File)(nil)

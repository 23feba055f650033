package storage

import (
	"context"
	"os"
	"path/filepath"
)

// DirSink writes exported notes as files under Root.
type DirSink struct {
	Root string
}

func NewDirSink(root string) (*DirSink, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DirSink{Root: root}, nil
}

func (d *DirSink) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.Root, filepath.Base(name)), data, 0o644)
}

// Get reads back a file written by Put.
func (d *DirSink) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(d.Root, filepath.Base(name)))
}

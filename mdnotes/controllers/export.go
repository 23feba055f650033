package controllers

import (
	"context"
	"fmt"

	"mdnotes/mdnotes/services/markdown"
	"mdnotes/mdnotes/utils/logging"

	"go.uber.org/zap"
)

// ExportSink receives exported markdown documents by name.
type ExportSink interface {
	Put(ctx context.Context, name string, data []byte) error
}

// ExportAll writes every note to each sink and returns how many notes were exported.
func (c *NotesController) ExportAll(ctx context.Context, sinks ...ExportSink) (int, error) {
	defer logging.LogDuration(ctx, "NotesController.ExportAll")()

	notes, err := c.store.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	for i := range notes {
		data, err := markdown.Export(&notes[i])
		if err != nil {
			return i, err
		}
		name := markdown.ExportName(&notes[i])
		for _, sink := range sinks {
			if err := sink.Put(ctx, name, data); err != nil {
				logging.ErrorLogger.Error("export note failed", zap.String("id", notes[i].ID), zap.Error(err))
				return i, fmt.Errorf("export %s: %w", name, err)
			}
		}
	}
	logging.AppLogger.Info("notes exported", zap.Int("count", len(notes)), zap.Int("sinks", len(sinks)))
	return len(notes), nil
}

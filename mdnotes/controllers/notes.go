// mdnotes/controllers/notes.go
package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mdnotes/mdnotes/services/markdown"
	"mdnotes/mdnotes/services/search"
	"mdnotes/mdnotes/sources/db/models"
	"mdnotes/mdnotes/types"
	"mdnotes/mdnotes/utils/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NoteStore is the persistence the controller drives. dao.NoteDAO implements it.
type NoteStore interface {
	InsertEmpty(ctx context.Context, id string) (*models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	ListAll(ctx context.Context) ([]models.Note, error)
	Update(ctx context.Context, id, title, content string, updated time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// NotesController owns the note lifecycle. It keeps no note state between
// calls; every operation goes through the store.
type NotesController struct {
	store    NoteStore
	renderer *markdown.Renderer
	newID    func() string
	now      func() time.Time
}

func NewNotesController(store NoteStore, renderer *markdown.Renderer) *NotesController {
	return &NotesController{
		store:    store,
		renderer: renderer,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// BeginCreate stores an empty draft under a fresh random id.
func (c *NotesController) BeginCreate(ctx context.Context) (*models.Note, error) {
	id := c.newID()
	note, err := c.store.InsertEmpty(ctx, id)
	if errors.Is(err, types.ErrConflict) {
		logging.ErrorLogger.Error("generated note id already exists", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if err != nil {
		logging.ErrorLogger.Error("create note failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	logging.AppLogger.Info("note created", zap.String("id", id))
	return note, nil
}

// CreateOrUpdate handles the submit of a note started with BeginCreate. The
// draft row must exist; an unknown id is ErrNotFound.
func (c *NotesController) CreateOrUpdate(ctx context.Context, id, title, content string) error {
	defer logging.LogDuration(ctx, "NotesController.CreateOrUpdate")()
	return c.save(ctx, "create", id, title, content)
}

// Edit replaces title and content of an existing note and refreshes updated.
func (c *NotesController) Edit(ctx context.Context, id, title, content string) error {
	defer logging.LogDuration(ctx, "NotesController.Edit")()
	return c.save(ctx, "edit", id, title, content)
}

// Autosave is Edit for background clients: a missing note is reported in the
// status instead of as an error. Storage failures still return an error.
func (c *NotesController) Autosave(ctx context.Context, id, title, content string) (types.AutosaveStatus, error) {
	err := c.save(ctx, "autosave", id, title, content)
	status := types.AutosaveStatus{Status: types.AutosaveSuccess, Time: c.now().Format("15:04:05")}
	switch {
	case err == nil:
		return status, nil
	case errors.Is(err, types.ErrNotFound):
		logging.AppLogger.Warn("autosave for unknown note", zap.String("id", id))
		status.Status = types.AutosaveFailure
		return status, nil
	default:
		status.Status = types.AutosaveFailure
		return status, err
	}
}

func (c *NotesController) save(ctx context.Context, op, id, title, content string) error {
	ok, err := c.store.Update(ctx, id, title, content, c.now())
	if err != nil {
		logging.ErrorLogger.Error(op+" note failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if !ok {
		return fmt.Errorf("%s %s: %w", op, id, types.ErrNotFound)
	}
	return nil
}

// Remove deletes a note. Deleting an unknown id succeeds.
func (c *NotesController) Remove(ctx context.Context, id string) error {
	removed, err := c.store.Delete(ctx, id)
	if err != nil {
		logging.ErrorLogger.Error("delete note failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if removed {
		logging.AppLogger.Info("note deleted", zap.String("id", id))
	}
	return nil
}

// Get returns the note or ErrNotFound.
func (c *NotesController) Get(ctx context.Context, id string) (*models.Note, error) {
	note, err := c.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("get %s: %w", id, types.ErrNotFound)
	}
	return note, nil
}

// View returns the note with its content rendered to HTML. A note without
// content has nothing to show and is reported as ErrNotFound too.
func (c *NotesController) View(ctx context.Context, id string) (*models.Note, string, error) {
	note, err := c.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !note.HasContent() {
		return nil, "", fmt.Errorf("view %s: no content: %w", id, types.ErrNotFound)
	}
	html, err := c.renderer.Render(note.ContentText())
	if err != nil {
		return nil, "", err
	}
	return note, html, nil
}

func (c *NotesController) List(ctx context.Context) ([]models.Note, error) {
	return c.store.ListAll(ctx)
}

func (c *NotesController) Search(ctx context.Context, query string) ([]models.Note, error) {
	defer logging.LogDuration(ctx, "NotesController.Search")()
	return search.Search(ctx, c.store, query)
}

// Download returns the note as a markdown file with front matter.
func (c *NotesController) Download(ctx context.Context, id string) ([]byte, string, error) {
	note, err := c.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := markdown.Export(note)
	if err != nil {
		return nil, "", err
	}
	return data, markdown.ExportName(note), nil
}

// mdnotes/sources/db/dao/dao.note.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mdnotes/mdnotes/sources/db/models"
	"mdnotes/mdnotes/types"

	"gorm.io/gorm"
)

const defaultTimeout = 5 * time.Second

// NoteDAO owns every read and write of the notes table. Each write runs in its
// own transaction and each call is bounded by Timeout.
type NoteDAO struct {
	DB      *gorm.DB
	Timeout time.Duration
	Now     func() time.Time
}

func NewNoteDAO(db *gorm.DB, timeout time.Duration) *NoteDAO {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &NoteDAO{DB: db, Timeout: timeout, Now: time.Now}
}

func (dao *NoteDAO) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, dao.Timeout)
}

func storageErr(op, id string, err error) error {
	return fmt.Errorf("%s note %s: %w: %w", op, id, types.ErrStorage, err)
}

// InsertEmpty stores a draft with only id set; both timestamps are now.
func (dao *NoteDAO) InsertEmpty(ctx context.Context, id string) (*models.Note, error) {
	ctx, cancel := dao.bounded(ctx)
	defer cancel()

	now := models.NewTimestamp(dao.Now())
	note := &models.Note{ID: id, Created: now, Updated: now}
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(note).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("insert note %s: %w", id, types.ErrConflict)
	}
	if err != nil {
		return nil, storageErr("insert", id, err)
	}
	return note, nil
}

// GetByID returns nil, nil when no row has the id.
func (dao *NoteDAO) GetByID(ctx context.Context, id string) (*models.Note, error) {
	ctx, cancel := dao.bounded(ctx)
	defer cancel()

	var note models.Note
	err := dao.DB.WithContext(ctx).First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get", id, err)
	}
	return &note, nil
}

// ListAll returns every note, most recently updated first.
func (dao *NoteDAO) ListAll(ctx context.Context) ([]models.Note, error) {
	ctx, cancel := dao.bounded(ctx)
	defer cancel()

	var notes []models.Note
	err := dao.DB.WithContext(ctx).
		Order("updated desc").
		Order("created desc").
		Order("id asc").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("list notes: %w: %w", types.ErrStorage, err)
	}
	return notes, nil
}

// Update sets title, content and updated on an existing row. The stored
// updated never moves backwards, so it also stays >= created. Reports false
// when the id is unknown.
func (dao *NoteDAO) Update(ctx context.Context, id, title, content string, updated time.Time) (bool, error) {
	ctx, cancel := dao.bounded(ctx)
	defer cancel()

	ts := models.NewTimestamp(updated)
	var affected int64
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Note{}).Where("id = ?", id).Updates(map[string]any{
			"title":   title,
			"content": content,
			"updated": gorm.Expr("CASE WHEN updated > ? THEN updated ELSE ? END", ts, ts),
		})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return false, storageErr("update", id, err)
	}
	return affected > 0, nil
}

// Delete removes the row if present. Reports whether a row was removed.
func (dao *NoteDAO) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := dao.bounded(ctx)
	defer cancel()

	var affected int64
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Note{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return false, storageErr("delete", id, err)
	}
	return affected > 0, nil
}

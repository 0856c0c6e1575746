package journal

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"extension-host/extension"
)

// LifecycleEvent is one journaled lifecycle transition.
type LifecycleEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ExtensionID string    `gorm:"index;size:128" json:"extension_id"`
	Action      string    `gorm:"size:16" json:"action"`
	Outcome     string    `gorm:"size:16" json:"outcome"`
	Detail      string    `gorm:"size:1024" json:"detail"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Store appends and queries lifecycle events. It implements
// extension.Recorder.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewStore creates a journal store over an open database.
func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// Record appends one lifecycle event. Journal failures are logged, never
// surfaced: an audit trail problem must not break a lifecycle operation.
func (s *Store) Record(ctx context.Context, ev extension.Event) {
	row := LifecycleEvent{
		ExtensionID: ev.ExtensionID,
		Action:      string(ev.Action),
		Outcome:     OutcomeOK,
	}
	if ev.Err != nil {
		row.Outcome = OutcomeError
		row.Detail = ev.Err.Error()
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		s.log.Warn("failed to journal lifecycle event",
			zap.String("extension", ev.ExtensionID),
			zap.String("action", string(ev.Action)),
			zap.Error(err),
		)
	}
}

// Recent returns the latest events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]LifecycleEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []LifecycleEvent
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// ForExtension returns the latest events for one extension id, newest first.
func (s *Store) ForExtension(ctx context.Context, id string, limit int) ([]LifecycleEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []LifecycleEvent
	err := s.db.WithContext(ctx).
		Where("extension_id = ?", id).
		Order("id DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

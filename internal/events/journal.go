package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventRecord is the relational audit row kept for every published event
// when the persistent store is active.
type EventRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	EventID   string         `json:"event_id" gorm:"uniqueIndex;not null;size:64"`
	Type      string         `json:"type" gorm:"not null;index;size:64"`
	Source    string         `json:"source" gorm:"not null;size:64"`
	Version   string         `json:"version" gorm:"not null;size:16"`
	Payload   datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
}

func (EventRecord) TableName() string {
	return "event_records"
}

// JournalingPublisher decorates a publisher with the audit trail. Journal
// writes are best effort: a failed insert is logged and the event still
// counts as published.
type JournalingPublisher struct {
	next   EventPublisher
	db     *gorm.DB
	logger *slog.Logger
}

func NewJournalingPublisher(next EventPublisher, db *gorm.DB, logger *slog.Logger) *JournalingPublisher {
	return &JournalingPublisher{next: next, db: db, logger: logger}
}

func (j *JournalingPublisher) Publish(ctx context.Context, event *Event) error {
	if err := j.next.Publish(ctx, event); err != nil {
		return err
	}

	payload, err := json.Marshal(event.Data)
	if err != nil {
		j.logger.Error("failed to marshal event payload for journal", "type", event.Type, "error", err)
		return nil
	}

	record := &EventRecord{
		EventID:   event.ID,
		Type:      event.Type,
		Source:    event.Source,
		Version:   event.Version,
		Payload:   datatypes.JSON(payload),
		CreatedAt: event.Timestamp,
	}
	if err := j.db.WithContext(ctx).Create(record).Error; err != nil {
		j.logger.Error("failed to journal event", "type", event.Type, "event_id", event.ID, "error", err)
	}

	return nil
}

func (j *JournalingPublisher) Close() error {
	return j.next.Close()
}

package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"filevault/domain/ports"
	"filevault/pkg/logger"
)

// Publisher publishes file events to JetStream
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

var _ ports.FileEventPublisher = (*Publisher)(nil)

// PublishFileEvent ส่ง event ไปยัง FILE_EVENTS stream
func (p *Publisher) PublishFileEvent(ctx context.Context, event *ports.FileEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal file event: %w", err)
	}

	subject := subjectForEventType(event.Type)

	ack, err := p.client.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish file event",
			"type", event.Type,
			"blob_key", event.BlobKey,
			"error", err,
		)
		return fmt.Errorf("failed to publish file event: %w", err)
	}

	logger.Debug("File event published",
		"type", event.Type,
		"blob_key", event.BlobKey,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
	)

	return nil
}

func subjectForEventType(eventType string) string {
	switch eventType {
	case ports.FileEventUploaded:
		return SubjectUploaded
	case ports.FileEventDeleted:
		return SubjectDeleted
	case ports.FileEventOrphaned:
		return SubjectOrphaned
	default:
		return SubjectUploaded
	}
}

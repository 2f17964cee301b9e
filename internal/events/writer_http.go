package events

import (
	"context"
	"fmt"

	cloudevents "github.com/cloudevents/sdk-go/v2"
)

// HTTPWriter posts every event to a CloudEvents HTTP sink in binary mode.
// The topic is carried as an extension since HTTP has no notion of it.
type HTTPWriter struct {
	client cloudevents.Client
	target string
}

func NewHTTPWriter(target string) (*HTTPWriter, error) {
	c, err := cloudevents.NewClientHTTP(cloudevents.WithTarget(target))
	if err != nil {
		return nil, fmt.Errorf("failed to create the cloudevents client: %w", err)
	}
	return &HTTPWriter{client: c, target: target}, nil
}

func (h *HTTPWriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	e.SetExtension("topic", topic)
	if result := h.client.Send(ctx, e); cloudevents.IsUndelivered(result) || !cloudevents.IsACK(result) {
		return fmt.Errorf("failed to deliver event %s to %s: %w", e.ID(), h.target, result)
	}
	return nil
}

func (h *HTTPWriter) Close(_ context.Context) error {
	return nil
}

package mq

import (
	"context"
	"encoding/json"
	"log"

	"venuehub/models"
	"venuehub/rdx"
)

const indexingChannel = "indexing-events"

// Emit publishes an entity-change event to the indexing channel. Listing
// caches are refreshed by the worker, not inline in the request path.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] failed to marshal %s event: %v", eventName, err)
		return
	}
	if err := rdx.Conn.Publish(ctx, indexingChannel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish %s event: %v", eventName, err)
	}
}

// StartIndexingWorker consumes entity-change events and invalidates the
// listing caches the read path populates.
func StartIndexingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, indexingChannel)
	ch := sub.Channel()

	log.Println("[IndexingWorker] listening for indexing events")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[IndexingWorker] bad event payload: %v", err)
			continue
		}

		switch event.EntityType {
		case "venue":
			rdx.RdxDel("venues")
			rdx.RdxDel("venue:" + event.EntityId)
		case "service":
			rdx.RdxDel("services")
			rdx.RdxDel("service:" + event.EntityId)
		case "booking":
			rdx.RdxDel("bookings:" + event.EntityId)
		}
	}
}

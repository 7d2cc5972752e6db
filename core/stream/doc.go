// Package stream consumes the remote store's row-change feed.
//
// The remote store publishes one JSON event per row change on a Redis channel
// per table ("brandstock.items", "brandstock.item_sizes"). Events carry an
// event type plus the new and/or old row as loosely-typed payloads.
//
// # Defensive decoding
//
// Payload shapes are not guaranteed. Consumers extract fields through the
// Event accessors, which tolerate missing keys and mixed string/number ids;
// an event without a usable id is simply ignored by subscribers. Malformed
// JSON is dropped at the subscription boundary with a warning log.
//
// # Lifecycle
//
// Subscriptions are handles that must be closed when the consuming session
// ends (tenant switch, shutdown), so no handler outlives the cache it feeds.
package stream

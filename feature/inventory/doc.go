// Package inventory implements the brand inventory sync engine.
//
// It maintains a client-side cache of inventory items (each with one or more
// size sub-records) for one brand, kept consistent with the shared
// authoritative store. Three independently updating sources converge on the
// cache:
//
//  1. Optimistic local mutations, reverted when the remote write fails.
//  2. A timer-driven row-count poll that detects net additions/removals.
//  3. Push change feeds for shared items and size records.
//
// # Convergence
//
// The poll detector and both push feeds never touch the cache directly; each
// posts an invalidation signal to a single debounced reload scheduler, which
// performs one full reload per settled burst. Mutations are serialized per
// item id so concurrent edits on the same item cannot interleave.
//
// # Sharing
//
// Items are owned by one brand and may be linked to others. The first share
// promotes the item to shared (linking the owner too); unsharing removes one
// link and never demotes the shared flag, even when a single brand remains.
//
// # Components
//
//   - Cache: the in-memory item set plus the read-time sorted view.
//   - Service: reload path, mutation coordinator, sharing linker.
//   - Poller / Merger / ReloadScheduler: the three invalidation sources and
//     the coalescer that feeds reloads.
//   - Session: brand-scoped lifecycle tying all of the above together.
//   - Handler: the HTTP surface over the cache and mutations.
package inventory

// Package media resolves item display images through a persistent, append-only cache.
//
// Each Resolve call reads the cache once, fetches only the item ids it does not contain and
// writes the newly found entries back once. Items without media are not cached and are
// retried on the next run.
package media

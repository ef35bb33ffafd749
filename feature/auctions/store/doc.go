// Package store is the GORM persistence layer of the auction pipeline.
//
// Every table is read in full and written with batched insert-skip: rows whose key already
// exists are left untouched, so re-running a write is harmless. Nothing is updated or deleted.
package store

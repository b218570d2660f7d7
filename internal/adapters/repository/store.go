// Package repository holds the scanned roster between requests.
package repository

import (
	"context"

	"github.com/scanprof/zenos/internal/domain/roster"
)

// MergeStats reports what a Merge changed.
type MergeStats struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	// Skipped counts records without nom, prenom or classe.
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// Store provides read/write access to the roster.
type Store interface {
	// Merge upserts records by participant key. Fields of a later record
	// overwrite those already stored; blank values never erase.
	Merge(ctx context.Context, records []roster.RawRecord) (MergeStats, error)

	// All returns copies of the stored records in first-seen order.
	All(ctx context.Context) []roster.RawRecord

	// Count returns the number of stored participants.
	Count(ctx context.Context) int

	// Classes returns the sorted distinct canonical classes.
	Classes(ctx context.Context) []string

	// Clear removes every record.
	Clear(ctx context.Context)
}

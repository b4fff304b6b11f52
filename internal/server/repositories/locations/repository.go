// Package locations stores postal-code records imported from SEPOMEX.
package locations

import (
	"context"

	"github.com/lacs/lacsapi/internal/server/models"
)

// FailedItem describes one record rejected inside a batch.
type FailedItem struct {
	Index        int    `json:"index"`
	CodigoPostal string `json:"codigo_postal"`
	Message      string `json:"message"`
}

// BatchResult summarizes one unordered batch insert.
type BatchResult struct {
	Inserted int          `json:"inserted"`
	Failed   []FailedItem `json:"failed,omitempty"`
}

type Repository interface {
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
	// InsertBatch inserts without stopping at the first rejected record.
	// Per-record failures are reported in the result, not as an error.
	InsertBatch(ctx context.Context, batch []models.Location) (BatchResult, error)
	EnsureIndexes(ctx context.Context) error
	CountSettlements(ctx context.Context) (int64, error)
	// FindByPostalCode expects an already normalized code and returns
	// common.ErrorNotFound when absent.
	FindByPostalCode(ctx context.Context, cp string) (*models.Location, error)
	// FindByState matches estado as a case-insensitive literal substring.
	FindByState(ctx context.Context, estado string, limit, skip int) ([]models.Location, int64, error)
	Sample(ctx context.Context, limit int) ([]models.Location, error)
}

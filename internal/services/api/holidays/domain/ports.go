package domain

import (
	"context"

	"holidays/internal/core/holidays"
)

// ServicePort is the interface implemented by the holidays service
type ServicePort interface {
	Entities(ctx context.Context) ([]EntityRow, error)
	Query(ctx context.Context, in QueryInput) (HolidaysOutput, error)
	Year(ctx context.Context, entity string, year int, in YearQuery) (HolidaysOutput, error)
	OnDate(ctx context.Context, entity, day string, in DateQuery) (DateOutput, error)
	Between(ctx context.Context, entity string, in BetweenQuery) (HolidaysOutput, error)
	Next(ctx context.Context, entity string, in NextQuery) (NextOutput, error)
	Search(ctx context.Context, in SearchInput) (HolidaysOutput, error)
}

// CatalogPort is what other modules may ask of the holidays module
type CatalogPort interface {
	EntityCount() int
	CacheStats() holidays.Stats
}

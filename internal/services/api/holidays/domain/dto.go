// Package domain holds DTOs for the holidays http and service contracts
package domain

import (
	"holidays/internal/core/date"
	"holidays/internal/core/holidays"
)

// SubdivisionRow is one subdivision of an entity
type SubdivisionRow struct {
	Code string `json:"code" example:"SCT"`
	Name string `json:"name" example:"Scotland"`
}

// EntityRow describes a catalogue entity
type EntityRow struct {
	Code         string           `json:"code" example:"GB"`
	Name         string           `json:"name" example:"United Kingdom"`
	Aliases      []string         `json:"aliases,omitempty"`
	Categories   []string         `json:"categories" example:"public,bank"`
	Weekend      []string         `json:"weekend" example:"saturday,sunday"`
	Subdivisions []SubdivisionRow `json:"subdivisions,omitempty"`
}

// Filters narrow an entity to subdivisions and categories
type Filters struct {
	Subdivisions []string `json:"subdivisions,omitempty" query:"subdivisions" validate:"omitempty,max=16,dive,min=1,max=16"`
	Categories   []string `json:"categories,omitempty" query:"categories" validate:"omitempty,max=8,dive,min=1,max=32"`
}

// QueryInput asks for the holidays of a year span
type QueryInput struct {
	Entity string `json:"entity" validate:"required,min=2,max=64" example:"GB"`
	Filters
	From int    `json:"from" validate:"required,min=1,max=9999" example:"2024"`
	To   int    `json:"to,omitempty" validate:"omitempty,min=1,max=9999" example:"2025"`
	View string `json:"view,omitempty" validate:"omitempty,oneof=all actual observed" example:"observed"`
}

// YearQuery is the query string of the single-year route
type YearQuery struct {
	Filters
	View string `query:"view" validate:"omitempty,oneof=all actual observed"`
}

// DateQuery is the query string of the single-date route
type DateQuery struct {
	Filters
}

// BetweenQuery is the query string of the date-range route
type BetweenQuery struct {
	Filters
	From string `query:"from" validate:"required,datetime=2006-01-02"`
	To   string `query:"to" validate:"required,datetime=2006-01-02"`
	View string `query:"view" validate:"omitempty,oneof=all actual observed"`
}

// NextQuery is the query string of the next-holiday route; From defaults to today
type NextQuery struct {
	Filters
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
}

// SearchInput looks for holidays by name within a year span
type SearchInput struct {
	QueryInput
	Name string `json:"name" validate:"required,min=2,max=128" example:"christmas"`
}

// DayRow is one date with its display names
type DayRow struct {
	Date    date.Date        `json:"date"`
	Names   []string         `json:"names"`
	Entries []holidays.Entry `json:"entries"`
}

// HolidaysOutput is the result of a span query
type HolidaysOutput struct {
	Entity string   `json:"entity" example:"GB"`
	From   string   `json:"from" example:"2024-01-01"`
	To     string   `json:"to" example:"2024-12-31"`
	View   string   `json:"view" example:"all"`
	Count  int      `json:"count" example:"8"`
	Days   []DayRow `json:"days"`
}

// DateOutput answers "what is this day"
type DateOutput struct {
	Date       date.Date `json:"date"`
	Holiday    bool      `json:"holiday"`
	Names      []string  `json:"names"`
	WorkingDay bool      `json:"working_day"`
}

// NextOutput is the first recognised holiday on or after From
type NextOutput struct {
	From  date.Date `json:"from"`
	Found bool      `json:"found"`
	Day   *DayRow   `json:"day,omitempty"`
}

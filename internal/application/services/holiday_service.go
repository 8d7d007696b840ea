package services

import (
	"time"
)

// holidayKeyFormat keys the holiday set by calendar day.
const holidayKeyFormat = "2006-01-02"

// defaultHolidays is the fixed set recognized out of the box.
var defaultHolidays = []string{
	"2025-12-25",
	"2026-01-01",
	"2026-07-04",
	"2026-11-26",
}

// HolidayService answers calendar lookups for the validator. The set is
// fixed at construction; extra dates come from configuration.
type HolidayService struct {
	dates map[string]struct{}
}

// NewHolidayService creates a holiday calendar seeded with the default
// set plus any extra dates.
func NewHolidayService(extra []time.Time) *HolidayService {
	dates := make(map[string]struct{}, len(defaultHolidays)+len(extra))
	for _, d := range defaultHolidays {
		dates[d] = struct{}{}
	}
	for _, d := range extra {
		dates[d.Format(holidayKeyFormat)] = struct{}{}
	}
	return &HolidayService{dates: dates}
}

// IsHoliday reports whether the calendar date is a recognized holiday.
// Time-of-day is ignored.
func (s *HolidayService) IsHoliday(date time.Time) bool {
	_, ok := s.dates[date.Format(holidayKeyFormat)]
	return ok
}

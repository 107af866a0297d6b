// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy

import (
	"fmt"
	"time"
)

// Calendar durations in seconds, following the coarse conventions of
// relative timelocks (months are 30 days, years 365).
const (
	daySeconds   = 24 * 60 * 60
	weekSeconds  = daySeconds * 7
	monthSeconds = daySeconds * 30
	yearSeconds  = daySeconds * 365
)

// sequenceIntervalSeconds is the granularity of time-based relative
// timelocks in the bitcoin consensus rules.
const sequenceIntervalSeconds = 512

// TimelockUnit is the calendar unit of a coarse timelock duration.
type TimelockUnit uint8

const (
	// UnitDays measures the duration in days.
	UnitDays TimelockUnit = iota

	// UnitWeeks measures the duration in weeks.
	UnitWeeks

	// UnitMonths measures the duration in 30-day months.
	UnitMonths

	// UnitYears measures the duration in 365-day years.
	UnitYears
)

// TimelockDuration is a coarse wait period expressed in calendar units,
// convertible into the 512-second intervals used by time-based relative
// timelocks.
type TimelockDuration struct {
	Unit  TimelockUnit
	Count uint8
}

// Days returns a duration of n days.
func Days(n uint8) TimelockDuration {
	return TimelockDuration{Unit: UnitDays, Count: n}
}

// Weeks returns a duration of n weeks.
func Weeks(n uint8) TimelockDuration {
	return TimelockDuration{Unit: UnitWeeks, Count: n}
}

// Months returns a duration of n 30-day months.
func Months(n uint8) TimelockDuration {
	return TimelockDuration{Unit: UnitMonths, Count: n}
}

// Years returns a duration of n 365-day years.
func Years(n uint8) TimelockDuration {
	return TimelockDuration{Unit: UnitYears, Count: n}
}

// seconds returns the total duration in seconds.
func (d TimelockDuration) seconds() uint32 {
	switch d.Unit {
	case UnitWeeks:
		return uint32(d.Count) * weekSeconds
	case UnitMonths:
		return uint32(d.Count) * monthSeconds
	case UnitYears:
		return uint32(d.Count) * yearSeconds
	default:
		return uint32(d.Count) * daySeconds
	}
}

// Intervals converts the duration into a count of 512-second intervals.
// The division truncates; a duration is never rounded up to a longer
// wait.
func (d TimelockDuration) Intervals() uint16 {
	return uint16(d.seconds() / sequenceIntervalSeconds)
}

// String returns the duration as "<n> <unit>".
func (d TimelockDuration) String() string {
	unit := "days"
	switch d.Unit {
	case UnitWeeks:
		unit = "weeks"
	case UnitMonths:
		unit = "months"
	case UnitYears:
		unit = "years"
	}
	return fmt.Sprintf("%d %s", d.Count, unit)
}

// TimelockKind enumerates the forms a timelock requirement can take.
type TimelockKind uint8

const (
	// LockAnytime imposes no timelock.
	LockAnytime TimelockKind = iota

	// LockAfterPeriod requires a relative wait measured in 512-second
	// intervals.
	LockAfterPeriod

	// LockAfterBlock requires a relative wait measured in blocks.
	LockAfterBlock

	// LockAfterDate requires an absolute wall-clock time to pass.
	LockAfterDate

	// LockAfterHeight requires an absolute block height to be reached.
	LockAfterHeight
)

// TimelockReq is a timelock requirement, the other half of a spending
// condition. The zero value imposes no timelock.
type TimelockReq struct {
	// Kind discriminates which of the fields below are meaningful.
	Kind TimelockKind

	// Period is the relative wait for LockAfterPeriod.
	Period TimelockDuration

	// Blocks is the relative wait for LockAfterBlock.
	Blocks uint16

	// Date is the absolute time for LockAfterDate.
	Date time.Time

	// Height is the absolute height for LockAfterHeight.
	Height uint32
}

// Anytime imposes no timelock.
func Anytime() TimelockReq { return TimelockReq{Kind: LockAnytime} }

// AfterPeriod requires the given relative wait from confirmation.
func AfterPeriod(d TimelockDuration) TimelockReq {
	return TimelockReq{Kind: LockAfterPeriod, Period: d}
}

// AfterBlock requires a relative wait of n blocks from confirmation.
func AfterBlock(n uint16) TimelockReq {
	return TimelockReq{Kind: LockAfterBlock, Blocks: n}
}

// AfterDate requires the given absolute time to pass.
func AfterDate(date time.Time) TimelockReq {
	return TimelockReq{Kind: LockAfterDate, Date: date.UTC()}
}

// AfterHeight requires the given absolute block height to be reached.
func AfterHeight(height uint32) TimelockReq {
	return TimelockReq{Kind: LockAfterHeight, Height: height}
}

// String returns a short human-readable description of the timelock.
func (t TimelockReq) String() string {
	switch t.Kind {
	case LockAfterPeriod:
		return fmt.Sprintf("after %s", t.Period)
	case LockAfterBlock:
		return fmt.Sprintf("after %d blocks", t.Blocks)
	case LockAfterDate:
		return fmt.Sprintf("after %s", t.Date.Format(time.RFC3339))
	case LockAfterHeight:
		return fmt.Sprintf("after block %d", t.Height)
	default:
		return "anytime"
	}
}

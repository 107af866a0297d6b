// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy

import (
	"fmt"
	"sort"
	"time"
)

// SpendingCondition is a single timelocked signature requirement forming
// one fallback branch of a spending policy. The zero value is the default
// unconditional branch requiring all signatures at any time.
type SpendingCondition struct {
	Sigs     SigsReq
	Timelock TimelockReq
}

// TimelockedSigs is the underlying signature/timelock pair of a spending
// condition.
type TimelockedSigs = SpendingCondition

// ConditionDefault is the unconditional branch requiring all signatures.
func ConditionDefault() SpendingCondition {
	return SpendingCondition{}
}

// ConditionAll requires all signatures with no timelock.
func ConditionAll() SpendingCondition {
	return SpendingCondition{Sigs: ReqAll()}
}

// ConditionAtLeast requires at least count signatures with no timelock.
func ConditionAtLeast(count uint16) SpendingCondition {
	return SpendingCondition{Sigs: ReqAtLeast(count)}
}

// ConditionAfterDate requires the given signatures once the given absolute
// time has passed.
func ConditionAfterDate(sigs SigsReq, date time.Time) SpendingCondition {
	return SpendingCondition{Sigs: sigs, Timelock: AfterDate(date)}
}

// ConditionAnybodyAfterDate allows any single signer to spend once the
// given absolute time has passed.
func ConditionAnybodyAfterDate(date time.Time) SpendingCondition {
	return ConditionAfterDate(ReqAny(), date)
}

// String renders the condition as "<sigs> <timelock>".
func (c SpendingCondition) String() string {
	return fmt.Sprintf("%s %s", c.Sigs, c.Timelock)
}

// ConditionEntry ties a spending condition to its priority tag within a
// wallet template. Tag 0 is reserved for the unconditional default branch;
// higher tags are only reachable once their timelock matures.
type ConditionEntry struct {
	Priority  uint8
	Condition SpendingCondition
}

// ConditionSet is an ordered set of spending conditions keyed by ascending
// priority tag. Priorities are unique within a set.
type ConditionSet []ConditionEntry

// NewConditionSet builds a set from the given entries. It panics when two
// entries share a priority tag, which indicates a programming error in the
// template construction.
func NewConditionSet(entries ...ConditionEntry) ConditionSet {
	var set ConditionSet
	for _, entry := range entries {
		if err := set.Insert(entry.Priority, entry.Condition); err != nil {
			panic(err)
		}
	}
	return set
}

// Insert adds a condition under the given priority tag, keeping the set
// ordered. It fails when the priority is already taken.
func (s *ConditionSet) Insert(priority uint8, cond SpendingCondition) error {
	for _, entry := range *s {
		if entry.Priority == priority {
			return fmt.Errorf("duplicate spending condition "+
				"priority %d", priority)
		}
	}
	*s = append(*s, ConditionEntry{Priority: priority, Condition: cond})
	sort.SliceStable(*s, func(i, j int) bool {
		return (*s)[i].Priority < (*s)[j].Priority
	})
	return nil
}

// At returns the condition registered under the given priority tag.
func (s ConditionSet) At(priority uint8) (SpendingCondition, bool) {
	for _, entry := range s {
		if entry.Priority == priority {
			return entry.Condition, true
		}
	}
	return SpendingCondition{}, false
}

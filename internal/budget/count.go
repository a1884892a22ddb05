package budget

import "fmt"

// Count is the outcome of a unit of work: the number of elementary units
// (bytes, cell multiplications, placed elements) performed, tagged with
// whether the work ran to completion or was cut short by the budget.
//
// The count is meaningful on both channels. A parent's count is always the sum
// of its children's counts, interrupted or not.
type Count struct {
	Units       uint64
	Interrupted bool
}

// Completed returns a count for work that ran to the end.
func Completed(units uint64) Count {
	return Count{Units: units}
}

// Interrupted returns a count for work stopped by the budget.
func Interrupted(units uint64) Count {
	return Count{Units: units, Interrupted: true}
}

// Ok reports whether the work completed.
func (c Count) Ok() bool {
	return !c.Interrupted
}

// Add adds units without changing the channel.
func (c Count) Add(units uint64) Count {
	c.Units += units
	return c
}

// Merge sums two counts. The result is interrupted if either side was.
func (c Count) Merge(other Count) Count {
	return Count{
		Units:       c.Units + other.Units,
		Interrupted: c.Interrupted || other.Interrupted,
	}
}

func (c Count) String() string {
	if c.Interrupted {
		return fmt.Sprintf("interrupted(%d)", c.Units)
	}
	return fmt.Sprintf("completed(%d)", c.Units)
}

// Sum merges every count. An empty list is a completed zero.
func Sum(counts ...Count) Count {
	var total Count
	for _, c := range counts {
		total = total.Merge(c)
	}
	return total
}

package scheduling

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// Workload is one employee's standing on a given day.
type Workload struct {
	EmployeeID        uuid.UUID `json:"employeeId"`
	DailyJobLimit     int       `json:"dailyJobLimit"`
	CurrentLoad       int       `json:"currentLoad"`
	RemainingCapacity int       `json:"remainingCapacity"`
}

// NewWorkload derives the remaining headroom from the limit and live load.
func NewWorkload(employeeID uuid.UUID, limit, load int) Workload {
	return Workload{
		EmployeeID:        employeeID,
		DailyJobLimit:     limit,
		CurrentLoad:       load,
		RemainingCapacity: limit - load,
	}
}

func (w Workload) HasHeadroom() bool {
	return w.RemainingCapacity > 0
}

// SortByLoad orders least-loaded first with employee id as tie-break so the
// result is deterministic.
func SortByLoad(workloads []Workload) {
	slices.SortFunc(workloads, func(a, b Workload) int {
		if c := cmp.Compare(a.CurrentLoad, b.CurrentLoad); c != 0 {
			return c
		}
		return cmp.Compare(a.EmployeeID.String(), b.EmployeeID.String())
	})
}

// RankCandidates drops employees without headroom and sorts the rest by load.
func RankCandidates(workloads []Workload) []Workload {
	candidates := make([]Workload, 0, len(workloads))
	for _, w := range workloads {
		if w.HasHeadroom() {
			candidates = append(candidates, w)
		}
	}
	SortByLoad(candidates)
	return candidates
}

// Excess is how many active jobs exceed the limit.
func (w Workload) Excess() int {
	if w.CurrentLoad <= w.DailyJobLimit {
		return 0
	}
	return w.CurrentLoad - w.DailyJobLimit
}

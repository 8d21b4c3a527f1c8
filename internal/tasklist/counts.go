package tasklist

import (
	"fmt"

	"taskdeck/internal/service"
)

// Counts are the derived list totals.
type Counts struct {
	Total     int
	Completed int
}

// CountTasks computes Counts from scratch.
func CountTasks(tasks []service.Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		}
	}
	return c
}

// CompletedLabel is "0" when nothing is completed, otherwise "X of Y".
func (c Counts) CompletedLabel() string {
	if c.Completed == 0 {
		return "0"
	}
	return fmt.Sprintf("%d of %d", c.Completed, c.Total)
}

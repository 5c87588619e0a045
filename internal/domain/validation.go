package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationErrors maps a field name to the reason it was rejected.
// It implements error so it can travel through the usual error paths.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s %s", field, v[field])
	}

	return strings.Join(parts, "; ")
}

// ValidateTicketSeat checks a requested (row, seat) pair against the hall's
// grid. Both checks always run, so a request that is out of range on both
// axes reports both fields. Returns nil when the pair is inside the grid.
func ValidateTicketSeat(row, seat int, hall TheaterHall) ValidationErrors {
	errs := ValidationErrors{}

	if row < 1 || row > hall.Rows {
		errs["row"] = fmt.Sprintf("must be in range [1, %d]", hall.Rows)
	}
	if seat < 1 || seat > hall.SeatsInRow {
		errs["seat"] = fmt.Sprintf("must be in range [1, %d]", hall.SeatsInRow)
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

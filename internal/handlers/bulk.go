package handlers

import (
	"errors"
	"fmt"
)

// collectEach applies op to every item in input order, gathering successes
// and per-item failures separately. A failure never stops the remaining
// items; it is recorded as "<label> <position> (<description>): <cause>"
// with a 1-based position.
func collectEach[T, R any](items []T, label string, describe func(T) string, op func(T) (R, error)) ([]R, []string) {
	succeeded := make([]R, 0, len(items))
	var errs []string
	for i, item := range items {
		out, err := op(item)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s %d (%s): %s", label, i+1, describe(item), causeOf(err)))
			continue
		}
		succeeded = append(succeeded, out)
	}
	return succeeded, errs
}

// deleteEach attempts a delete per id and tallies the rows removed. Unlike
// collectEach it reports no per-item errors: ids that match nothing are
// skipped silently and only the count is returned.
func deleteEach[T any](ids []T, del func(T) (int64, error)) int {
	var deleted int64
	for _, id := range ids {
		n, err := del(id)
		if err != nil {
			continue
		}
		deleted += n
	}
	return int(deleted)
}

func causeOf(err error) string {
	var apiResponseError *ApiResponseError
	if errors.As(err, &apiResponseError) {
		return apiResponseError.describe()
	}
	return err.Error()
}

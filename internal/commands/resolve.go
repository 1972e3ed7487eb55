package commands

import (
	"fmt"
	"strings"

	"github.com/nextup/nextup/internal/nextup"
)

// resolveTaskID expands a full or prefix task ID to the stored ID.
// A prefix must match exactly one task; failures read like not-found so
// downstream messaging stays uniform.
func resolveTaskID(app *nextup.App, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("a task id is required")
	}

	var match string
	for _, t := range app.Tasks.ListAll() {
		if t.ID == arg {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("task id %q is ambiguous", arg)
			}
			match = t.ID
		}
	}

	if match == "" {
		return "", fmt.Errorf("no task found for %q", arg)
	}
	return match, nil
}

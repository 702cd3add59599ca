package cli

import (
	"fmt"
	"strings"

	"github.com/Puneet-Ratnu/murim/internal/daemon"
)

// resolveTaskID accepts a full task ID or a unique prefix.
func resolveTaskID(d *daemon.Daemon, idOrPrefix string) (string, error) {
	list, err := d.Tasks.List()
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range list {
		if t.ID == idOrPrefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, idOrPrefix) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no task matches %q", idOrPrefix)
	default:
		return "", fmt.Errorf("%q matches %d tasks, be more specific", idOrPrefix, len(matches))
	}
}

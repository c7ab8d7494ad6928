package config

import (
	"fmt"
	"strings"
	"time"
)

// LoadLocation resolves an IANA zone name. An empty name selects the local
// zone of the host.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	return loc, nil
}

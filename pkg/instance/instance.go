package instance

import (
	"os"

	"github.com/angelmondragon/kitchenboard/pkg/env"
)

// GetID returns the replica identifier used as scheduler lease owner.
func GetID() string {
	if id := env.Get("KITCHENBOARD_INSTANCE_ID", ""); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "kitchenboard-0"
}

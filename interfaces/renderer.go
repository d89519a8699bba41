package interfaces

import (
	"context"

	"github.com/neozeit/dmarcscope/internal/models"
)

type MapRenderer interface {
	// RenderMessageMap draws the message distribution onto the world
	// map and returns it PNG-encoded. Counts must already carry
	// geometry-dataset display names. A nil image with a nil error
	// means no country could be placed on the map.
	RenderMessageMap(ctx context.Context, counts []models.CountryCount) ([]byte, error)
}

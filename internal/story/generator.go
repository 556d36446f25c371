// Package story produces the guide narrative for a heritage object. The
// route engine treats generation as an opaque, fallible call; caching is
// the story service's job, not the generator's.
package story

import (
	"context"

	"heritage_routes/internal/models"
)

// Generator turns object metadata into a short guide narrative.
type Generator interface {
	// Generate returns the narrative text. May be slow (network call) and
	// must honor ctx cancellation.
	Generate(ctx context.Context, obj models.HeritageObject) (string, error)
	// Source identifies the generator and prompt revision. It keys the
	// cache so switching generators does not serve stale text.
	Source() string
}

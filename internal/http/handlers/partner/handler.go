package partner

import "github.com/adnex-platform/partner-api/internal/provider"

// Handler serves the partner facing API.
type Handler struct {
	*provider.Container
}

// New creates the partner handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

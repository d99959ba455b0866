package router

import (
	"tonsor/internal/handlers/auth"
	"tonsor/internal/handlers/schedule"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Schedule schedule.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts every handler at the root. The upstream API predates
// versioned paths, so there is no /v1 prefix to hide behind.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Auth.Router(router)
	r.DomainHandlers.Schedule.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}

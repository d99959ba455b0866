// Package permissions maps routes to the roles allowed to call them. The
// table is embedded so the binary carries its own access rules.
package permissions

import (
	_ "embed"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	byRoute map[routeKey]Permission
}

type routeKey struct {
	path   string
	method string
}

// FindPermissions returns the entry for a route pattern and method. Routes
// absent from the table get the zero Permission, which the middleware
// treats as authenticated with no role restriction.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.byRoute[routeKey{path: path, method: method}]
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	permissions.byRoute = make(map[routeKey]Permission, len(permissions.Endpoints))
	for _, endpoint := range permissions.Endpoints {
		permissions.byRoute[routeKey{path: endpoint.Path, method: endpoint.Method}] = endpoint
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}

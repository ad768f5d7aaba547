// Package api provides the HTTP API for the application
package api

import (
	"codescout/internal/adapters/forge"
	"codescout/internal/platform/config"
	"codescout/internal/platform/logger"
	phttp "codescout/internal/platform/net/http"

	"codescout/internal/modkit"
	"codescout/internal/modkit/httpkit"
	"codescout/internal/modkit/module"
	"codescout/internal/modkit/swaggerkit"

	metamod "codescout/internal/services/api/meta/module"
	searchmod "codescout/internal/services/search/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Forge          forge.Querier
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		Forge: opt.Forge,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	mods := []module.Module{
		metamod.New(deps),
		searchmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}

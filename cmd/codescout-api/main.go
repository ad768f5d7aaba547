// @title         Codescout API
// @version       0.1.0
// @description   Federated search across forge repositories, pull requests, commits, and code

package main

import (
	"context"

	"codescout/internal/adapters/forge"
	"codescout/internal/platform/config"
	"codescout/internal/platform/logger"
	phttp "codescout/internal/platform/net/http"

	"codescout/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	forgeCfg := root.Prefix("FORGE_") // upstream credentials live under FORGE_*

	// bring up logging early
	l := logger.Get()

	// upstream forge client (base url, credentials, timeout)
	fc := forge.NewClient(forge.FromConfig(forgeCfg))

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Forge:          fc,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

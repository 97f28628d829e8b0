// Package api provides the HTTP API for the application
package api

import (
	"paperscope/internal/platform/config"
	"paperscope/internal/platform/logger"
	phttp "paperscope/internal/platform/net/http"
	"paperscope/internal/platform/store"

	"paperscope/internal/modkit"
	"paperscope/internal/modkit/httpkit"
	"paperscope/internal/modkit/module"
	"paperscope/internal/modkit/swaggerkit"

	accessmod "paperscope/internal/services/api/access/module"
	metamod "paperscope/internal/services/api/meta/module"
	papersmod "paperscope/internal/services/api/papers/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        logger.Logger
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Log: opt.Logger,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// access first so its resolver port can feed papers
	access := accessmod.New(deps)
	resolver := module.MustPortsOf[accessmod.Ports](access).Access

	papers := papersmod.New(deps, modkit.WithPorts(papersmod.Ports{
		Access: resolver,
	}))

	mods := []module.Module{
		metamod.New(deps),
		access,
		papers,
	}

	// versioned API with the common stack plus credential extraction
	mw := append(httpkit.CommonStack(), httpkit.Credentials())
	httpkit.MountAPIV1(r, mw, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}

package modkit

import (
	"paperscope/internal/modkit/repokit"
	"paperscope/internal/platform/config"
	"paperscope/internal/platform/logger"
)

// Deps holds core dependencies handed to every module.
// Wiring only, no behavior
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}

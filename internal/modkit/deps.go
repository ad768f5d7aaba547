package modkit

import (
	"codescout/internal/adapters/forge"
	"codescout/internal/platform/config"
	"codescout/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	Forge forge.Querier
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check the forge client
func (d Deps) ZeroOK() bool { return true }

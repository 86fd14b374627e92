package auth

import (
	"go.uber.org/fx"

	"github.com/lithoprint/printdesk/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newTokenStrategy),
)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewHMACStrategy(p.Config.StaffTokenSecret, Options{})
}

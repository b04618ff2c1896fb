package scanbill

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module(
		"scanbill",
		fx.Provide(NewClient),
	)
}

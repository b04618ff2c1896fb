package ui

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module(
		"ui",
		fx.Provide(NewRunner),
	)
}

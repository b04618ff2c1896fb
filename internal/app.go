package internal

import (
	"context"

	"scanbill_cli/internal/config"
	"scanbill_cli/internal/logging"
	"scanbill_cli/internal/notify"
	"scanbill_cli/internal/scanbill"
	"scanbill_cli/internal/session"
	"scanbill_cli/internal/ui"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Run() error {
	var runner *ui.Runner

	app := fx.New(
		logger.Module(),
		logger.WithFxDefaultLogger(),
		config.Module(),
		logging.Module(),
		scanbill.Module(),
		session.Module(),
		notify.Module(),
		ui.Module(),
		fx.Populate(&runner),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(ctx)
	}()

	return runner.Execute()
}

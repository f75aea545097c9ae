package components

import (
	"context"
	"log/slog"
	"time"

	"shiftlink/internal/pkg/clock"
	"shiftlink/internal/pkg/config"
	"shiftlink/internal/usecase"
	"shiftlink/internal/usecase/commands"
	"shiftlink/internal/usecase/queries"
	"shiftlink/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	fx.Invoke(startExpirySweeper),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	shared.NewShiftLocks,
	func(cfg config.Config) config.AssignmentConfig {
		return cfg.Assignment
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewAssignmentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewShiftQueries,
		queries.NewOfferQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// startExpirySweeper runs the periodic offer expiry sweep for offers no
// request has touched since their horizon passed.
func startExpirySweeper(lc fx.Lifecycle, assignments commands.AssignmentCommands, cfg config.AssignmentConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.ExpirySweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						expired, err := assignments.SweepExpiredOffers(ctx)
						if err != nil {
							slog.Error("offer expiry sweep failed", "error", err.Error())
							continue
						}
						if expired > 0 {
							slog.Info("offer expiry sweep completed", "expired", expired)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

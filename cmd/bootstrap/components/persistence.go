package components

import (
	"shiftlink/internal/infra/db"
	"shiftlink/internal/infra/payment"
	"shiftlink/internal/infra/readstore"
	"shiftlink/internal/infra/uow"
	"shiftlink/internal/pkg/config"
	"shiftlink/internal/usecase/commands"
	"shiftlink/internal/usecase/queries"
	"shiftlink/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Read stores back both the query side and the coordinator's
		// pre-lock lookups.
		fx.Annotate(
			readstore.NewShiftReadStore,
			fx.As(new(queries.ShiftReadStore)),
		),
		fx.Annotate(
			readstore.NewOfferReadStore,
			fx.As(new(queries.OfferReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		// Payment collaborator
		NewPaymentClient,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewPaymentClient(cfg config.Config) commands.PaymentGateway {
	return payment.NewClient(cfg.Payment)
}

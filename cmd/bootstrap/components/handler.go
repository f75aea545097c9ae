package components

import (
	"shiftlink/internal/handler"
	"shiftlink/internal/handler/api"
	"shiftlink/internal/handler/middleware"
	"shiftlink/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig {
			return cfg.Cookie
		},
		api.NewAuthHandler,
		api.NewShiftHandler,
		api.NewOfferHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

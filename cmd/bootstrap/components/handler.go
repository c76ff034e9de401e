package components

import (
	"charterdesk/internal/handler"
	"charterdesk/internal/handler/api"
	"charterdesk/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewListingHandler,
		api.NewQuoteHandler,
		api.NewLeadHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

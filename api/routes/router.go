package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/kitchenboard/api/controllers"
	"github.com/angelmondragon/kitchenboard/api/middleware"
	"github.com/angelmondragon/kitchenboard/internal/orders"
	"github.com/angelmondragon/kitchenboard/pkg/config"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	metricsHandler http.Handler,
	boardService controllers.BoardService,
	settingsService controllers.SettingsService,
	ticketService controllers.TicketService,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins...),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": dbP,
			"redis":    redisP,
		}))
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/board", func(r chi.Router) {
			r.Get("/", controllers.BoardView(boardService, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireBoardOperator(logg))
				r.Post("/refresh", controllers.BoardRefresh(boardService, logg))
				r.Post("/orders/{orderId}/status", controllers.BoardAdvanceOrder(boardService, logg))
				r.Post("/groups/{groupKey}/print", controllers.BoardPrintGroup(boardService, logg))
			})
		})

		r.Route("/v1/settings", func(r chi.Router) {
			r.Get("/", controllers.SettingsGet(settingsService, logg))
			r.With(middleware.RequireBoardOperator(logg)).Put("/", controllers.SettingsUpdate(settingsService, logg))
		})

		r.Route("/v1/tickets", func(r chi.Router) {
			r.Get("/", controllers.TicketList(ticketService, logg))
			r.Get("/{ticketId}", controllers.TicketDetail(ticketService, logg))
			r.Get("/{ticketId}/print", controllers.TicketPrintView(ticketService, logg))
		})

		r.Route("/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersHistory(ordersService, logg))
			r.With(middleware.RequireOrderManager(logg)).Post("/{orderId}/status", controllers.OrderSetStatus(ordersService, logg))
		})
	})

	return r
}

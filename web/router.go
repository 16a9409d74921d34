package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/keysesh/keeper-league-manager-sub004/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, admin AdminCreds) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", rootHandler(ctrl, render))

	r.Get("/players/{playerID}", getPlayerHandler(ctrl, render))

	r.Route("/leagues", func(r chi.Router) {
		r.Get("/", listLeaguesHandler(ctrl, render))
		r.Post("/", addLeagueHandler(ctrl, render))
		r.Get("/user/{username}", userLeaguesHandler(ctrl, render))

		r.Route("/{leagueID:\\d+}", func(r chi.Router) {
			r.Get("/", getLeagueHandler(ctrl, render))
			r.Delete("/", deleteLeagueHandler(ctrl, render))
			r.Get("/chain", chainHandler(ctrl, render))
			r.Get("/champion", championHandler(ctrl, render))

			// A history sync walks the whole league chain and can take a
			// while, so sync actions get a longer timeout.
			r.With(middleware.Timeout(2 * time.Minute)).
				Post("/sync", syncActionHandler(ctrl, render))
			r.Get("/sync", syncStatusHandler(ctrl, render))

			r.Get("/keepers", getKeepersHandler(ctrl, render))
			r.Post("/keepers/override", overrideKeeperHandler(ctrl, render))
			r.Get("/keepers/overrides", getOverridesHandler(ctrl, render))

			r.Get("/settings", getSettingsHandler(ctrl, render))
			r.Put("/settings", saveSettingsHandler(ctrl, render))

			r.Get("/players/{playerID}/timeline", timelineHandler(ctrl, render))
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth("klm", map[string]string{admin.User: admin.Password}))
		r.Use(middleware.Timeout(2 * time.Minute)) // Set a longer timeout for /admin actions

		r.Post("/players", forceUpdatePlayers(ctrl, render))
	})

	return r
}

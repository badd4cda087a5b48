package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/pairs-tournament/docs"
	"github.com/Dosada05/pairs-tournament/handlers"
)

const requestTimeout = 30 * time.Second

type Options struct {
	AllowedOrigins []string
}

// Setup mounts every endpoint on a new chi router.
func Setup(
	opts Options,
	tournamentHandler *handlers.TournamentHandler,
	categoryHandler *handlers.CategoryHandler,
	webSocketHandler *handlers.WebSocketHandler,
) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// websocket connections outlive the request timeout
	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(requestTimeout))

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListHandler)
			r.Post("/", tournamentHandler.CreateHandler)
			r.Get("/overview", tournamentHandler.OverviewHandler)

			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Get("/", tournamentHandler.GetByIDHandler)
				r.Delete("/", tournamentHandler.DeleteHandler)
				r.Post("/draw", tournamentHandler.DrawHandler)
				r.Post("/cancel", tournamentHandler.CancelHandler)
				r.Post("/categories", tournamentHandler.AddCategoryHandler)

				r.Route("/categories/{categoryID}", func(r chi.Router) {
					r.Get("/", categoryHandler.GetHandler)
					r.Get("/standings", categoryHandler.StandingsHandler)
					r.Post("/teams", categoryHandler.RegisterTeamHandler)
					r.Post("/close-registration", categoryHandler.CloseRegistrationHandler)
					r.Post("/draw", categoryHandler.DrawZonesHandler)
					r.Post("/manual-zones", categoryHandler.SetupManualZonesHandler)
					r.Put("/matches/{matchID}/score", categoryHandler.RecordScoreHandler)
					r.Post("/playoffs", categoryHandler.StartPlayoffsHandler)
					r.Post("/advance", categoryHandler.AdvanceBracketHandler)
					r.Post("/finish", categoryHandler.FinishHandler)
				})
			})
		})
	})

	return router
}

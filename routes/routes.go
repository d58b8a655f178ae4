package routes

import (
	"net/http"
	"time"

	_ "github.com/Dosada05/task-battle/docs" // registers the swagger document
	"github.com/Dosada05/task-battle/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const requestTimeout = 30 * time.Second

func SetupRoutes(
	router chi.Router,
	allowedOrigins []string,
	tournamentHandler *handlers.TournamentHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Route("/tournaments", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(requestTimeout))

		r.Post("/", tournamentHandler.CreateHandler)
		r.Post("/import", tournamentHandler.ImportHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByIDHandler)
			r.Delete("/", tournamentHandler.DeleteHandler)
			r.Get("/priorities", tournamentHandler.PrioritiesHandler)
			r.Get("/export", tournamentHandler.ExportHandler)
			r.Post("/export", tournamentHandler.UploadExportHandler)

			r.Post("/matches/{matchID}/start", tournamentHandler.StartMatchHandler)
			r.Post("/matches/{matchID}/advance", tournamentHandler.AdvanceMatchHandler)
		})
	})
}

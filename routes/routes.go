package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vamshigadde09/PickleMatch-sub001/handlers"
	"github.com/vamshigadde09/PickleMatch-sub001/middleware"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Room      *handlers.RoomHandler
	Game      *handlers.GameHandler
	Websocket *handlers.WebsocketHandler
}

func InitRoutes(h Handlers, jwtSecret []byte) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Get("/me", h.User.GetProfile)
		r.Put("/me/avatar", h.User.UploadAvatar)

		r.Route("/rooms", func(r chi.Router) {
			r.Post("/", h.Room.CreateRoom)
			r.Get("/", h.Room.ListRooms)
			r.Post("/join", h.Room.JoinRoom)

			r.Route("/{roomID}", func(r chi.Router) {
				r.Get("/", h.Room.GetRoom)
				r.Put("/cover", h.Room.UploadCover)
				r.Get("/ws", h.Websocket.Subscribe)

				r.Post("/games", h.Game.StartGame)
				r.Get("/games", h.Game.ListRoomGames)
			})
		})

		r.Route("/games/{gameID}", func(r chi.Router) {
			r.Get("/", h.Game.GetGame)
			r.Post("/finalize", h.Game.FinalizeOutcome)
			r.Post("/points", h.Game.DistributePoints)
		})

		r.Post("/matches/{matchID}/result", h.Game.SubmitResult)
	})

	return router
}

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(withGZip)
	router.Use(middleware.Timeout(h.requestTimeout))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/healthz", h.healthz)
		r.Get("/api/version", h.getServerVersion)
		r.Post("/api/auth/token", h.issueToken)
	})

	// routes with authorization
	router.Route("/api/videos", func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/", h.loadVideo)
		r.Get("/", h.listVideos)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getVideo)
			r.Delete("/", h.deleteVideo)

			r.Post("/frames", h.decodeFrames)
			r.Get("/frames", h.listFrames)
			r.Get("/frames/{name}", h.getFrame)

			r.Post("/subtitles", h.fetchSubtitle)
			r.Get("/subtitles", h.getSubtitles)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)

	r.Route("/videos/{videoID}", func(r chi.Router) {
		r.Get("/qualities", app.QualityOptionsHandler)
		r.Get("/stream/{quality}", app.StreamVideoHandler)
		r.Get("/hls/{resolution}/index.m3u8", app.HLSManifestHandler)
		r.Get("/hls/{resolution}/{segment}", app.HLSSegmentHandler)
	})

	return r
}

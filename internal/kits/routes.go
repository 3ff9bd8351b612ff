package kits

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", KitsHandler)

	r.Route("/filters", func(r chi.Router) {
		r.Get("/mfrs", distinctHandler("mfr"))
		r.Get("/kitmfgs", distinctHandler("kitmfg"))
		r.Get("/kitmdls", KitMdlsHandler)
		r.Get("/states", distinctHandler("state"))
		r.Get("/regions", RegionNamesHandler)
		r.Get("/values/{field}", DistinctFieldHandler)
	})

	r.Route("/agg", func(r chi.Router) {
		r.Get("/by_kitmfg", aggHandler(CountByKitMfg))
		r.Get("/by_state", aggHandler(CountByState))
		r.Get("/by_engcat", aggHandler(CountByEngCat))
	})

	r.Get("/metrics/city_count", CityCountHandler)

	return r
}

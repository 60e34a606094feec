package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	cardHandler "github.com/zhouzirui/hearthstone/backend/internal/handler/card"
	"github.com/zhouzirui/hearthstone/backend/internal/handler/page"
	middlewarePkg "github.com/zhouzirui/hearthstone/backend/internal/middleware"
	"github.com/zhouzirui/hearthstone/backend/internal/model/card"
	"github.com/zhouzirui/hearthstone/backend/internal/service/lookup"
	"github.com/zhouzirui/hearthstone/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the lookup service.
func NewRouter(store card.Store, lookupSvc *lookup.Service, pages *page.Handler, defaultLimit int) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	cards := cardHandler.New(lookupSvc, store, defaultLimit)

	r.Route("/api", func(api chi.Router) {
		api.Get("/", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"text": "Hello Hearthstone FastAPI"})
		})

		api.Route("/v1", func(v1 chi.Router) {
			cards.RegisterRoutes(v1)
		})
	})

	pages.RegisterRoutes(r)
	r.Mount("/main", pages.LandingRouter())

	return r
}

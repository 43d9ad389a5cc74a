package web

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) listApartmentsHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.catalog.Apartments())
}

func (s *Server) listItemsHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.catalog.Items())
}

func (s *Server) listGuestsHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.ledger.Guests())
}

func (s *Server) guestOrdersHandler(w http.ResponseWriter, r *http.Request) {
	guest := r.PathValue("guest")

	s.writeJSON(w, map[string]any{
		"guest":  guest,
		"points": s.ledger.Points(guest),
		"orders": s.history.Orders(guest),
	})
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r *http.ServeMux) {
	middlewares := []func(http.Handler) http.Handler{s.loggerMiddleware(), s.recoverMiddleware()}

	r.Handle(
		"GET /api/apartments/v1",
		s.applyMiddlewares(http.HandlerFunc(s.listApartmentsHandler), middlewares...),
	)
	r.Handle(
		"GET /api/items/v1",
		s.applyMiddlewares(http.HandlerFunc(s.listItemsHandler), middlewares...),
	)
	r.Handle(
		"GET /api/guests/v1",
		s.applyMiddlewares(http.HandlerFunc(s.listGuestsHandler), middlewares...),
	)
	r.Handle(
		"GET /api/guests/v1/{guest}/orders",
		s.applyMiddlewares(http.HandlerFunc(s.guestOrdersHandler), middlewares...),
	)
	r.Handle(
		fmt.Sprintf("GET %s", s.conf.LivenessEndpoint),
		s.applyMiddlewares(http.HandlerFunc(s.livenessHandler), middlewares...),
	)
}

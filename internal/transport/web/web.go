// Package web exposes a read-only inspection API over the booking stores:
// apartments, items, guest balances and order histories. All mutation stays
// on the terminal flow; this server only observes.
package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/debuggershut/booking/internal/booking"
	"github.com/debuggershut/booking/internal/logger"
)

type catalog interface {
	Apartments() map[string]booking.Apartment
	Items() map[string]float64
}

type ledger interface {
	Guests() map[string]int
	Points(name string) int
}

type history interface {
	Orders(guest string) []booking.OrderSummary
}

type Server struct {
	srv     *http.Server
	router  *http.ServeMux
	l       *logger.Logger
	conf    Conf
	catalog catalog
	ledger  ledger
	history history
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
}

func New(ctx context.Context, conf Conf, catalog catalog, ledger ledger, history history) (*Server, error) {
	mux := http.NewServeMux()

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout * time.Second, //nolint:durationcheck
		ErrorLog:          conf.ServerLogger,
		Handler:           mux,
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	server := &Server{
		srv:     srv,
		router:  mux,
		l:       conf.L,
		conf:    conf,
		catalog: catalog,
		ledger:  ledger,
		history: history,
	}

	server.addRoutes(mux)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}

package webserver

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

type Manager struct {
	addr string
	r    *mux.Router
}

func NewManager(addr string) *Manager {
	m := &Manager{
		addr: addr,
		r:    mux.NewRouter(),
	}

	m.r.Use(corsMiddleware)
	return m
}

func (m *Manager) Router() *mux.Router {
	return m.r
}

// corsMiddleware opens every route to any origin; the API is consumed by
// browser and mobile clients on other hosts.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Manager) Serve() {
	srv := &http.Server{
		Addr: m.addr,
		// Good practice to set timeouts to avoid Slowloris attacks.
		// The write timeout is generous because a session load holds the
		// request open while the gateway fetches and parses.
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.r,
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		log.Printf("webserver listening on %s\n", m.addr)
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)
	// We'll accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	// SIGKILL, SIGQUIT or SIGTERM (Ctrl+/) will not be caught.
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	// Block until we receive our signal.
	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Doesn't block if no connections, but will otherwise wait
	// until the timeout deadline.
	srv.Shutdown(ctx)
	log.Println("webserver shutting down")
}

// package server hosts the localhost HTTP surface used during the interactive
// OAuth grant. It serves exactly one flow: the authorization-code callback.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Handler is an [http.Handler] that knows which path patterns it serves.
type Handler interface {
	http.Handler
	Routes() []string
}

// Serve starts an HTTP server for the handler's routes on addr and returns a
// shutdown function. The server runs until shutdown is called.
func Serve(addr string, handler Handler) (func(context.Context) error, error) {
	mux := http.NewServeMux()
	for _, route := range handler.Routes() {
		mux.Handle(route, handler)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Give the listener a moment to fail fast on a busy port.
	select {
	case err := <-errCh:
		return nil, err
	case <-time.After(50 * time.Millisecond):
	}

	return srv.Shutdown, nil
}

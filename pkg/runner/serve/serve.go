package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tableflip.dev/penpal/pkg/server"
)

type Serve struct {
	Addr     string
	BasePath string
}

// Do runs the sync server until the context is cancelled.
func (n *Serve) Do(ctx context.Context) error {
	if n.BasePath == "" {
		return errors.New("can not serve, no storage path")
	}
	addr := n.Addr
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: server.New(n.BasePath).Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("sync server listening on %s\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

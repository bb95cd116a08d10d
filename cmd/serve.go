package main

import (
	"context"
	"net/http"

	"github.com/desertthunder/kmx/internal/server"
	"github.com/desertthunder/kmx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the list preview server until the context is canceled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr
	}

	router := r.previewRouter()
	r.writePlain("Serving lists at http://%s/lists?index=/api/topics.json\n", addr)
	return server.ListenAndServe(ctx, addr, router, r.logger)
}

func (r *Runner) previewRouter() *server.BasicRouter {
	router := server.NewBasicRouter()
	router.Use(server.Recover(r.logger), server.Logging(r.logger))
	router.Handler(server.NewListHandler(r.aggregator, r.logger))
	router.HandleFunc(http.MethodGet, "/templates", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		data, err := shared.MarshalJSON(r.renderer.IDs(), false)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write(data)
	})
	return router
}

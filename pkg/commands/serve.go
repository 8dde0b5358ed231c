package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"tableflip.dev/penpal/pkg/runner/serve"
	"tableflip.dev/penpal/pkg/store"
)

func addServe(topLevel *cobra.Command) {
	var addr, path string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sync server other penpal instances can log in to",
		Example: `
penpal serve
penpal serve --addr :9090 --path /var/lib/penpal-server
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			base := path
			if base == "" {
				cfg, err := store.LoadConfig()
				if err != nil {
					return err
				}
				base = filepath.Join(cfg.BasePath(), "server")
			}
			s := serve.Serve{Addr: addr, BasePath: base}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address.")
	cmd.Flags().StringVar(&path, "path", "", "Document storage directory (defaults under the config dir).")

	topLevel.AddCommand(cmd)
}

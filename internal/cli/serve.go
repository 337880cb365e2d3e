package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazewalk/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve game sessions over HTTP",
		Long: `Start the HTTP API. Each POST /v1/mazes creates a game session; the
client moves the player, starts searches and advances them with
POST /v1/mazes/{id}/step at its own pace. Idle sessions expire after
server.session_ttl.`,
		Example: `  mazewalk serve --addr :9090
  curl -X POST localhost:9090/v1/mazes -d '{"width":10,"height":10,"seed":7}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}
			printInfo("Listening on %s", StyleHighlight.Render(cfg.Server.Addr))
			printDetail("max %d sessions, idle timeout %s", cfg.Server.MaxSessions, cfg.Server.SessionTTL)
			return server.New(cfg, loggerFromContext(cmd.Context())).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

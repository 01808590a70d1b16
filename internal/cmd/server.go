package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"marmer/internal/api"
	"marmer/internal/cloudinary"
	"marmer/internal/cmd/flags"
	"marmer/internal/config"
	"marmer/internal/core"
	"marmer/internal/metrics"
	"marmer/internal/store"
)

var serverCmd = &cli.Command{
	Name:  "server",
	Usage: "Serve the Marmer API and the prometheus metrics endpoint",
	Flags: []cli.Flag{
		flags.Addr,
		flags.MetricsAddr,
		flags.DataDir,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&config.Cloudinary{}),
			pal.Provide[core.Store](&store.Store{}),
			pal.Provide[core.MediaStorage](&cloudinary.Client{}),
			pal.Provide(&api.Backend{}),
			pal.Provide(&api.Server{}),
			pal.Provide(&metrics.Server{}),
		)
	},
}

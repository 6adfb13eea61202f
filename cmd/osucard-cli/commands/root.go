package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"osucard-backend/lib/restyutil"
	"osucard-backend/lib/scrapers/osu"
	"osucard-backend/lib/scrapers/osuskills"
	"osucard-backend/lib/telemetry"
	"time"

	"github.com/spf13/cobra"
)

type clientsKeyType int

var clientsKey clientsKeyType

type clients struct {
	osu    *osu.Client
	skills *osuskills.Client
}

func getClients(ctx context.Context) clients {
	return ctx.Value(clientsKey).(clients)
}

var (
	verbose          *bool
	fixtureDir       *string
	timeout          *time.Duration
	cloudflareBypass *bool
)

var rootCmd = &cobra.Command{
	Use:   "osucard-cli",
	Short: "osucard-cli fetches osu! profiles, osu!Skills reports and images from the command line.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)

		var output restyutil.InstrumentOutput
		if *verbose {
			out, err := restyutil.NewFilesystemOutput("<dev_state>/resty/cli")
			if err != nil {
				slog.Warn("http exchanges will not be dumped", "err", err)
			} else {
				output = out
			}
		}

		osuClient, err := osu.NewClient(osu.ClientOptions{
			FixtureDir:       *fixtureDir,
			Timeout:          *timeout,
			InstrumentOutput: output,
		})
		if err != nil {
			return err
		}
		skillsClient, err := osuskills.NewClient(osuskills.ClientOptions{
			CloudflareBypass: *cloudflareBypass,
			Timeout:          *timeout,
			InstrumentOutput: output,
		})
		if err != nil {
			return err
		}

		cmd.SetContext(context.WithValue(cmd.Context(), clientsKey, clients{
			osu:    osuClient,
			skills: skillsClient,
		}))
		return nil
	},
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	verbose = flags.BoolP("verbose", "v", false, "Enable debug logging and dump http exchanges to dev/.state/resty/cli.")
	fixtureDir = flags.String("fixtures", osu.DefaultFixtureDir, "Directory holding the example user and images.")
	timeout = flags.Duration("timeout", time.Second*30, "Timeout of a single upstream request, 0 to disable.")
	cloudflareBypass = flags.Bool("cloudflare-bypass", true, "Send browser-like requests to osu!Skills.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

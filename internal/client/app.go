package client

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/deep-video-discovery/internal/adapter"
	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/models"
)

// annotationPublic marks commands that talk to public endpoints only and
// therefore skip the token exchange.
const annotationPublic = "public"

type (
	configLoader   func(overrides config.ClientConfig) (*config.ClientConfig, error)
	adapterFactory func(cfg config.ClientConfig, logger *logger.Logger) (adapter.ServerAdapter, error)
)

// App is the `dvd` CLI. Flags are bound to the root command; the adapter is
// created in the persistent pre-run hook once the flags are parsed.
type App struct {
	buildInfo models.AppBuildInfo

	loadConfig configLoader
	newAdapter adapterFactory

	flags    config.ClientConfig
	clientID string

	cfg     *config.ClientConfig
	adapter adapter.ServerAdapter
	logger  *logger.Logger

	out    io.Writer
	errOut io.Writer
}

func NewApp(buildInfo models.AppBuildInfo) *App {
	return &App{
		buildInfo:  buildInfo,
		loadConfig: config.GetClientConfig,
		newAdapter: adapter.NewHTTPServerAdapter,
		logger:     logger.Nop(),
		out:        os.Stdout,
		errOut:     os.Stderr,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	return root.ExecuteContext(ctx)
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "dvd",
		Short: "Command-line client of the deep-video-discovery server",
		Long: `dvd loads videos into a deep-video-discovery server, decodes them into
frames, fetches subtitles and inspects the video database.

The server address and API key are read from DVD_SERVER_ADDRESS and
DVD_API_KEY (or a .env file) unless given as flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.flags.ServerAddress, "server", "s", "", "server base URL (env DVD_SERVER_ADDRESS)")
	flags.StringVarP(&a.flags.APIKey, "api-key", "k", "", "API key (env DVD_API_KEY)")
	flags.DurationVar(&a.flags.RequestTimeout, "timeout", 0, "request timeout (env DVD_REQUEST_TIMEOUT)")
	flags.StringVar(&a.flags.LogLevel, "log-level", "", "log level (env DVD_LOG_LEVEL)")
	flags.StringVar(&a.clientID, "client-id", "", "name recorded as the subject of the bearer token")

	root.AddCommand(
		a.tokenCommand(),
		a.loadCommand(),
		a.listCommand(),
		a.getCommand(),
		a.waitCommand(),
		a.decodeCommand(),
		a.subtitleCommand(),
		a.subtitlesCommand(),
		a.framesCommand(),
		a.deleteCommand(),
		a.versionCommand(),
	)

	return root
}

// setup loads the configuration, creates the server adapter and, unless the
// command is public, exchanges the API key for a bearer token.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig(a.flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	if cfg.LogLevel != "" {
		a.logger = logger.NewConsoleLogger("dvd", cfg.LogLevel)
	}

	a.adapter, err = a.newAdapter(*cfg, a.logger)
	if err != nil {
		return fmt.Errorf("create server adapter: %w", err)
	}

	if cmd.Annotations[annotationPublic] != "" {
		return nil
	}

	if _, err = a.adapter.Authenticate(cmd.Context(), cfg.APIKey, a.clientID); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	a.logger.Debug().Str("server", cfg.ServerAddress).Msg("authenticated")

	return nil
}

func (a *App) serverAdapter() (adapter.ServerAdapter, error) {
	if a.adapter == nil {
		return nil, ErrNoAdapter
	}
	return a.adapter, nil
}

package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/journey/pkg/commands/options"
	"tableflip.dev/journey/pkg/logging"
	"tableflip.dev/journey/pkg/store"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "journey",
		Short: options.Wrap80("Edit journey maps as YAML and see them drawn as columns of event cards."),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			oo.Out = cmd.OutOrStdout()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, oo)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addRender(topLevel)
	addExports(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// env is the configuration, exports library and logger shared by commands.
type env struct {
	cfg store.Config
	lib store.Library
	log *zap.Logger
}

// loadEnv reads configuration and opens the library. Interactive commands log
// to the configured file since the terminal belongs to the UI; the rest log
// to stderr.
func loadEnv(logToFile bool) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	lib, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	path := ""
	if logToFile {
		path = cfg.LogFile()
	}
	log, err := logging.New(cfg.LogLevel(), path)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, lib: lib, log: log}, nil
}

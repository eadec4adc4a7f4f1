package cmd

import (
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kubev2v/docsql/internal/config"
)

// EnvPrefix prefixes the environment variables that override flags,
// e.g. DOCSQL_SERVER_HTTP_PORT for --server-http-port.
const EnvPrefix = "DOCSQL"

func NewRootCommand() *cobra.Command {
	cfg := config.NewConfigurationWithOptionsAndDefaults()

	root := &cobra.Command{
		Use:           "docsql",
		Short:         "Translate document filters into SQL",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			viper.AutomaticEnv()
			viper.SetEnvPrefix(EnvPrefix)
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			cobraflags.PresetRequiredFlags(EnvPrefix, make(map[*pflag.Flag]bool), cmd)
		},
	}

	root.AddCommand(
		NewRunCommand(cfg),
		NewTranslateCommand(),
	)

	return root
}

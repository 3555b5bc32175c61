package cmd

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"

	"github.com/govindrajkumar/easy-lease-sub000/cmd/server"
	"github.com/govindrajkumar/easy-lease-sub000/cmd/sweep"
)

// config search paths when --config is not given
var configPaths = []string{".", "/etc/easylease", "$HOME/.easylease"}

func New() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "easylease",
		Short: "Easy Lease notification and e-signature backend",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			setupLogging(verbose, terminal.IsTerminal(unix.Stdout))
		},
	}

	cobra.OnInitialize(func() {
		if err := loadConfig(configFile); err != nil {
			logrus.WithError(err).Fatal("unable to read config from file")
		}
	})
	cmd.PersistentFlags().BoolP("verbose", "v", false, "make output more verbose")
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is default.yaml)")

	cmd.AddCommand(
		NewVersionCommand(),
		server.NewServeCommand(),
		sweep.NewSweepCommand(),
	)
	return cmd
}

// setupLogging logs JSON unless output is a terminal or verbose is set.
func setupLogging(verbose, tty bool) {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if !verbose && !tty {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	})
}

// loadConfig reads default.yaml (or configFile) and lets env vars such as
// APP_ESIGN_TESTMODE override nested keys.
func loadConfig(configFile string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("default")
		for _, p := range configPaths {
			viper.AddConfigPath(p)
		}
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/logsift/internal/logging"
)

// Config keys shared by flags, environment (LOGSIFT_*) and the config file.
const (
	keyOutput     = "output"
	keyLogLevel   = "log_level"
	keyLogJSON    = "log_json"
	keyOutDir     = "out_dir"
	keyFileFormat = "file_format"
	keyStrict     = "strict"
	keySummary    = "summary"
)

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree with its own configuration instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "logsift",
		Short: "logsift: structured views of server log files",
		Long: `logsift parses Laravel application logs, Apache error logs and
combined access logs into structured records, filters them by date,
severity, status or method, and saves the result as JSON or YAML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			logging.Init(cmd.ErrOrStderr(), logging.ParseLevel(v.GetString(keyLogLevel)), v.GetBool(keyLogJSON))
			if used := v.ConfigFileUsed(); used != "" {
				logrus.WithField("file", used).Debug("loaded config")
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.logsift.yaml)")
	pf.StringP("output", "o", "json", "console output format: json, yaml, text")
	pf.String("log-level", "warn", "diagnostic log level: debug, info, warn, error")
	pf.String("out-dir", "", "directory for saved output (default: $HOME/logs, or the working directory on Windows)")
	pf.String("file-format", "json", "saved output format: json, yaml")

	cobra.CheckErr(v.BindPFlag(keyOutput, pf.Lookup("output")))
	cobra.CheckErr(v.BindPFlag(keyLogLevel, pf.Lookup("log-level")))
	cobra.CheckErr(v.BindPFlag(keyOutDir, pf.Lookup("out-dir")))
	cobra.CheckErr(v.BindPFlag(keyFileFormat, pf.Lookup("file-format")))

	root.AddCommand(newParseCmd(v))
	root.AddCommand(newFormatsCmd())
	return root
}

func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".logsift")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("logsift")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && (cfgFile != "" || !errors.As(err, &notFound)) {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	upyun "github.com/upyun-contrib/upyun-go"
	"github.com/upyun-contrib/upyun-go/cli"
)

var version = "dev"

var (
	cfgFile     string
	profileName string
	jsonOutput  bool
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:     "upx",
	Version: version,
	Short:   "Client for UpYun cloud storage",
	Long: `upx - command-line client for UpYun cloud storage.

Connection settings are resolved from, in increasing precedence:
  1. the selected profile in ~/.upx/config.yaml
  2. UPYUN_* environment variables
  3. command-line flags

Run 'upx configure add <name>' to create a profile interactively.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		readConfig(cmd.Flags())
		setupLogging()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.upx/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "P", "", "profile name (env: UPYUN_PROFILE)")
	rootCmd.PersistentFlags().String("bucket", "", "bucket name (env: UPYUN_BUCKET)")
	rootCmd.PersistentFlags().String("operator", "", "operator name (env: UPYUN_OPERATOR)")
	rootCmd.PersistentFlags().String("password", "", "operator password (env: UPYUN_PASSWORD)")
	rootCmd.PersistentFlags().String("endpoint", "", "access line: auto, telecom, cnc, ctt (env: UPYUN_ENDPOINT)")
	rootCmd.PersistentFlags().Bool("https", false, "use https (env: UPYUN_HTTPS)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig merges profile, environment, and flag settings. Viper resolves
// flags over environment variables, so those two layers collapse into one.
func buildConfig() (*cli.Config, error) {
	var configs []*cli.Config

	configPath := cfgFile
	if configPath == "" {
		configPath = cli.DefaultConfigPath()
	}

	if configPath != "" {
		fileCfg, err := cli.LoadConfigFile(configPath)
		if err != nil {
			// Only fail when the user named the file explicitly; the
			// default path is allowed to be absent.
			if cfgFile != "" {
				return nil, err
			}
		} else {
			name := profileName
			if name == "" {
				name = cli.ProfileFromEnv()
			}
			profile, err := fileCfg.GetProfile(name)
			if err != nil {
				if cfgFile != "" || name != "" {
					return nil, err
				}
			} else {
				configs = append(configs, cli.ConfigFromProfile(profile))
			}
		}
	}

	configs = append(configs, &cli.Config{
		Bucket:   viper.GetString("bucket"),
		Operator: viper.GetString("operator"),
		Password: viper.GetString("password"),
		Endpoint: viper.GetString("endpoint"),
		UseHTTPS: viper.GetBool("https"),
	})

	return cli.MergeConfig(configs...), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() cli.Formatter {
	return cli.NewFormatter(jsonOutput, quiet)
}

// getClient creates a configured client.
func getClient() (*upyun.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}

	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}

	return upyun.New(clientCfg)
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return cli.DefaultConfigPath()
}

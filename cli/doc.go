// Package cli provides profile-based configuration and output formatting for
// the upx command-line client.
//
// Connection settings are resolved by merging, in increasing precedence,
// the profile selected from ~/.upx/config.yaml, UPYUN_* environment
// variables, and command-line flags:
//
//	cfgFile, err := cli.LoadConfigFile(cli.DefaultConfigPath())
//	profile, err := cfgFile.GetProfile("production")
//	cfg := cli.MergeConfig(cli.ConfigFromProfile(profile), cli.ConfigFromEnv(), flagCfg)
//	clientCfg, err := cfg.ClientConfig()
//
// Formatters render operation results as human-readable text or
// newline-delimited JSON:
//
//	formatter := cli.NewFormatter(jsonOutput, quiet)
//	_ = formatter.FormatUsage(os.Stdout, usage)
package cli

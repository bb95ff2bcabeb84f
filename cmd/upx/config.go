package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func readConfig(flags *pflag.FlagSet) {
	if err := viper.BindPFlags(flags); err != nil {
		slog.Warn("failed to bind flags", "err", err)
	}

	viper.SetEnvPrefix("UPYUN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

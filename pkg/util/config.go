package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

func ReadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./data/")
	viper.AddConfigPath(".")

	setConfigDefaults()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// defaults only
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func setConfigDefaults() {
	viper.SetDefault("graph_file", "./data/hh.graph")
	viper.SetDefault("graph_storage", "memory")
	viper.SetDefault("block_cache_size", 256)
	viper.SetDefault("distance_table_file", "")
	viper.SetDefault("nearest_search_radius_km", 0.5)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("api_port", 6060)
	viper.SetDefault("api_timeout", "30s")
	viper.SetDefault("rate_limit_rps", 50.0)
	viper.SetDefault("rate_limit_burst", 100)
}

package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"bgmix/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "BGMIX_LOG_LEVEL")
	viper.BindEnv("bgg.source", "BGMIX_BGG_SOURCE")
	viper.BindEnv("bgg.xmlBaseUrl", "BGMIX_BGG_XML_BASE_URL")
	viper.BindEnv("bgg.graphqlUrl", "BGMIX_BGG_GRAPHQL_URL")
	viper.BindEnv("session.saveInterval", "BGMIX_SESSION_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "BGMIX_CACHE_ENABLED")
	viper.BindEnv("cache.size", "BGMIX_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "BoardGameMixer"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

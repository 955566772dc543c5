package providers

import (
	"fmt"
	"path/filepath"
	"paywall/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "PAYWALL_LOG_LEVEL")
	viper.BindEnv("storage.dir", "PAYWALL_STORAGE_DIR")
	viper.BindEnv("cache.enabled", "PAYWALL_CACHE_ENABLED")
	viper.BindEnv("cache.size", "PAYWALL_CACHE_SIZE")
	viper.BindEnv("offer.launchCutoff", "PAYWALL_LAUNCH_CUTOFF")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyDefaults(&conf)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "PaywallDecisionDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func applyDefaults(conf *structures.Config) {
	if conf.Offer.Cooldown <= 0 {
		conf.Offer.Cooldown = 72 * time.Hour
	}
	if conf.Guard.LockWindow <= 0 {
		conf.Guard.LockWindow = 2 * time.Second
	}
	if conf.Guard.GlobalWindow <= 0 {
		conf.Guard.GlobalWindow = 500 * time.Millisecond
	}
}

package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common"
	bitmapconfig "github.com/gaze-network/bitmap-indexer/modules/bitmap/config"
	"github.com/gaze-network/bitmap-indexer/pkg/logger"
	"github.com/gaze-network/bitmap-indexer/pkg/logger/slogx"
	"github.com/gaze-network/bitmap-indexer/pkg/middleware/requestlogger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configOnce sync.Once
	config     = &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		Network: common.NetworkMainnet,
		HTTPServer: HTTPServerConfig{
			Port: 8080,
		},
	}
)

type Config struct {
	Logger     logger.Config    `mapstructure:"logger"`
	Network    common.Network   `mapstructure:"network"`
	HTTPServer HTTPServerConfig `mapstructure:"http_server"`
	Modules    Modules          `mapstructure:"modules"`
}

type HTTPServerConfig struct {
	Port   int                  `mapstructure:"port"`
	Logger requestlogger.Config `mapstructure:"logger"`
}

type Modules struct {
	Bitmap bitmapconfig.Config `mapstructure:"bitmap"`
}

// BindPFlag binds a cobra flag to a configuration key.
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("failed to bind flag", slogx.String("key", key), slogx.Error(err))
	}
}

// Parse loads the configuration from the given file (or the default lookup
// path) and environment variables. Subsequent calls return the first result.
func Parse(configFile string) Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))
	configOnce.Do(func() {
		if configFile != "" {
			viper.SetConfigFile(configFile)
		} else {
			viper.AddConfigPath("./")
			viper.SetConfigName("config")
		}

		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		if err := viper.ReadInConfig(); err != nil {
			var errNotfound viper.ConfigFileNotFoundError
			if errors.As(err, &errNotfound) {
				logger.WarnContext(ctx, "config file not found, use default value", slogx.Error(err))
			} else {
				logger.PanicContext(ctx, "invalid config file", slogx.Error(err))
			}
		}

		if err := viper.Unmarshal(&config); err != nil {
			logger.PanicContext(ctx, "failed to unmarshal config", slogx.Error(err))
		}
	})

	return *config
}

// Load returns the parsed configuration.
func Load() Config {
	return Parse("")
}

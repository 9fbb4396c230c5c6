package config

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common"
	publicsaleconfig "github.com/gaze-network/public-sale/modules/publicsale/config"
	"github.com/gaze-network/public-sale/pkg/logger"
	"github.com/gaze-network/public-sale/pkg/logger/slogx"
	"github.com/gaze-network/public-sale/pkg/middleware/requestcontext"
	"github.com/gaze-network/public-sale/pkg/middleware/requestlogger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	isInit bool
	mu     sync.Mutex
	config = defaultConfig()
)

func defaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		Network: common.NetworkMainnet,
		HTTPServer: HTTPServerConfig{
			Port: 8080,
			Caller: requestcontext.WithCallerConfig{
				Header:          requestcontext.DefaultCallerHeader,
				SignatureHeader: requestcontext.DefaultCallerSignatureHeader,
				TimestampHeader: requestcontext.DefaultCallerTimestampHeader,
				MaxAge:          requestcontext.DefaultCallerMaxAge,
			},
		},
		Modules: Modules{
			PublicSale: publicsaleconfig.Default(),
		},
	}
}

type Config struct {
	Logger     logger.Config    `mapstructure:"logger"`
	Network    common.Network   `mapstructure:"network"`
	HTTPServer HTTPServerConfig `mapstructure:"http_server"`
	Modules    Modules          `mapstructure:"modules"`
}

type HTTPServerConfig struct {
	Port      int                               `mapstructure:"port"`
	Logger    requestlogger.Config              `mapstructure:"logger"`
	RequestIP requestcontext.WithClientIPConfig `mapstructure:"requestip"`
	Caller    requestcontext.WithCallerConfig   `mapstructure:"caller"`

	// AllowOrigins is the CORS allow list, e.g. "https://sale.example.com". Cross-origin requests are refused when empty.
	AllowOrigins string `mapstructure:"allow_origins"`
}

type Modules struct {
	PublicSale publicsaleconfig.Config `mapstructure:"publicsale"`
}

// Parse parse the configuration from environment variables and the given config file.
// An empty configFile looks up `config.yaml` in the working directory.
func Parse(configFile ...string) Config {
	mu.Lock()
	defer mu.Unlock()
	return parse(configFile...)
}

// Load returns the loaded configuration, parsing it first if needed.
func Load() Config {
	mu.Lock()
	defer mu.Unlock()
	if isInit {
		return *config
	}
	return parse()
}

// BindPFlag binds a specific key to a pflag (as used by cobra).
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slogx.String("package", "config"), slogx.Error(err))
	}
}

func parse(configFile ...string) Config {
	ctx := logger.WithContext(context.Background(), slogx.String("package", "config"))

	if len(configFile) > 0 && configFile[0] != "" {
		viper.SetConfigFile(configFile[0])
	} else {
		viper.AddConfigPath("./")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var errNotfound viper.ConfigFileNotFoundError
		if errors.As(err, &errNotfound) {
			logger.WarnContext(ctx, "Config file not found, use default config value", slogx.Error(err))
		} else {
			logger.PanicContext(ctx, "Invalid config file", slogx.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		logger.PanicContext(ctx, "Something went wrong, failed to unmarshal config", slogx.Error(err))
	}

	isInit = true
	return *config
}

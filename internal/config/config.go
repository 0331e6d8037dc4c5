package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Mode         string        `mapstructure:"mode"`
	ServerURL    string        `mapstructure:"server_url"`
	ControlAddr  string        `mapstructure:"control_addr"`
	ControlToken string        `mapstructure:"control_token"`
	DataDir      string        `mapstructure:"data_dir"`
	Language     string        `mapstructure:"language"`
	LocalesPath  string        `mapstructure:"locales_path"`
	AudioEnabled bool          `mapstructure:"audio_enabled"`
	SampleRate   int           `mapstructure:"sample_rate"`
	ReadLimit    int64         `mapstructure:"read_limit"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PingPeriod   time.Duration `mapstructure:"ping_period"`
	LogLevel     string        `mapstructure:"log_level"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"server":       "server_url",
	"control-addr": "control_addr",
	"data-dir":     "data_dir",
	"lang":         "language",
	"log-level":    "log_level",
}

// Load reads config/config.<CONFIG_ENV>.yaml, then VOICECLIENT_* environment
// variables, then command-line flags, each overriding the previous.
func Load(args []string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("server_url", "ws://localhost:3000/ws")
	v.SetDefault("control_addr", "127.0.0.1:8090")
	v.SetDefault("control_token", "")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("language", "")
	v.SetDefault("locales_path", "")
	v.SetDefault("audio_enabled", true)
	v.SetDefault("sample_rate", 48000)
	v.SetDefault("read_limit", 1<<20)
	v.SetDefault("write_timeout", "5s")
	v.SetDefault("ping_period", "54s")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("VOICECLIENT")
	v.AutomaticEnv()

	fs := pflag.NewFlagSet("voiceclient", pflag.ContinueOnError)
	fs.String("server", "", "server websocket URL")
	fs.String("control-addr", "", "listen address of the local control API")
	fs.String("data-dir", "", "directory of the local store (empty keeps state in memory)")
	fs.String("lang", "", "interface language (en, zh)")
	fs.String("log-level", "", "log level")
	noAudio := fs.Bool("no-audio", false, "run without microphone and speaker")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	if *noAudio {
		v.Set("audio_enabled", false)
	}

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fmt.Printf("🧩 Mode: %s | Server: %s | Control: %s\n", cfg.Mode, cfg.ServerURL, cfg.ControlAddr)
	return &cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("server_url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("server_url: scheme must be ws or wss, got %q", u.Scheme)
	}
	if c.SampleRate <= 0 {
		return errors.New("sample_rate must be positive")
	}
	if c.WriteTimeout <= 0 {
		return errors.New("write_timeout must be positive")
	}
	return nil
}

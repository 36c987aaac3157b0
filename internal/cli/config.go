package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/seitarof/go-explorer/internal/catalog"
)

const (
	keyDir       = "dir"
	keyStatus    = "status"
	keyTags      = "tags"
	keyTests     = "tests"
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
	keyPrivate   = "private"
	keyMode      = "mode"

	// EnvPrefix prefixes every environment override, e.g. GOEXPLORER_STATUS.
	EnvPrefix = "GOEXPLORER"
	// ConfigName is the base name of the optional config file.
	ConfigName = ".go-explorer"
	// DefaultStatusPath is where the session snapshot is kept.
	DefaultStatusPath = ".go-explorer/status.yaml"
)

// Config stores options shared by every command.
type Config struct {
	Dir        string
	StatusPath string
	Tags       []string
	Tests      bool
	LogLevel   string
	LogFormat  string
	Private    bool
	Mode       catalog.Mode
}

// Query is the default filter derived from the config.
func (c *Config) Query() catalog.Query {
	return catalog.Query{Mode: c.Mode, IncludePrivate: c.Private}
}

// BindFlags registers the persistent options on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(keyDir, "", "directory packages are resolved from")
	fs.String(keyStatus, DefaultStatusPath, "path of the session snapshot")
	fs.String(keyTags, "", "comma-separated build tags")
	fs.Bool(keyTests, false, "include _test.go files")
	fs.String(keyLogLevel, "warn", "log level")
	fs.String(keyLogFormat, "console", "log format (json or console)")
	fs.Bool(keyPrivate, false, "list unexported members")
	fs.String(keyMode, string(catalog.ModeContains), "filter match mode (contains or startswith)")
}

// LoadConfig resolves options from flags, GOEXPLORER_* variables, an
// optional .go-explorer.yaml and defaults, in that order of precedence.
// configDirs lists where the config file is searched.
func LoadConfig(fs *pflag.FlagSet, configDirs ...string) (*Config, error) {
	v := viper.New()

	v.SetDefault(keyStatus, DefaultStatusPath)
	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyLogFormat, "console")
	v.SetDefault(keyMode, string(catalog.ModeContains))

	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if len(configDirs) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	mode, err := catalog.ParseMode(v.GetString(keyMode))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Dir:        v.GetString(keyDir),
		StatusPath: v.GetString(keyStatus),
		Tags:       tagList(v.Get(keyTags)),
		Tests:      v.GetBool(keyTests),
		LogLevel:   v.GetString(keyLogLevel),
		LogFormat:  v.GetString(keyLogFormat),
		Private:    v.GetBool(keyPrivate),
		Mode:       mode,
	}
	if strings.TrimSpace(cfg.StatusPath) == "" {
		return nil, fmt.Errorf("--%s must not be empty", keyStatus)
	}
	if cfg.Dir != "" && !filepath.IsAbs(cfg.StatusPath) {
		cfg.StatusPath = filepath.Join(cfg.Dir, cfg.StatusPath)
	}
	return cfg, nil
}

// tagList accepts tags as a comma-separated string (flags, env) or a YAML
// list (config file).
func tagList(raw any) []string {
	switch v := raw.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, splitCommaList(fmt.Sprint(item))...)
		}
		return out
	case []string:
		return splitCommaList(strings.Join(v, ","))
	case string:
		return splitCommaList(v)
	}
	return nil
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

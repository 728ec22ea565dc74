package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/datumctl/internal/datum/timestamp"
	"github.com/danmuck/datumctl/internal/logging"
)

const EnvConfigPath = "DATUMCTL_CONFIG"

type Config struct {
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
	Server ServerConfig `toml:"server"`
	Scan   ScanConfig   `toml:"scan"`
}

type LogConfig struct {
	Level   string `toml:"level"`
	NoColor bool   `toml:"no_color"`
}

type OutputConfig struct {
	Format     string `toml:"format"`
	Color      bool   `toml:"color"`
	TimeLayout string `toml:"time_layout"`
}

type ServerConfig struct {
	Name           string   `toml:"name"`
	Addr           string   `toml:"addr"`
	CorsOrigins    []string `toml:"cors_origins"`
	TrustedProxies []string `toml:"trusted_proxies"`
	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string `toml:"tls_cert_file"`
	TLSKeyFile  string `toml:"tls_key_file"`
	// AuthToken, when set, is required as a bearer token on /v1 routes.
	AuthToken string `toml:"auth_token"`
}

type ScanConfig struct {
	FollowSymlinks bool `toml:"follow_symlinks"`
	// MaxDepth limits directory recursion; 0 means unlimited.
	MaxDepth int `toml:"max_depth"`
}

func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Output: OutputConfig{
			Format:     "table",
			Color:      true,
			TimeLayout: timestamp.RFC3339Nano,
		},
		Server: ServerConfig{
			Name:           "datumctl",
			Addr:           ":9300",
			CorsOrigins:    []string{"http://localhost:3000"},
			TrustedProxies: []string{"127.0.0.1", "::1"},
		},
	}
}

// DefaultPath returns $DATUMCTL_CONFIG or <user config dir>/datumctl/config.toml.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "datumctl.toml"
	}
	return filepath.Join(dir, "datumctl", "config.toml")
}

// Load reads a TOML config from path on top of Default and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
		}
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}
	normalize(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when path does not
// exist and was not explicitly requested.
func LoadOrDefault(path string, explicit bool) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	}
	return Load(path)
}

func normalize(cfg *Config) {
	cfg.Log.Level = strings.TrimSpace(cfg.Log.Level)
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	cfg.Server.Name = strings.TrimSpace(cfg.Server.Name)
	cfg.Server.Addr = strings.TrimSpace(cfg.Server.Addr)
	cfg.Server.CorsOrigins = normalizeList(cfg.Server.CorsOrigins)
	cfg.Server.TrustedProxies = normalizeList(cfg.Server.TrustedProxies)
	cfg.Server.TLSCertFile = strings.TrimSpace(cfg.Server.TLSCertFile)
	cfg.Server.TLSKeyFile = strings.TrimSpace(cfg.Server.TLSKeyFile)
	cfg.Server.AuthToken = strings.TrimSpace(cfg.Server.AuthToken)
}

func Validate(cfg Config) error {
	if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
		return fmt.Errorf("log.level %q is not a known level", cfg.Log.Level)
	}
	switch cfg.Output.Format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("output.format %q must be table, json or yaml", cfg.Output.Format)
	}
	if cfg.Output.TimeLayout == "" {
		return fmt.Errorf("output.time_layout is required")
	}
	if cfg.Server.Name == "" {
		return fmt.Errorf("server.name is required")
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	for _, proxy := range cfg.Server.TrustedProxies {
		if !validProxy(proxy) {
			return fmt.Errorf("server.trusted_proxies entry %q is not an IP or CIDR", proxy)
		}
	}
	if (cfg.Server.TLSCertFile == "") != (cfg.Server.TLSKeyFile == "") {
		return fmt.Errorf("server.tls_cert_file and server.tls_key_file must be set together")
	}
	if cfg.Scan.MaxDepth < 0 {
		return fmt.Errorf("scan.max_depth must not be negative")
	}
	return nil
}

func validProxy(v string) bool {
	if net.ParseIP(v) != nil {
		return true
	}
	_, _, err := net.ParseCIDR(v)
	return err == nil
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

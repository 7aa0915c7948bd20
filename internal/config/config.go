package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/decred/slog"
	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"

	"rhystmorgan/btcterm/internal/address"
	"rhystmorgan/btcterm/internal/amount"
)

const (
	defaultConfigFilename = "btcterm.yaml"
	defaultDataDirname    = ".btcterm"
	defaultNetwork        = "mainnet"
	defaultUnit           = "BTC"
	defaultDebugLevel     = "info"
	defaultRecentLimit    = 50
)

// Config holds the application settings. Values are layered: defaults, then
// BTCTERM_* environment variables, then the YAML config file, then
// command-line flags.
type Config struct {
	ConfigFile  string   `short:"C" long:"configfile" description:"Path to YAML configuration file" yaml:"-"`
	DataDir     string   `short:"A" long:"datadir" description:"Directory for the address book and logs" yaml:"data_dir"`
	Network     string   `long:"network" description:"Bitcoin network: mainnet, testnet, regtest or signet" yaml:"network"`
	Unit        string   `short:"u" long:"unit" description:"Display unit: BTC or mBTC" yaml:"unit"`
	DebugLevel  string   `short:"d" long:"debuglevel" description:"Logging level: trace, debug, info, warn, error, critical, off" yaml:"debug_level"`
	Passphrase  string   `long:"passphrase" description:"Encrypt the address book with this passphrase" yaml:"passphrase"`
	Spendable   int64    `long:"spendable" description:"Balance in satoshis used by the ! amount shortcut" yaml:"spendable"`
	RecentLimit int      `long:"recentlimit" description:"Number of recently paid addresses to keep" yaml:"recent_limit"`
	AddContacts []string `long:"addcontact" description:"Add a contact as 'Name <address>' before starting" yaml:"-"`

	params *chaincfg.Params
	unit   amount.Unit
}

// ErrHelp is returned by Load when the help message was requested.
var ErrHelp = errors.New("help requested")

func GetDefaultConfig() *Config {
	return &Config{
		DataDir:     defaultDataDir(),
		Network:     defaultNetwork,
		Unit:        defaultUnit,
		DebugLevel:  defaultDebugLevel,
		RecentLimit: defaultRecentLimit,
	}
}

// Load builds the configuration from the environment, the config file and
// args (without the program name). Unparsed arguments are returned.
func Load(args []string) (*Config, []string, error) {
	cfg := GetDefaultConfig()
	applyEnv(cfg)

	// Pre-parse the command line to find the config file and data dir.
	preCfg := *cfg
	preParser := flags.NewParser(&preCfg, flags.HelpFlag|flags.IgnoreUnknown)
	if _, err := preParser.ParseArgs(args); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			return nil, nil, fmt.Errorf("%w\n%s", ErrHelp, flagErr.Message)
		}
		return nil, nil, err
	}

	configFile := preCfg.ConfigFile
	explicit := configFile != ""
	if !explicit {
		configFile = filepath.Join(cleanAndExpandPath(preCfg.DataDir), defaultConfigFilename)
	}
	if err := loadFile(cfg, cleanAndExpandPath(configFile), explicit); err != nil {
		return nil, nil, err
	}

	// Parse the command line again so flags take precedence over the file.
	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	remaining, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	cfg.DataDir = cleanAndExpandPath(cfg.DataDir)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, remaining, nil
}

func loadFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Network = getEnvOrDefault("BTCTERM_NETWORK", cfg.Network)
	cfg.Unit = getEnvOrDefault("BTCTERM_UNIT", cfg.Unit)
	cfg.DataDir = getEnvOrDefault("BTCTERM_DATA_DIR", cfg.DataDir)
	cfg.DebugLevel = getEnvOrDefault("BTCTERM_DEBUG_LEVEL", cfg.DebugLevel)
	cfg.Passphrase = getEnvOrDefault("BTCTERM_PASSPHRASE", cfg.Passphrase)
	cfg.Spendable = parseInt64OrDefault("BTCTERM_SPENDABLE", cfg.Spendable)
}

// Validate checks every setting and resolves the network and unit.
func (c *Config) Validate() error {
	params, err := address.ParamsForNetwork(c.Network)
	if err != nil {
		return fmt.Errorf("invalid network: %s (must be mainnet, testnet, regtest or signet)", c.Network)
	}

	unit, err := amount.ParseUnit(c.Unit)
	if err != nil {
		return fmt.Errorf("invalid unit %q: %w", c.Unit, err)
	}

	if _, ok := slog.LevelFromString(c.DebugLevel); !ok {
		return fmt.Errorf("invalid debug level: %s", c.DebugLevel)
	}

	if c.DataDir == "" {
		return errors.New("data directory must be set")
	}

	if c.Spendable < 0 {
		return fmt.Errorf("spendable balance must be non-negative, got: %d", c.Spendable)
	}

	if c.RecentLimit <= 0 {
		return fmt.Errorf("recent limit must be positive, got: %d", c.RecentLimit)
	}

	c.params = params
	c.unit = unit
	return nil
}

// Params returns the network parameters. Only valid after Validate.
func (c *Config) Params() *chaincfg.Params {
	return c.params
}

// AmountUnit returns the display unit. Only valid after Validate.
func (c *Config) AmountUnit() amount.Unit {
	return c.unit
}

func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDataDirname
	}
	return filepath.Join(home, defaultDataDirname)
}

// cleanAndExpandPath expands a leading ~ and environment variables.
func cleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return filepath.Clean(os.ExpandEnv(path))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

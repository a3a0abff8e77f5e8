package main

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/cascadefund/cascade/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Config is the content of the cascaded configuration file.
//
//   debug = false
//
//   [store]
//   path = "./data"
//
//   [log]
//   level = "info"   # debug, info, error or none
//   format = "plain" # plain or json
type Config struct {
	Debug bool        `toml:"debug"`
	Store StoreConfig `toml:"store"`
	Log   LogConfig   `toml:"log"`
}

type StoreConfig struct {
	// Path of the leveldb directory. Empty path keeps the state in memory.
	Path string `toml:"path"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{Path: "./data"},
		Log: LogConfig{
			Level:  "info",
			Format: "plain",
		},
	}
}

// LoadConfig reads the configuration file. Values missing in the file keep
// their defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	if path == "" {
		return conf, nil
	}
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		if os.IsNotExist(err) {
			return conf, errors.Wrapf(errors.ErrInput, "config file %q does not exist", path)
		}
		return conf, errors.Wrapf(errors.ErrInput, "cannot decode config: %s", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return conf, errors.Wrapf(errors.ErrInput, "unknown config keys: %v", undecoded)
	}
	return conf, conf.Validate()
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	var errs error
	switch c.Log.Format {
	case "plain", "json":
	default:
		errs = errors.AppendField(errs, "log.format", errors.Wrapf(errors.ErrInput, "unknown format %q", c.Log.Format))
	}
	if _, err := log.AllowLevel(c.Log.Level); err != nil {
		errs = errors.AppendField(errs, "log.level", errors.Wrap(errors.ErrInput, err.Error()))
	}
	return errs
}

// Logger returns a logger writing to w as configured.
func (c Config) Logger(w io.Writer) (log.Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	w = log.NewSyncWriter(w)
	var logger log.Logger
	if c.Log.Format == "json" {
		logger = log.NewTMJSONLogger(w)
	} else {
		logger = log.NewTMLogger(w)
	}
	allow, err := log.AllowLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, allow), nil
}

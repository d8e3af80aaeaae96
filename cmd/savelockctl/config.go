package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/saylorsolutions/savelock/pkg/device"
	"github.com/saylorsolutions/savelock/pkg/prefs"
	"github.com/saylorsolutions/savelock/pkg/securestore"
	flag "github.com/spf13/pflag"
)

// config is read from the environment first, and flags override it.
type config struct {
	Path           string `env:"SAVELOCK_PATH" envDefault:"savelock.json"`
	FileKey        string `env:"SAVELOCK_FILE_KEY"`
	Secret         string `env:"SAVELOCK_SECRET"`
	DeviceID       string `env:"SAVELOCK_DEVICE_ID"`
	InstallIDFile  string `env:"SAVELOCK_INSTALL_ID_FILE"`
	Lock           string `env:"SAVELOCK_LOCK" envDefault:"none"`
	ReadForeign    bool   `env:"SAVELOCK_READ_FOREIGN"`
	Emergency      bool   `env:"SAVELOCK_EMERGENCY"`
	PreserveLegacy bool   `env:"SAVELOCK_PRESERVE_LEGACY"`
	Passphrase     string `env:"SAVELOCK_PASSPHRASE"`
	Verbose        bool   `env:"SAVELOCK_VERBOSE"`
}

func parseEnv() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (cfg *config) bindFlags(flags *flag.FlagSet) {
	flags.StringVarP(&cfg.Path, "path", "p", cfg.Path, "Preferences file. Paths ending in .db use SQLite, anything else is a JSON document. [SAVELOCK_PATH]")
	flags.StringVar(&cfg.FileKey, "file-key", cfg.FileKey, "Hex key used to XOR screen a JSON preferences file. [SAVELOCK_FILE_KEY]")
	flags.StringVarP(&cfg.Secret, "secret", "s", cfg.Secret, "Store secret, the default is used if not set. [SAVELOCK_SECRET]")
	flags.StringVarP(&cfg.DeviceID, "device-id", "d", cfg.DeviceID, "Device identifier override. [SAVELOCK_DEVICE_ID]")
	flags.StringVar(&cfg.InstallIDFile, "install-id-file", cfg.InstallIDFile, "File holding a generated install identifier, used before the machine identifier. [SAVELOCK_INSTALL_ID_FILE]")
	flags.StringVarP(&cfg.Lock, "lock", "l", cfg.Lock, "Device lock level: none, soft, or strict. [SAVELOCK_LOCK]")
	flags.BoolVar(&cfg.ReadForeign, "read-foreign", cfg.ReadForeign, "Read values locked to other devices. [SAVELOCK_READ_FOREIGN]")
	flags.BoolVar(&cfg.Emergency, "emergency", cfg.Emergency, "Ignore device locks entirely. [SAVELOCK_EMERGENCY]")
	flags.BoolVar(&cfg.PreserveLegacy, "preserve-legacy", cfg.PreserveLegacy, "Keep plain entries after migrating them. [SAVELOCK_PRESERVE_LEGACY]")
	flags.StringVar(&cfg.Passphrase, "passphrase", cfg.Passphrase, "Passphrase for export and import. [SAVELOCK_PASSPHRASE]")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log store diagnostics to stderr. [SAVELOCK_VERBOSE]")
}

func (cfg *config) logger() *log.Logger {
	if cfg.Verbose {
		return log.New(os.Stderr, "savelockctl: ", 0)
	}
	return log.New(io.Discard, "", 0)
}

func (cfg *config) deviceSource() device.Source {
	if len(cfg.DeviceID) > 0 {
		return device.Static(cfg.DeviceID)
	}
	if len(cfg.InstallIDFile) > 0 {
		return device.Chain(device.InstallID(cfg.InstallIDFile), device.MachineID())
	}
	return device.MachineID()
}

// openPrefs picks the backend by file extension.
func (cfg *config) openPrefs(logger *log.Logger) (prefs.Prefs, func() error, error) {
	noop := func() error { return nil }
	if strings.EqualFold(filepath.Ext(cfg.Path), ".db") {
		db, err := prefs.OpenSQLite(cfg.Path, prefs.SQLiteLogger(logger))
		if err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil
	}
	var opts []prefs.FileOpt
	if len(cfg.FileKey) > 0 {
		key, err := hex.DecodeString(cfg.FileKey)
		if err != nil {
			return nil, noop, fmt.Errorf("file key must be hex encoded: %w", err)
		}
		opts = append(opts, prefs.ScreenedWith(key))
	}
	f, err := prefs.OpenFile(cfg.Path, opts...)
	if err != nil {
		return nil, noop, err
	}
	return f, noop, nil
}

func (cfg *config) storeOptions(logger *log.Logger, onAltered, onForeign func()) ([]securestore.Option, error) {
	level, err := securestore.ParseLockLevel(cfg.Lock)
	if err != nil {
		return nil, err
	}
	opts := []securestore.Option{
		securestore.WithLogger(logger),
		securestore.WithDeviceSource(cfg.deviceSource()),
		securestore.WithLockLevel(level),
		securestore.WithReadForeignSaves(cfg.ReadForeign),
		securestore.WithEmergencyMode(cfg.Emergency),
		securestore.WithPreserveLegacyEntries(cfg.PreserveLegacy),
		securestore.OnAlterationDetected(onAltered),
		securestore.OnPossibleForeignSaveDetected(onForeign),
	}
	if len(cfg.Secret) > 0 {
		opts = append(opts, securestore.WithSecret(cfg.Secret))
	}
	return opts, nil
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/saylorsolutions/savelock/cmd/internal"
	"github.com/saylorsolutions/savelock/pkg/backup"
	"github.com/saylorsolutions/savelock/pkg/securestore"
)

var (
	errAltered  = errors.New("stored value failed verification")
	errForeign  = errors.New("stored value is locked to another device")
	errNotFound = errors.New("no value stored")
)

type session struct {
	cfg     config
	store   *securestore.Store
	altered bool
	foreign bool
}

type command struct {
	usage    string
	minArgs  int
	variadic bool
	writes   bool
	run      func(s *session, args []string) error
}

var commands = map[string]command{
	"get": {
		usage:   "get TYPE KEY",
		minArgs: 2,
		// Reads may migrate legacy values.
		writes: true,
		run: func(s *session, args []string) error {
			h, err := lookupHandler(args[0])
			if err != nil {
				return err
			}
			if !s.store.Has(args[1]) {
				return fmt.Errorf("%w for '%s'", errNotFound, args[1])
			}
			val := h.get(s.store, args[1])
			if s.altered {
				return fmt.Errorf("%w: '%s'", errAltered, args[1])
			}
			if s.foreign {
				if !s.cfg.ReadForeign {
					return fmt.Errorf("%w: '%s'", errForeign, args[1])
				}
				internal.Echo("Value for '%s' is locked to another device", args[1])
			}
			internal.Print("%s", val)
			return nil
		},
	},
	"set": {
		usage:   "set TYPE KEY VALUE",
		minArgs: 3,
		writes:  true,
		run: func(s *session, args []string) error {
			h, err := lookupHandler(args[0])
			if err != nil {
				return err
			}
			return h.set(s.store, args[1], args[2])
		},
	},
	"has": {
		usage:   "has KEY",
		minArgs: 1,
		run: func(s *session, args []string) error {
			internal.Print("%t", s.store.Has(args[0]))
			return nil
		},
	},
	"delete": {
		usage:   "delete KEY",
		minArgs: 1,
		writes:  true,
		run: func(s *session, args []string) error {
			return s.store.Delete(args[0])
		},
	},
	"raw": {
		usage:   "raw KEY",
		minArgs: 1,
		run: func(s *session, args []string) error {
			raw := s.store.GetRaw(args[0])
			if len(raw) == 0 {
				return fmt.Errorf("%w for '%s'", errNotFound, args[0])
			}
			internal.Print("%s", raw)
			return nil
		},
	},
	"set-raw": {
		usage:   "set-raw KEY VALUE",
		minArgs: 2,
		writes:  true,
		run: func(s *session, args []string) error {
			return s.store.SetRaw(args[0], args[1])
		},
	},
	"type": {
		usage:   "type KEY",
		minArgs: 1,
		run: func(s *session, args []string) error {
			raw := s.store.GetRaw(args[0])
			if len(raw) == 0 {
				return fmt.Errorf("%w for '%s'", errNotFound, args[0])
			}
			internal.Print("%s", securestore.RawType(raw))
			return nil
		},
	},
	"export": {
		usage:    "export FILE KEY...",
		minArgs:  2,
		variadic: true,
		run: func(s *session, args []string) error {
			pass, err := s.passphrase()
			if err != nil {
				return err
			}
			gen, err := backup.NewKeyGenerator(backup.SetShortDelayIterations())
			if err != nil {
				return err
			}
			out, err := os.Create(args[0])
			if err != nil {
				return err
			}
			n, err := backup.Export(out, s.store, args[1:], pass, gen)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				_ = os.Remove(args[0])
				return err
			}
			internal.Echo("Exported %d records to '%s'", n, args[0])
			return nil
		},
	},
	"import": {
		usage:   "import FILE",
		minArgs: 1,
		writes:  true,
		run: func(s *session, args []string) error {
			pass, err := s.passphrase()
			if err != nil {
				return err
			}
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() {
				_ = in.Close()
			}()
			n, err := backup.Import(in, s.store, pass)
			if err != nil {
				return err
			}
			internal.Echo("Imported %d records from '%s'", n, args[0])
			return nil
		},
	},
}

func (s *session) passphrase() (backup.Passphrase, error) {
	if len(s.cfg.Passphrase) == 0 {
		return nil, errors.New("a passphrase is required, set --passphrase or SAVELOCK_PASSPHRASE")
	}
	return backup.Passphrase(s.cfg.Passphrase), nil
}

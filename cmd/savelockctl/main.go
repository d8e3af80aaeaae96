package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/awnumar/memguard"
	"github.com/saylorsolutions/savelock/cmd/internal"
	"github.com/saylorsolutions/savelock/pkg/securestore"
	flag "github.com/spf13/pflag"
)

var errUsage = errors.New("usage")

// version is set at build time.
var version = "dev"

func main() {
	memguard.CatchInterrupt()
	defer memguard.Purge()

	if err := run(os.Args[1:]); err != nil {
		memguard.Purge()
		if errors.Is(err, errUsage) {
			if err.Error() != errUsage.Error() {
				internal.Echo("%v", err)
			}
			os.Exit(2)
		}
		internal.Fatal("Error: %v", err)
	}
}

func run(args []string) error {
	cfg, err := parseEnv()
	if err != nil {
		return err
	}
	var helpFlag bool
	flags := flag.NewFlagSet("savelockctl", flag.ContinueOnError)
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	cfg.bindFlags(flags)
	flags.Usage = func() {
		internal.Echo(`
savelockctl %s inspects and edits secure store preferences, and backs them up to passphrase protected archives.

USAGE:  savelockctl [FLAGS] COMMAND ARGS...

COMMANDS:
%s
TYPES:
    %s

FLAGS:
%s
Flags override the environment variables shown in brackets.
`, version, commandUsages(), typeNames(), flags.FlagUsages())
	}
	if len(args) == 0 {
		flags.Usage()
		return errUsage
	}
	if err := flags.Parse(args); err != nil {
		flags.Usage()
		return fmt.Errorf("error parsing flags: %w", err)
	}
	if helpFlag {
		flags.Usage()
		return nil
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return errUsage
	}

	name := flags.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command '%s'", name)
	}
	cmdArgs := flags.Args()[1:]
	if len(cmdArgs) < cmd.minArgs || (!cmd.variadic && len(cmdArgs) > cmd.minArgs) {
		return fmt.Errorf("%w: savelockctl %s", errUsage, cmd.usage)
	}
	return runCommand(cfg, cmd, cmdArgs)
}

func runCommand(cfg config, cmd command, args []string) (err error) {
	logger := cfg.logger()
	p, closePrefs, err := cfg.openPrefs(logger)
	if err != nil {
		return fmt.Errorf("failed to open '%s': %w", cfg.Path, err)
	}
	defer func() {
		if cerr := closePrefs(); err == nil {
			err = cerr
		}
	}()

	s := &session{cfg: cfg}
	opts, err := cfg.storeOptions(logger, func() { s.altered = true }, func() { s.foreign = true })
	if err != nil {
		return err
	}
	s.store, err = securestore.New(p, opts...)
	if err != nil {
		return err
	}
	if err := cmd.run(s, args); err != nil {
		return err
	}
	if cmd.writes {
		return s.store.Save()
	}
	return nil
}

func commandUsages() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	var out string
	for _, name := range names {
		out += "    " + commands[name].usage + "\n"
	}
	return out
}

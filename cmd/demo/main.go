package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/wippyai/icu-bridge/icu4x"
	"github.com/wippyai/icu-bridge/runtime"
	"github.com/wippyai/icu-bridge/terminus"
)

type options struct {
	configFile  string
	backend     string
	wasmFile    string
	logLevel    string
	funcName    string
	args        string
	list        bool
	schema      bool
	manifest    bool
	interactive bool
}

func main() {
	var o options
	flag.StringVar(&o.configFile, "config", "", "Path to a YAML runtime configuration")
	flag.StringVar(&o.backend, "backend", "", "Core backend: native or wazero (overrides config)")
	flag.StringVar(&o.wasmFile, "wasm", "", "Path to a wasm build of the core (implies -backend wazero)")
	flag.StringVar(&o.logLevel, "log", "", "Log level: debug, info, warn or error (overrides config)")
	flag.StringVar(&o.funcName, "func", "", "Terminus to run, e.g. DecimalFormatter.format")
	flag.StringVar(&o.args, "args", "", "Comma-separated terminus arguments; positional arguments are used when empty")
	flag.BoolVar(&o.list, "list", false, "List termini and exit")
	flag.BoolVar(&o.schema, "schema", false, "Print the JSON schema of the terminus catalog and exit")
	flag.BoolVar(&o.manifest, "manifest", false, "Print the terminus catalog as JSON and exit")
	flag.BoolVar(&o.interactive, "i", false, "Interactive mode with TUI")
	flag.Parse()

	if err := run(o, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(o options, positional []string) error {
	switch {
	case o.schema:
		b, err := terminus.Schema()
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	case o.manifest:
		b, err := terminus.NewManifest().JSON()
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	case o.list:
		for _, t := range terminus.Termini() {
			fmt.Printf("  %-28s %s\n", t.Display, t.Signature())
			for _, p := range t.Params {
				if len(p.Values) > 0 {
					fmt.Printf("  %-28s   %s: %s\n", "", p.Name, strings.Join(p.Values, " | "))
				}
			}
		}
		return nil
	}

	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	if o.interactive || (o.funcName == "" && term.IsTerminal(int(os.Stdout.Fd()))) {
		return runInteractive(cfg)
	}
	if o.funcName == "" {
		return fmt.Errorf("no terminus named; use -func, -list or -i")
	}

	t, ok := terminus.Lookup(o.funcName)
	if !ok {
		return fmt.Errorf("unknown terminus %q; use -list", o.funcName)
	}
	args := positional
	if o.args != "" {
		args = strings.Split(o.args, ",")
	}

	ctx := context.Background()
	rt, err := runtime.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create runtime: %w", err)
	}
	defer rt.Close(ctx)

	lib, err := icu4x.New(rt)
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}

	out, err := t.Invoke(ctx, lib, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", t.Function, err)
	}
	fmt.Println(out)
	return nil
}

func loadConfig(o options) (runtime.Config, error) {
	cfg := runtime.DefaultConfig()
	if o.configFile != "" {
		var err error
		if cfg, err = runtime.LoadConfig(o.configFile); err != nil {
			return cfg, err
		}
	}
	if o.backend != "" {
		cfg.Backend = runtime.Backend(o.backend)
	}
	if o.wasmFile != "" {
		cfg.Backend = runtime.BackendWazero
		cfg.ModulePath = o.wasmFile
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, cfg.Validate()
}

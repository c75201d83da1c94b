package cli

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"examprep/internal/config"
	"examprep/internal/genai"
	"examprep/internal/sets"
	"examprep/internal/store"
	"examprep/internal/store/duck"
	"examprep/internal/store/jsonfile"
	"examprep/internal/ui"
)

// runUI builds the handler for the ui command.
func runUI(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: ~/.examprep/config.yml)")
		noColor := flags.Bool("no-color", false, "Disable ANSI colors")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		if !isTerminal(stdout) {
			fmt.Fprintln(stderr, "examprep ui requires an interactive terminal")
			return ExitError
		}

		// Best effort; a missing .env simply means the key comes from the
		// environment proper.
		_ = godotenv.Load()

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Config error: %v\n", err)
			return ExitError
		}

		st, cleanup, err := openStore(cfg, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Storage error: %v\n", err)
			return ExitError
		}
		defer cleanup()

		gateway := buildGateway(cfg, stderr)
		manager := sets.NewManager(st, gateway)
		model := ui.NewModel(st, manager, gateway, ui.Options{NoColor: *noColor})

		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(stdout))
		if _, err := program.Run(); err != nil {
			fmt.Fprintf(stderr, "UI error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

func loadConfig(path string) (config.Config, error) {
	if strings.TrimSpace(path) != "" {
		return config.Load(path)
	}
	defaultPath, err := config.ConfigPath()
	if err != nil {
		return config.Config{}, err
	}
	return config.LoadOrDefault(defaultPath)
}

// openStore builds the configured persistence backend.
func openStore(cfg config.Config, warn io.Writer) (store.Store, func(), error) {
	dataDir, err := config.DataDir(cfg)
	if err != nil {
		return nil, nil, err
	}
	switch cfg.Storage.Backend {
	case config.BackendDuckDB:
		st, err := duck.Open(filepath.Join(dataDir, "sets.duckdb"), warn)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close() }, nil
	default:
		st := jsonfile.New(filepath.Join(dataDir, jsonfile.FileName), warn)
		return st, func() {}, nil
	}
}

// buildGateway returns the live provider, or the disabled gateway with a
// warning when no API key is available.
func buildGateway(cfg config.Config, warn io.Writer) genai.Gateway {
	provider, err := genai.FromEnv(cfg.Generation.Model, cfg.Generation.APIKeyEnv)
	if err != nil {
		fmt.Fprintf(warn, "Warning: %v; AI generation and grading are disabled\n", err)
		return genai.Disabled{}
	}
	if cfg.Generation.BaseURL != "" {
		provider.BaseURL = strings.TrimRight(cfg.Generation.BaseURL, "/")
	}
	return provider
}

package cucumber

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"examprep/internal/cli"
)

// iRunCommand executes a CLI command line against injected buffers.
func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "examprep" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

// iRunInitWithTempConfig scaffolds a config under the scenario directory.
func (s *featureState) iRunInitWithTempConfig() error {
	s.configPath = filepath.Join(s.dir, "config.yml")
	return s.iRunInitAgain()
}

// iRunInitAgain re-runs init against the previously chosen config path.
func (s *featureState) iRunInitAgain() error {
	if s.configPath == "" {
		return fmt.Errorf("no config path chosen yet")
	}
	return s.iRunCommand("examprep init --config " + s.configPath)
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("expected exit code 0, got %d (stderr: %s)", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected a non-zero exit code")
	}
	return nil
}

func (s *featureState) theOutputListsCommand(name string) error {
	if !strings.Contains(s.stdout.String(), name) {
		return fmt.Errorf("command %q not listed in output:\n%s", name, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorOutputMentions(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("%q not found in stderr:\n%s", text, s.stderr.String())
	}
	return nil
}

func (s *featureState) theConfigFileExists() error {
	if s.configPath == "" {
		return fmt.Errorf("no config path chosen yet")
	}
	if _, err := os.Stat(s.configPath); err != nil {
		return fmt.Errorf("config file missing: %w", err)
	}
	return nil
}

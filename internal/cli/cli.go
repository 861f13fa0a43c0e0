// Package cli implements the zalias command tree.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"golang.org/x/term"

	"github.com/zarlcorp/zalias/internal/config"
	"github.com/zarlcorp/zalias/internal/store"
)

// DataDir returns the default data directory for zalias.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zalias"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zalias"
	}
	return home + "/.local/share/zalias"
}

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) ([]byte, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return b, nil
}

// ReadNewPassword prompts for a new password with confirmation.
func ReadNewPassword(w io.Writer) ([]byte, error) {
	pass, err := ReadPassword("master password: ", w)
	if err != nil {
		return nil, err
	}
	confirm, err := ReadPassword("confirm password: ", w)
	if err != nil {
		zcrypto.Erase(pass)
		return nil, err
	}
	defer zcrypto.Erase(confirm)

	if !bytes.Equal(pass, confirm) {
		zcrypto.Erase(pass)
		return nil, errors.New("passwords do not match")
	}
	return pass, nil
}

// IsFirstRun reports whether no vault has been created in dir yet.
// The vault's salt file is written on first open.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "salt"))
	return err != nil
}

// OpenStore prompts for the master password and opens the vault in dir.
func OpenStore(dir string) (*store.Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	var pass []byte
	var err error
	if IsFirstRun(dir) {
		pass, err = ReadNewPassword(os.Stderr)
	} else {
		pass, err = ReadPassword("master password: ", os.Stderr)
	}
	if err != nil {
		return nil, err
	}
	defer zcrypto.Erase(pass)

	return store.Open(zfilesystem.NewOSFileSystem(dir), pass)
}

// Env is what the commands need from the process.
type Env struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Version string
	Now     func() time.Time
	// OpenVault is called lazily, only by commands that touch the vault.
	OpenVault func() (*store.Store, error)
}

// DefaultEnv wires the real terminal and the vault under DataDir.
func DefaultEnv(version string) Env {
	return Env{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Version:   version,
		Now:       time.Now,
		OpenVault: func() (*store.Store, error) { return OpenStore(DataDir()) },
	}
}

// usageError marks errors caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// ExitCode maps a command error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var u usageError
	if errors.As(err, &u) {
		return 2
	}
	return 1
}

// Execute runs the command tree on args and returns the exit status.
func Execute(ctx context.Context, env Env, args []string) int {
	root := NewRootCmd(env)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(env.Stderr, "zalias: %v\n", err)
	}
	return ExitCode(err)
}

// NewRootCmd builds the command tree. The root command generates a profile.
func NewRootCmd(env Env) *cobra.Command {
	var g generateFlags

	root := &cobra.Command{
		Use:           "zalias",
		Short:         "Generate fictional profiles offline",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, env, &g)
		},
	}
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&g.names, "names", "", "YAML name list to draw from (default bundled list)")
	g.register(root)

	root.AddCommand(
		countriesCmd(env),
		categoriesCmd(env, &g),
		listCmd(env),
		forgetCmd(env),
		versionCmd(env),
	)
	return root
}

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

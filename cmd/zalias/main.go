package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"

	"github.com/zarlcorp/zalias/internal/cli"
	"github.com/zarlcorp/zalias/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zalias"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	if len(os.Args) > 1 {
		code := cli.Execute(ctx, cli.DefaultEnv(version), os.Args[1:])
		_ = app.Close()
		if code != 0 {
			os.Exit(code)
		}
		return
	}

	if err := runTUI(); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runTUI() error {
	gen, err := cli.NewGenerator("")
	if err != nil {
		return err
	}

	dataDir := cli.DataDir()
	m := tui.New(version, gen.Generate, tui.DirOpener(dataDir), cli.IsFirstRun(dataDir))

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(tui.Model); ok {
		fm.Close()
	}

	return nil
}

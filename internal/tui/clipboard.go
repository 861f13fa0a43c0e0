package tui

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = systemClipboard

// clipboardTools are tried in order; the first one on PATH wins.
var clipboardTools = map[string][][]string{
	"darwin":  {{"pbcopy"}},
	"linux":   {{"wl-copy"}, {"xclip", "-selection", "clipboard"}, {"xsel", "--clipboard", "--input"}},
	"freebsd": {{"xclip", "-selection", "clipboard"}, {"xsel", "--clipboard", "--input"}},
}

var errNoClipboard = errors.New("no clipboard tool found")

func systemClipboard(text string) error {
	argv, err := clipboardCommand(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard %s: %w", argv[0], err)
	}
	return nil
}

// clipboardCommand picks the copy command for goos.
func clipboardCommand(goos string, lookPath func(string) (string, error)) ([]string, error) {
	tools, ok := clipboardTools[goos]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not supported", errNoClipboard, goos)
	}
	var names []string
	for _, argv := range tools {
		if _, err := lookPath(argv[0]); err == nil {
			return argv, nil
		}
		names = append(names, argv[0])
	}
	return nil, fmt.Errorf("%w: install one of %s", errNoClipboard, strings.Join(names, ", "))
}

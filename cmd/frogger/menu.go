package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/frogger/internal/core"
	"github.com/vovakirdan/frogger/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start Frogger in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant and Tab for
the scoreboard. After a game ends, press Esc to return to the menu.

Examples:
  frogger menu
  frogger menu --player ann --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	store := openStore(cmd.Context())

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Player:  flagPlayer,
	}

	err := tui.RunSession(store, cfg)

	if store != nil {
		store.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

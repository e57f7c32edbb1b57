package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	showTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	showKeyStyle   = lipgloss.NewStyle().Bold(true).Width(12)
)

var showCmd = &cobra.Command{
	Use:   "show [flags] distfile [installdir [product [version]]]",
	Short: "Display the resolved configuration in human-readable form",
	Long: `Show resolves the configuration exactly like the root command but prints
a styled report instead of shell assignments. Styling is disabled when
stdout is not a terminal.`,
	Args:          cobra.MaximumNArgs(4),
	RunE:          runShow,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addResolveFlags(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, tl, err := resolveConfig(args)
	if err != nil {
		return err
	}

	styled := isatty.IsTerminal(os.Stdout.Fd())
	out := cmd.OutOrStdout()

	title := fmt.Sprintf("%s %s", cfg.Product, cfg.Version)
	if styled {
		title = showTitleStyle.Render(title)
	}
	fmt.Fprintln(out, title)

	for _, a := range assignments(cfg, tl) {
		key := a.key
		if styled {
			key = showKeyStyle.Render(key)
		}
		fmt.Fprintf(out, "  %s %s\n", key, a.value)
	}
	return nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"inkpost/internal/content"
	"inkpost/internal/content/render"
)

var errNotStructured = errors.New("input is legacy text, not a section list")

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "blogctl",
		Short:         "Render, summarize and inspect stored blog content",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(renderCmd())
	cmd.AddCommand(summaryCmd())
	cmd.AddCommand(fmtCmd())
	cmd.AddCommand(inspectCmd())
	return cmd
}

// readInput returns the named file, or stdin when no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

func renderCmd() *cobra.Command {
	var (
		mode     string
		baseURL  string
		htmlOnly bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render stored content to HTML",
		Long:  "Render decodes stored content (a section list or legacy text) and prints the renderer output as JSON, or only the document HTML with --html.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			out := render.New(baseURL).RenderStored(stored, render.ParseMode(mode))
			if htmlOnly {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out.HTML)
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "render", "Render mode: render or preview")
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:4000", "Base URL for relative image references")
	cmd.Flags().BoolVar(&htmlOnly, "html", false, "Print only the document HTML")
	return cmd
}

func summaryCmd() *cobra.Command {
	var budget int

	cmd := &cobra.Command{
		Use:   "summary [file]",
		Short: "Print the plain-text summary of stored content",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), content.SummaryFromStored(stored, budget))
			return err
		},
	}

	cmd.Flags().IntVar(&budget, "budget", content.DefaultSummaryBudget, "Maximum summary length in characters")
	return cmd
}

func fmtCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite a section list in its canonical stored form",
		Long:  "Fmt validates a section list and prints its canonical encoding. With --check it prints nothing and fails when the input is not already canonical.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			decoded := content.Decode(stored)
			if !decoded.IsStructured() {
				return errNotStructured
			}
			if err := content.Validate(decoded.Document); err != nil {
				return fmt.Errorf("invalid content: %w", err)
			}

			canonical := content.Encode(decoded.Document)
			if check {
				if strings.TrimSpace(stored) != canonical {
					return errors.New("content is not in canonical form")
				}
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), canonical)
			return err
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Only report whether the input is canonical")
	return cmd
}

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "List the sections of stored content",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			decoded := content.Decode(stored)
			fmt.Fprintf(w, "variant: %s\n", decoded.Variant)
			if !decoded.IsStructured() {
				fmt.Fprintf(w, "length: %d\n", len([]rune(decoded.Text)))
				return nil
			}

			fmt.Fprintf(w, "sections: %d\n", len(decoded.Document))
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tID\tTYPE\tLAYOUT\tTEXT")
			for i, sec := range decoded.Document {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i, sec.ID, sec.Kind, sec.Layout, preview(sec))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if err := content.Validate(decoded.Document); err != nil {
				fmt.Fprintf(w, "invalid: %v\n", err)
			} else {
				fmt.Fprintln(w, "valid")
			}
			return nil
		},
	}
	return cmd
}

// preview is the first line of a section's text, cut to 40 characters.
func preview(sec content.Section) string {
	text := sec.Text()
	if sec.Kind == content.KindTwoColumn {
		text = sec.Column(content.SideLeft).Content + " | " + sec.Column(content.SideRight).Content
	}
	text, _, _ = strings.Cut(text, "\n")
	if r := []rune(text); len(r) > 40 {
		text = string(r[:40]) + content.Ellipsis
	}
	return text
}

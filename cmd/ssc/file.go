package main

import (
	"fmt"
	"strings"

	"github.com/eolymp/go-ss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var raw bool

var htmlCmd = &cobra.Command{
	Use:   "html FILE",
	Short: "Compile one file and print the HTML page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := layout()
		if err != nil {
			return err
		}

		c := compiler(fsys)

		doc, err := c.Compile(args[0])
		if err != nil {
			return err
		}

		page, err := c.RenderPage(doc, l)
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), page)
		return err
	},
}

var latexCmd = &cobra.Command{
	Use:   "latex FILE",
	Short: "Compile one file and print LaTeX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := compiler(fsys).CompileLaTeX(args[0])
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
		return err
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Print document tree as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if raw {
			data, err := afero.ReadFile(fsys, args[0])
			if err != nil {
				return err
			}

			return ss.DumpYAML(cmd.OutOrStdout(), ss.ParseString(string(data)))
		}

		doc, err := compiler(fsys).Compile(args[0])
		if err != nil {
			return err
		}

		return ss.DumpYAML(cmd.OutOrStdout(), doc.Nodes)
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&raw, "raw", false, "print the parse tree, before normalization and resolution")
}

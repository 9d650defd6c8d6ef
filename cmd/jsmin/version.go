package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"jsmin/internal/version"
)

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json|yaml)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show jsmin build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Current()
		switch strings.ToLower(versionFormat) {
		case "pretty":
			renderVersionPretty(cmd, info)
			return nil
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		case "yaml":
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(info)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty, json or yaml)", versionFormat)
		}
	},
}

func renderVersionPretty(cmd *cobra.Command, info version.Info) {
	colorStr, _ := cmd.Root().PersistentFlags().GetString("color")
	var out io.Writer = cmd.OutOrStdout()
	if useColor(colorMode(colorStr), os.Stdout) {
		color.NoColor = false
		fmt.Fprintf(out, "jsmin %s\n", version.Colored())
	} else {
		fmt.Fprintln(out, info.String())
	}
	fmt.Fprintf(out, "go:     %s\n", info.GoVersion)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "respond",
	Short: "respond builds and serves HTTP/1.1 responses",
	Long: `respond assembles HTTP/1.1 responses from a status code, headers, cookies
and a body, and renders them in wire form. The serve command runs a small
demo server on top of the same builder.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

//go:embed static/* templates/* views/*
var content embed.FS

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "brandi",
		Short: "Brandi storefront and admin route server",
		Long: `Brandi serves the storefront and the seller back-office from a single
route table. Every path resolves to a chain of views, outermost shell first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		resolveCmd(),
		versionCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

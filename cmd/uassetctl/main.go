// Command uassetctl inspects and round-trips Unreal Engine uasset
// packages and asset-registry snapshots from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/galehaven/uasset"
	"github.com/galehaven/uasset/internal/ulog"
)

var (
	profilePath string
	profileName string
	verbose     bool
)

func main() {
	root := &cobra.Command{
		Use:   "uassetctl",
		Short: "Inspect and round-trip Unreal Engine package and registry files",
	}
	root.PersistentFlags().StringVar(&profilePath, "profile", "", "TOML file naming engine-version profiles (accepted; no subcommand reads it)")
	root.PersistentFlags().StringVar(&profileName, "profile-name", "", "profile name within --profile (accepted; no subcommand reads it)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newDumpCmd())
	root.AddCommand(newRoundtripCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print uassetctl's version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("uassetctl 0.1.0")
		},
	}
}

func newDumpCmd() *cobra.Command {
	var asRegistry bool
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Parse a package or registry file and print its structure as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &uasset.AssetOptions{Logger: loggerLogger()}

			if asRegistry {
				reg, err := uasset.OpenRegistryFile(args[0], opts)
				if err != nil {
					return err
				}
				defer reg.Close()
				return printJSON(reg)
			}

			a, err := uasset.OpenFile(args[0], opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return printJSON(a)
		},
	}
	cmd.Flags().BoolVar(&asRegistry, "registry", false, "treat the input as an asset-registry snapshot")
	return cmd
}

func newRoundtripCmd() *cobra.Command {
	var asRegistry bool
	cmd := &cobra.Command{
		Use:   "roundtrip [file]",
		Short: "Parse a file and re-serialize it, reporting the resulting byte size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &uasset.AssetOptions{Logger: loggerLogger()}

			if asRegistry {
				reg, err := uasset.OpenRegistryFile(args[0], opts)
				if err != nil {
					return err
				}
				defer reg.Close()
				out, err := reg.Write()
				if err != nil {
					return err
				}
				fmt.Printf("re-serialized %d bytes\n", len(out))
				return nil
			}

			a, err := uasset.OpenFile(args[0], opts)
			if err != nil {
				return err
			}
			defer a.Close()
			out, err := a.Write()
			if err != nil {
				return err
			}
			fmt.Printf("re-serialized %d bytes\n", len(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asRegistry, "registry", false, "treat the input as an asset-registry snapshot")
	return cmd
}

func loggerLogger() ulog.Logger {
	level := ulog.LevelWarn
	if verbose {
		level = ulog.LevelDebug
	}
	return ulog.NewFilter(ulog.NewStdLogger(os.Stderr), ulog.FilterLevel(level))
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

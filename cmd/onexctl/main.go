package main

import (
	"fmt"
	"os"

	"github.com/gasparian/onex-go/common"
	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "onexctl",
		Short: "Interactive shell for the onex similarity search engine",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := common.DefaultConfig()
			if configPath != "" {
				loaded, err := common.LoadConfig(configPath)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error! %s\n", err.Error())
					os.Exit(1)
				}
				cfg = loaded
			}

			s := newShell(&cfg, os.Stdout)
			fmt.Fprintln(os.Stdout, "Welcome to onex!")
			fmt.Fprintln(os.Stdout, "Use 'help' to see the list of available commands.")
			s.runRepl(os.Stdin)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

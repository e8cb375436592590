package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"jdex/internal/config"
	"jdex/internal/daemon"
)

var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "Show loaded javadoc archives and daemon state",
	Run:   runLibraries,
}

var librariesJSON bool

func init() {
	librariesCmd.Flags().BoolVar(&librariesJSON, "json", false, "output as JSON")
}

func runLibraries(cmd *cobra.Command, args []string) {
	client, err := connectDaemon()
	if err != nil {
		log.Fatalf("failed to connect to daemon: %v", err)
	}

	resp, err := client.Libraries(context.Background())
	if err != nil {
		log.Fatalf("libraries failed: %v", err)
	}

	if librariesJSON {
		out, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(out))
		return
	}

	if len(resp.Libraries) == 0 {
		fmt.Println("no javadoc archives loaded")
		return
	}

	for _, l := range resp.Libraries {
		version := l.Version
		if version == "" {
			version = "-"
		}
		fmt.Printf("  %-28s %-12s %6d classes  %s\n", l.Name, version, l.Classes, l.Path)
	}
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Rescan the archive directories",
	Run:   runReload,
}

func runReload(cmd *cobra.Command, args []string) {
	client, err := connectDaemon()
	if err != nil {
		log.Fatalf("failed to connect to daemon: %v", err)
	}

	resp, err := client.Reload(context.Background())
	if err != nil {
		log.Fatalf("reload failed: %v", err)
	}

	fmt.Printf("loaded %d archives (%d classes)\n", resp.Archives, resp.Classes)
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the background daemon",
	Run:   runStop,
}

func runStop(cmd *cobra.Command, args []string) {
	client := daemon.NewClient(config.SocketPath())
	if !client.IsAvailable() {
		fmt.Println("daemon is not running")
		return
	}

	if err := client.Shutdown(context.Background()); err != nil {
		// Connection reset is expected, the daemon exits after responding
		fmt.Println("daemon stopped")
		return
	}
	fmt.Println("daemon stopped")
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"jdex/internal/rpc"
)

var infoCmd = &cobra.Command{
	Use:   "info <class>",
	Short: "Show the documentation recorded for a class",
	Example: `  jdex info java.util.Map
  jdex info --methods java.lang.String
  jdex info --json com.google.common.base.Splitter`,
	Args: cobra.ExactArgs(1),
	Run:  runInfo,
}

var (
	infoFrames  bool
	infoJSON    bool
	infoMethods bool
)

func init() {
	infoCmd.Flags().BoolVar(&infoFrames, "frames", false, "link through the javadoc frame set")
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output as JSON")
	infoCmd.Flags().BoolVar(&infoMethods, "methods", false, "list every method")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	client, err := connectDaemon()
	if err != nil {
		log.Fatalf("failed to connect to daemon: %v", err)
	}

	resp, err := client.GetClass(context.Background(), rpc.ClassRequest{Name: args[0], Frames: infoFrames})
	if err != nil {
		log.Fatalf("get class failed: %v", err)
	}
	if resp == nil {
		log.Fatalf("class %s not found (try: jdex search %s)", args[0], args[0])
	}

	if infoJSON {
		out, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(out))
		return
	}

	printClass(resp)
}

func printClass(c *rpc.ClassResponse) {
	header := c.Name
	if c.Deprecated {
		header += " (deprecated)"
	}
	fmt.Println(header)

	if c.Modifiers != "" {
		fmt.Printf("  modifiers: %s\n", c.Modifiers)
	}
	if c.Extends != "" {
		fmt.Printf("  extends:   %s\n", c.Extends)
	}
	if c.Since != "" {
		fmt.Printf("  since:     %s\n", c.Since)
	}
	if c.Library != "" {
		library := c.Library
		if c.Version != "" {
			library += " " + c.Version
		}
		fmt.Printf("  library:   %s\n", library)
	}
	if c.URL != "" {
		fmt.Printf("  url:       %s\n", c.URL)
	}
	if c.Description != "" {
		fmt.Printf("\n%s\n", c.Description)
	}

	if len(c.Methods) == 0 {
		return
	}
	if !infoMethods {
		fmt.Printf("\n%d methods (use --methods to list them)\n", len(c.Methods))
		return
	}

	fmt.Println("\nmethods:")
	for _, m := range c.Methods {
		line := fmt.Sprintf("  %s(%s)", m.Name, strings.Join(m.Parameters, ", "))
		if m.Deprecated {
			line += " (deprecated)"
		}
		fmt.Println(line)
	}
}

package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"jdex/internal/rpc"
)

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Resolve a class name against the loaded archives",
	Example: `  jdex search Map
  jdex search java.util.Map
  jdex search string`,
	Args: cobra.ExactArgs(1),
	Run:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) {
	client, err := connectDaemon()
	if err != nil {
		log.Fatalf("failed to connect to daemon: %v", err)
	}

	resp, err := client.Search(context.Background(), rpc.SearchRequest{Query: args[0]})
	if err != nil {
		log.Fatalf("search failed: %v", err)
	}

	if len(resp.Names) == 0 {
		fmt.Println("no matches")
		return
	}

	for _, name := range resp.Names {
		fmt.Println(name)
	}
}

var urlCmd = &cobra.Command{
	Use:   "url <class>",
	Short: "Print the javadoc page address of a class",
	Example: `  jdex url java.util.Map
  jdex url --frames java.util.Map.Entry`,
	Args: cobra.ExactArgs(1),
	Run:  runURL,
}

var urlFrames bool

func init() {
	urlCmd.Flags().BoolVar(&urlFrames, "frames", false, "link through the javadoc frame set")
}

func runURL(cmd *cobra.Command, args []string) {
	client, err := connectDaemon()
	if err != nil {
		log.Fatalf("failed to connect to daemon: %v", err)
	}

	resp, err := client.GetClass(context.Background(), rpc.ClassRequest{Name: args[0], Frames: urlFrames})
	if err != nil {
		log.Fatalf("get class failed: %v", err)
	}
	if resp == nil {
		log.Fatalf("class %s not found", args[0])
	}

	if resp.URL == "" {
		fmt.Printf("no documentation URL recorded for %s\n", resp.Name)
		return
	}
	fmt.Println(resp.URL)
}

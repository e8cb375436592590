package cmd

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

//go:embed mcp_prelude.md
var mcpPrelude string

// agentHelp is appended to the prelude so agents driving jdex through a
// shell know the CLI surface without running --help first.
const agentHelp = `
## Commands

	jdex search <name>      resolve a class name (simple or fully qualified)
	jdex info <class>       show class documentation (--methods, --json, --frames)
	jdex url <class>        print the javadoc page address
	jdex libraries          list loaded archives (--json)
	jdex reload             rescan the archive directories

Class names are case-insensitive. Nested classes use dots, not dollar
signs: java.util.Map.Entry. When a simple name is ambiguous, search
prints every fully qualified match; pass one of them to info or url.
`

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as MCP server (publishes CLI instructions only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := binaryName()
		instructions := fmt.Sprintf(mcpPrelude, name) + agentHelp

		s := server.NewMCPServer("jdex", "1.0.0",
			server.WithInstructions(instructions),
		)
		return server.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// binaryName returns "jdex" if it's in PATH and points to the current binary,
// otherwise returns the full path to the binary.
func binaryName() string {
	exe, err := os.Executable()
	if err != nil {
		return "jdex"
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "jdex"
	}

	jdexPath, err := exec.LookPath("jdex")
	if err == nil {
		resolved, err := filepath.EvalSymlinks(jdexPath)
		if err == nil && resolved == exe {
			return "jdex"
		}
	}

	return exe
}

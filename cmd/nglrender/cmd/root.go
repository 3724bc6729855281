// Package cmd implements the nglrender CLI commands.
//
// A root command dispatches to subcommands (render, fields, check), each
// registered from its own file.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nopeforge/nopegl-go/pkg/softgl"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "nglrender",
	Short: "nglrender - offscreen nope.gl scene renderer",
	Long: `nglrender drives the nope.gl engine offscreen: it applies a
configuration file, loads a serialized scene, draws it at the requested
times and writes each captured frame to an image file.

Use "nglrender <command> --help" for more information about a command.`,
	Usage: "nglrender <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// stdout is where commands print their results.
var stdout io.Writer = os.Stdout

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp(rootCmd)
		return nil
	case "-v", "--version", "version":
		fmt.Fprintf(stdout, "nglrender version %s (built %s, scene format %s)\n", Version, BuildTime, softgl.Version)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  nglrender render --config render.yaml --scene intro.ngl")
	fmt.Fprintln(stdout, "  nglrender check --config render.toml")
	fmt.Fprintln(stdout, "  nglrender fields")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}

// flagValue reads the value of "--name value" or "--name=value" at args[i].
// It returns the value, the number of extra arguments consumed, and whether
// args[i] was the flag.
func flagValue(args []string, i int, name string) (string, int, bool, error) {
	arg := args[i]
	if v, ok := strings.CutPrefix(arg, name+"="); ok {
		return v, 0, true, nil
	}
	if arg != name {
		return "", 0, false, nil
	}
	if i+1 >= len(args) {
		return "", 0, true, fmt.Errorf("%s requires a value", name)
	}
	return args[i+1], 1, true, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/svgicons/cmd/svgicons/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "validate":
		err = commands.Validate(args)
	case "play":
		err = commands.Play(args)
	case "init":
		err = commands.Init(args)
	case "version", "-v", "--version":
		fmt.Printf("svgicons version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`svgicons - animated SVG icon toolkit

Usage: svgicons <command> [options]

Commands:
  validate        Check icon configs (payloads, selectors, conditions)
  play            Toggle an icon on a virtual clock and print each frame
  init            Write a default svgicons.toml project file
  version         Print version information
  help            Show this help message

Examples:
  svgicons validate menu.json close.toml     Validate two icon configs
  svgicons play menu.json -toggles 4         Click the icon four times
  svgicons play menu.toml -motion=false      Apply toggles without transitions
  svgicons play menu.json -width 375 -dark   Play on a dark phone-sized viewport`)
}

package commands

import (
	"flag"
	"fmt"
	"os"
)

// Init implements the 'svgicons init' command
func Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", DefaultProjectFile, "Project file to write")
	force := fs.Bool("force", false, "Overwrite an existing project file")
	fs.Parse(args)

	if _, err := os.Stat(*path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", *path)
	}

	if err := SaveConfig(*path, DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  ✓ Created %s\n", *path)
	return nil
}

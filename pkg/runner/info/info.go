package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/journey/pkg/printers"
	"tableflip.dev/journey/pkg/store"
)

// Info reports the resolved configuration.
type Info struct {
	Config  store.Config
	Library store.Library
	Stdout  io.Writer
}

// Do prints the configuration and the number of exports found.
func (n *Info) Do(ctx context.Context) error {
	pp := &printers.PrettyPrint{Out: n.Stdout}

	env := "not set"
	if override := os.Getenv(store.EnvConfigPath); override != "" {
		env = override
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Library == nil {
		return fmt.Errorf("failed to open the exports library")
	}

	file := store.ConfigFile(n.Config)
	if file == "" {
		file = "none (defaults)"
	}
	notesSource := n.Config.NotesSource()
	if notesSource == "" {
		notesSource = "none"
	}

	pp.Title("Configuration")
	pp.Fields(
		[2]string{store.EnvConfigPath, env},
		[2]string{"config file", file},
		[2]string{"exports", n.Config.ExportsPath()},
		[2]string{"notes", notesSource},
		[2]string{"log.level", n.Config.LogLevel()},
		[2]string{"log.file", n.Config.LogFile()},
		[2]string{"exports found", fmt.Sprintf("%d", len(n.Library.List(ctx)))},
	)
	return nil
}

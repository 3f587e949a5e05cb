// ABOUTME: config commands: show the effective settings, print the path, write defaults
// ABOUTME: The API key is always redacted in output

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mauromedda/automate-go/internal/config"
)

type shownSettings struct {
	*config.Settings
	RequestTimeout string `json:"request_timeout"`
}

// Run prints the effective settings as JSON.
func (ConfigShowCmd) Run(a *app) error {
	r := a.settings.Redacted()
	data, err := json.MarshalIndent(shownSettings{Settings: r, RequestTimeout: r.RequestTimeout.String()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	fmt.Fprintln(a.stdout, string(data))
	return nil
}

// Run prints the config file path.
func (ConfigPathCmd) Run(a *app) error {
	fmt.Fprintln(a.stdout, a.configPath)
	return nil
}

// Run writes the default settings unless a file already exists.
func (c *ConfigInitCmd) Run(a *app) error {
	if _, err := os.Stat(a.configPath); err == nil && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", a.configPath, err)
	}
	if err := config.Save(a.configPath, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Wrote %s\n", a.configPath)
	return nil
}

// ABOUTME: CLI structure for automate, declared with kong
// ABOUTME: Global flags plus run, ping, guide, config, and version commands

package main

import "github.com/alecthomas/kong"

// CLI defines the command-line interface.
type CLI struct {
	ConfigFile string `name:"config" type:"path" help:"Config file path (default ~/.automate/config.json)"`
	Verbose    bool   `short:"v" help:"Enable debug logging"`

	Run     RunCmd     `cmd:"" help:"Perform a task on the desktop"`
	Ping    PingCmd    `cmd:"" help:"Check the model endpoint and credential"`
	Guide   GuideCmd   `cmd:"" help:"Browse and manage the guides library"`
	Config  ConfigCmd  `cmd:"" help:"Inspect or initialize the configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// RunCmd performs one desktop task.
type RunCmd struct {
	Task       []string `arg:"" help:"Task to perform"`
	Screen     bool     `default:"true" negatable:"" help:"Attach the current screen to the first message"`
	JSON       bool     `help:"Print the result as JSON" xor:"format"`
	StreamJSON bool     `name:"stream-json" help:"Print one JSON line per step" xor:"format"`
	Live       bool     `help:"Show progress in a live terminal view" xor:"format"`
}

// PingCmd checks connectivity.
type PingCmd struct{}

// GuideCmd groups guide library commands.
type GuideCmd struct {
	List   GuideListCmd   `cmd:"" help:"List a guides directory"`
	Show   GuideShowCmd   `cmd:"" help:"Print a guide"`
	Add    GuideAddCmd    `cmd:"" help:"Add or replace a guide"`
	Index  GuideIndexCmd  `cmd:"" help:"Print the guide index used in the system prompt"`
	Search GuideSearchCmd `cmd:"" help:"Ask the guide search agent for a guide"`
}

// GuideListCmd lists a directory of the library.
type GuideListCmd struct {
	Path string `arg:"" optional:"" help:"Directory relative to the guides root"`
}

// GuideShowCmd prints a guide.
type GuideShowCmd struct {
	Path    string `arg:"" help:"Guide path, e.g. websites/github.md"`
	Preview bool   `help:"Only print the first lines"`
}

// GuideAddCmd writes a guide from a file or stdin.
type GuideAddCmd struct {
	Path string `arg:"" help:"Guide path, e.g. applications/excel.md"`
	File string `short:"f" type:"existingfile" help:"Read the guide from this file instead of stdin"`
}

// GuideIndexCmd prints the guide index.
type GuideIndexCmd struct {
	Watch bool `short:"w" help:"Keep running and reprint the index when guides change"`
}

// GuideSearchCmd runs the guide search agent.
type GuideSearchCmd struct {
	Query []string `arg:"" help:"What to find a guide for"`
}

// ConfigCmd groups configuration commands.
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration (API key redacted)"`
	Path ConfigPathCmd `cmd:"" help:"Print the config file path"`
	Init ConfigInitCmd `cmd:"" help:"Write a config file with default settings"`
}

// ConfigShowCmd prints the effective configuration.
type ConfigShowCmd struct{}

// ConfigPathCmd prints the config file path.
type ConfigPathCmd struct{}

// ConfigInitCmd writes a default config file.
type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing file"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func kongVars() kong.Vars {
	return kong.Vars{"version": version}
}

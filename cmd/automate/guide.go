// ABOUTME: guide commands: list, show, add, index (with --watch), and search
// ABOUTME: search runs the same sub-agent the primary agent reaches through guide_search

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mauromedda/automate-go/internal/corpus"
	pilog "github.com/mauromedda/automate-go/internal/log"
	"github.com/mauromedda/automate-go/internal/telemetry"
	"github.com/mauromedda/automate-go/internal/tools"
)

// Run lists entries, directories first.
func (c *GuideListCmd) Run(a *app) error {
	store, err := a.corpus()
	if err != nil {
		return err
	}
	entries, err := store.List(c.Path)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.stdout, "(empty directory)")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(a.stdout, e.String())
	}
	return nil
}

// Run prints a guide or its preview.
func (c *GuideShowCmd) Run(a *app) error {
	store, err := a.corpus()
	if err != nil {
		return err
	}
	read := store.Read
	if c.Preview {
		read = store.Preview
	}
	text, err := read(c.Path)
	if err != nil {
		return err
	}
	fmt.Fprint(a.stdout, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(a.stdout)
	}
	return nil
}

// Run stores a guide.
func (c *GuideAddCmd) Run(a *app) error {
	store, err := a.corpus()
	if err != nil {
		return err
	}

	var data []byte
	if c.File != "" {
		data, err = os.ReadFile(c.File)
	} else {
		data, err = io.ReadAll(a.stdin)
	}
	if err != nil {
		return fmt.Errorf("reading guide content: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return fmt.Errorf("guide content is empty")
	}

	if _, _, err := corpus.ParseFrontmatter(string(data)); err != nil {
		pilog.Warn("guide %s: %v", c.Path, err)
	}
	if err := store.Write(c.Path, string(data)); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Saved %s (%s)\n", c.Path, corpus.Title(c.Path, string(data)))
	return nil
}

// Run prints the index, and with --watch reprints it after every change.
func (c *GuideIndexCmd) Run(a *app) error {
	store, err := a.corpus()
	if err != nil {
		return err
	}
	if err := a.printIndex(store); err != nil {
		return err
	}
	if !c.Watch {
		return nil
	}

	w := corpus.NewWatcher(store, func() {
		fmt.Fprintln(a.stdout, "---")
		if err := a.printIndex(store); err != nil {
			pilog.Warn("guide index: %v", err)
		}
	})
	if err := w.Run(a.ctx); err != nil && a.ctx.Err() == nil {
		return err
	}
	return nil
}

func (a *app) printIndex(store *corpus.Store) error {
	index, err := store.Index(a.ctx)
	if err != nil {
		return err
	}
	if len(index) == 0 {
		fmt.Fprintln(a.stdout, "(no guides)")
		return nil
	}
	for _, e := range index {
		fmt.Fprintf(a.stdout, "%s\t%s\n", e.Path, e.Title)
	}
	return nil
}

// Run asks the guide search agent and prints its answer.
func (c *GuideSearchCmd) Run(a *app) error {
	query := strings.TrimSpace(strings.Join(c.Query, " "))
	if query == "" {
		return fmt.Errorf("empty query")
	}
	if err := a.settings.Validate(); err != nil {
		return err
	}
	store, err := a.corpus()
	if err != nil {
		return err
	}

	usage := telemetry.NewTracker()
	provider := telemetry.Meter(a.newProvider(a.settings), usage)
	search, err := tools.NewGuideSearchTool(provider, a.settings, store)
	if err != nil {
		return err
	}
	res := search.Execute(a.ctx, map[string]any{"query": query})
	pilog.Info("guide search usage: %s", usage.Summary())
	if !res.Success {
		return fmt.Errorf("guide search: %s", res.Error)
	}
	fmt.Fprintln(a.stdout, strings.TrimRight(res.Output, "\n"))
	return nil
}

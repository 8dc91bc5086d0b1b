// Package explainer produces human-readable explanations for sigfind
// commands, the way kai-cli/internal/explain does for the --explain flag:
// a fixed panel format describing the concepts, steps, and tips behind
// whatever the command just did.
package explainer

import (
	"fmt"
	"io"

	"github.com/kailayerhq/sigfind/discovery"
)

// Context holds the information needed to render one explanation panel.
type Context struct {
	Command     string
	Description string
	Concepts    []Concept
	Steps       []string
	Tips        []string
}

// Concept names one sigfind notion (Signature, Candidate, Score, ...) and
// why it mattered for this particular invocation.
type Concept struct {
	Name        string
	Description string
	WhyUsed     string
}

// Print writes a formatted explanation to w.
func (c *Context) Print(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "╭─ Explain: %s\n", c.Command)
	fmt.Fprintln(w, "│")

	if c.Description != "" {
		fmt.Fprintf(w, "│  %s\n", c.Description)
		fmt.Fprintln(w, "│")
	}

	if len(c.Concepts) > 0 {
		fmt.Fprintln(w, "│  Concepts used:")
		for _, concept := range c.Concepts {
			fmt.Fprintf(w, "│     - %s: %s\n", concept.Name, concept.Description)
			if concept.WhyUsed != "" {
				fmt.Fprintf(w, "│       -> %s\n", concept.WhyUsed)
			}
		}
		fmt.Fprintln(w, "│")
	}

	if len(c.Steps) > 0 {
		fmt.Fprintln(w, "│  What this command does:")
		for i, step := range c.Steps {
			fmt.Fprintf(w, "│     %d. %s\n", i+1, step)
		}
		fmt.Fprintln(w, "│")
	}

	if len(c.Tips) > 0 {
		fmt.Fprintln(w, "│  Tips:")
		for _, tip := range c.Tips {
			fmt.Fprintf(w, "│     %s\n", tip)
		}
		fmt.Fprintln(w, "│")
	}

	fmt.Fprintln(w, "╰────────────────────────────────────────")
	fmt.Fprintln(w)
}

// ForFind returns explanation context for `sigfind find`.
func ForFind(root string, sig discovery.Signature, resultCount int) *Context {
	return &Context{
		Command:     "sigfind find",
		Description: "Locates a symbol by structure instead of import path.",
		Concepts: []Concept{
			{
				Name:        "Signature",
				Description: "The structural query: name, kind, methods, decorators, bases, module",
				WhyUsed:     fmt.Sprintf("Matching against %s", sig.String()),
			},
			{
				Name:        "Candidate",
				Description: "A top-level class/function pulled out of one source file",
				WhyUsed:     fmt.Sprintf("%d result(s) reported from candidates under %s", resultCount, root),
			},
			{
				Name:        "Score",
				Description: "Non-negative match strength; zero means disqualified",
				WhyUsed:     "Highest score wins unless --all is set",
			},
		},
		Steps: []string{
			"Walk " + root + ", skipping default-ignored directories and test files",
			"Parse each source file and extract its top-level symbols",
			"Score every symbol against the signature",
			"Return the highest-scoring match (or every positive match with --all)",
		},
		Tips: []string{
			"Use --all to see every match ranked by score, not just the winner",
			"Use --load to materialize the winning symbol via its language runtime",
		},
	}
}

// ForList returns explanation context for `sigfind list`.
func ForList(root string, fileCount, candidateCount int) *Context {
	return &Context{
		Command:     "sigfind list",
		Description: "Lists every candidate symbol sigfind can see, without scoring.",
		Concepts: []Concept{
			{
				Name:        "Candidate",
				Description: "A top-level class/function pulled out of one source file",
				WhyUsed:     fmt.Sprintf("%d candidate(s) extracted from %d file(s)", candidateCount, fileCount),
			},
		},
		Steps: []string{
			"Walk " + root + " applying the default and configured ignore rules",
			"Parse each file with the matching language extractor",
			"Print every top-level symbol found, unscored",
		},
		Tips: []string{
			"Pipe through --json for machine-readable output",
			"Use 'sigfind find' once you know what signature you're after",
		},
	}
}

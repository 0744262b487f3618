package main

import (
	"fmt"

	"github.com/destiner/carpe"
)

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	article, err := deps.Reader.Summarize(deps.Ctx, c.ID, c.Force)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carpe.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, article.Summary)
	return nil
}

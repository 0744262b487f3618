package main

import (
	"fmt"

	"github.com/destiner/carpe"
)

// Run executes the mark command.
func (c *MarkCmd) Run(deps *Dependencies) error {
	article, err := deps.Reader.SetRead(deps.Ctx, c.ID, !c.Unread)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carpe.ErrorMessage(err))
		return err
	}

	state := "read"
	if !article.IsRead() {
		state = "unread"
	}
	fmt.Fprintf(deps.Stdout, "Marked %q as %s\n", article.Title, state)
	return nil
}

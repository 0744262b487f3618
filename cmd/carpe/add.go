package main

import (
	"fmt"

	"github.com/destiner/carpe"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	article, err := deps.Reader.Save(deps.Ctx, c.URL)
	if carpe.ErrorCode(err) == carpe.ECONFLICT && article != nil {
		fmt.Fprintf(deps.Stderr, "error: %s (%s)\n", carpe.ErrorMessage(err), article.ID)
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carpe.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %q (%s)\n", article.Title, article.ID)
	fmt.Fprintf(deps.Stdout, "  %s\n", carpe.FormatTokens(article.Tokens))
	return nil
}

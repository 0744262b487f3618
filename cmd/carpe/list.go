package main

import (
	"fmt"

	"github.com/destiner/carpe"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := carpe.ArticleFilter{Limit: c.Limit}
	if c.Unread {
		read := false
		filter.Read = &read
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carpe.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'carpe add' to save one.")
		return nil
	}

	for _, a := range articles {
		marker := "*"
		if a.IsRead() {
			marker = " "
		}
		fmt.Fprintf(deps.Stdout, "%s %s  %s  %s\n", marker, a.ID, a.Title, a.URL)
	}

	return nil
}

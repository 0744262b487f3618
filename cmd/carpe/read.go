package main

import (
	"fmt"

	"github.com/destiner/carpe"
)

// Run executes the read command.
func (c *ReadCmd) Run(deps *Dependencies) error {
	article, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carpe.ErrorMessage(err))
		return err
	}

	if article.ReaderMode == nil {
		fmt.Fprintf(deps.Stderr, "error: article %s has no reader view. Open %s instead.\n", article.ID, article.URL)
		return carpe.Errorf(carpe.ENOTFOUND, "article %s has no reader view", article.ID)
	}

	body := article.ReaderMode.Content
	if c.Markdown && article.ReaderMode.HTML != "" {
		body, err = deps.Converter.Convert(article.ReaderMode.HTML, article.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", carpe.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintln(deps.Stdout, carpe.FormatArticle(article, body))
	return nil
}

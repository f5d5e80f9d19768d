package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/readerize"
	"github.com/fwojciec/readerize/sqlite"
)

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Cache  string `required:"" type:"path" help:"SQLite database of extracted articles"`
	Prefix string `help:"Only list articles whose URL starts with this prefix"`
	Limit  int    `short:"l" help:"Most articles to list (0 lists all)"`
}

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	db, err := deps.openCache(c.Cache)
	if err != nil {
		return err
	}
	defer db.Close()

	articles, err := sqlite.NewArticleCache(db).FindArticles(deps.Ctx, readerize.ArticleFilter{
		URLPrefix: c.Prefix,
		Limit:     c.Limit,
	})
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles cached. Use 'readerize get --cache' to add some.")
		return nil
	}

	for _, a := range articles {
		fmt.Fprintf(deps.Stdout, "%s  %dp  %s  %s\n", a.FetchedAt.Format(time.DateOnly), len(a.Pages), a.URL, a.Title)
	}
	return nil
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	URL   string `arg:"" help:"Article URL"`
	Cache string `required:"" type:"path" help:"SQLite database of extracted articles"`
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	db, err := deps.openCache(c.Cache)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqlite.NewArticleCache(db).DeleteArticle(deps.Ctx, c.URL); err != nil {
		printError(deps.Stderr, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s\n", c.URL)
	return nil
}

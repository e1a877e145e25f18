/*
Package main is the entry point for the recommender CLI.

recommender suggests catalog items (movies, by default) that share the most
tags with a chosen item, ranked by cosine similarity of binary tag vectors.

Usage:

	recommender [command]

Available Commands:

	recommend   Recommend items similar to a reference item
	export      Export recommendations for every catalog item
	vocabulary  List the catalog's tags with item counts
	rating      Show the average rating of an item
	search      Find items by title or tag
	benchmark   Measure ranking latency on the current catalog
	config      Create or inspect the configuration file
	version     Show version information

Examples:

	# Movies like Toy Story from the built-in sample
	recommender recommend --title "toy story"

	# Use the MovieLens 100K files
	RECOMMENDER_CATALOG_SOURCE=movielens \
	RECOMMENDER_CATALOG_ITEMS_PATH=ml-100k/u.item \
	RECOMMENDER_CATALOG_RATINGS_PATH=ml-100k/u.data \
	recommender recommend --id 50
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khanglvm/recommender/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

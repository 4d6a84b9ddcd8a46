package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pstuifzand/tui-dragtree/internal/sample"
	"github.com/pstuifzand/tui-dragtree/internal/storage"
)

func main() {
	roots := flag.Int("roots", 20, "Number of root nodes")
	depth := flag.Int("depth", 3, "Maximum nesting depth")
	children := flag.Int("children", 4, "Maximum children per node")
	seed := flag.Uint64("seed", 1, "Random seed")
	title := flag.String("title", "Sample tree", "Document title")
	output := flag.String("output", "tree.json", "Output file path")
	flag.Parse()

	if *roots < 1 {
		fmt.Fprintf(os.Stderr, "roots must be at least 1\n")
		os.Exit(1)
	}

	nodes := sample.Generate(sample.NewRand(*seed), sample.Params{
		Roots:       *roots,
		MaxLevel:    *depth,
		MaxChildren: *children,
	})

	store := storage.NewJSONStore(*output)
	if err := store.Save(&storage.Document{Title: *title, Nodes: nodes}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save tree: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated tree with %d nodes\n", sample.Count(nodes))
	fmt.Printf("Saved to: %s\n", *output)
}

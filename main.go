package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/pstuifzand/tui-dragtree/internal/app"
)

func main() {
	debug := flag.Bool("debug", false, "Enable debug mode (debug logging and tree validation after every drop)")
	logPath := flag.String("log", "dragtree.log", "Log file")
	flag.Parse()

	logFile, err := os.Create(*logPath)
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level, AddSource: *debug}))
	slog.SetDefault(logger)

	// filePath will be empty if no argument provided, which is allowed
	var filePath string
	if args := flag.Args(); len(args) > 0 {
		filePath = args[0]
	}

	application, err := app.NewApp(app.Params{
		FilePath: filePath,
		Logger:   logger,
		Debug:    *debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

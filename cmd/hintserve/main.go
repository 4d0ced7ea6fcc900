/*
Package main implements the hintserve suggestion server and debug CLI.

Hintserve suggests how a draft chat message continues, using only the
user's own chat history: a fixed-order n-gram model predicts the next
words and a patricia trie over the corpus vocabulary completes the word
being typed. It runs as a msgpack IPC server over stdin/stdout for
integration with the messaging frontend, or as an interactive CLI for
testing.

# Usage

Start the server against the default history file:

	hintserve

Point at a specific history file and enable debug logging:

	hintserve -history /path/to/chat_history.json -d

Run in CLI mode for interactive testing:

	hintserve -c -max 5

# Configuration

Runtime settings live in a TOML file, created with defaults on first
run:

	[suggest]
	max_words = 10
	history_file = "data/chat_history.json"

	[server]
	max_input_len = 280
	max_limit = 32

	[cli]
	default_limit = 8
	default_max_words = 10

# IPC Protocol

The server exchanges msgpack messages over stdin/stdout. A suggestion
request and its response (shown as JSON for readability):

	{"id": "req1", "cmd": "suggest", "q": "I will", "l": 5}
	{"id": "req1", "s": "review the document today", "c": 4, "t": 2}

See pkg/server for the full command set (suggest, complete, save,
history, health).

# Model lifecycle

Every request re-reads the history file and builds a fresh model, so
suggestions always reflect the file's current contents and concurrent
callers share nothing. A missing or unreadable history file is an empty
corpus, never an error.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/draftkit/hintserve/internal/cli"
	"github.com/draftkit/hintserve/internal/utils"
	"github.com/draftkit/hintserve/pkg/config"
	"github.com/draftkit/hintserve/pkg/history"
	"github.com/draftkit/hintserve/pkg/server"
	"github.com/draftkit/hintserve/pkg/suggest"
)

const (
	Version = "0.3.0"
	AppName = "hintserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, history store and engines together and starts
// either the IPC server or the CLI. It holds no suggestion logic.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to config.toml (default: user config dir)")
	historyPath := flag.String("history", "", "Path to the chat history JSON file (overrides config)")
	maxWords := flag.Int("max", 0, "Maximum words per suggestion (overrides config)")
	limit := flag.Int("limit", 0, "Number of word completions to show in CLI mode")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activePath, err := config.LoadWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if activePath != "" {
		log.Debugf("Using config file: %s", utils.GetAbsolutePath(activePath))
	}

	historyFile := cfg.Suggest.HistoryFile
	if *historyPath != "" {
		historyFile = *historyPath
	}
	words := cfg.Suggest.MaxWords
	if *maxWords > 0 {
		words = *maxWords
	}

	store := history.NewStore(historyFile)
	suggester := suggest.NewSuggester(store, words)
	log.Debugf("Using history file: %s", historyFile)

	if *cliMode {
		log.SetReportTimestamp(false)
		completeN := cfg.CLI.DefaultLimit
		if *limit > 0 {
			completeN = *limit
		}
		handler := cli.NewInputHandler(suggester, words, completeN)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	showStartupInfo(historyFile)
	srv := server.NewServer(suggester, cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// printVersion writes a styled version banner to stderr.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("[ hintserve ] Suggests message continuations from your chat history")
	logger.Print("", "version", Version)
	logger.Print("use -h or --help to see available options")
}

// showStartupInfo displays basic info about the init process on stderr.
func showStartupInfo(historyFile string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("history file: ( %s )", historyFile)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}

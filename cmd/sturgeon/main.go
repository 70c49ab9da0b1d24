/*
Sturgeon compiles a natural-language query grammar and either starts an
interactive REPL for running queries against it, or runs a single query
non-interactively and reports its accepted semantic trees.

Usage:

	sturgeon [flags]

The flags are:

	-g, --grammar FILE
		Use the given compiled grammar JSON file instead of the built-in
		example grammar.

	-c, --config FILE
		Load search and edit-rule settings from the given TOML file instead of
		using the defaults.

	-k, --k-best N
		Override the number of trees to request per query.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input, even if launched in a tty.

	-q, --query TEXT
		Run the given query non-interactively and exit. Exits with a non-zero
		status if the query is unparsable or yields no legal trees.

Once a session has started (and -q was not given), input is read as either a
query or a command prefixed with ".". Type ".help" for the list of commands.
To exit, type ".quit" or send EOF.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/sturgeon"
	"github.com/dekarrin/sturgeon/internal/config"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitQueryError indicates an unsuccessful program execution due to a
	// query that failed to parse or produced no legal trees.
	ExitQueryError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the engine.
	ExitInitError
)

var (
	returnCode  = ExitSuccess
	grammarFile = pflag.StringP("grammar", "g", "", "Compiled grammar JSON file to use instead of the built-in example grammar")
	configFile  = pflag.StringP("config", "c", "", "TOML file of search/edit-rule settings to use instead of the defaults")
	kBest       = pflag.IntP("k-best", "k", 0, "Override the number of trees to request per query")
	forceDirect = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	oneShot     = pflag.StringP("query", "q", "", "Run the given query non-interactively and exit")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}
	if *kBest > 0 {
		cfg.Search.DefaultK = *kBest
	}

	if *oneShot != "" {
		runOneShot(cfg)
		return
	}

	eng, initErr := sturgeon.New(os.Stdin, os.Stdout, *grammarFile, cfg, *forceDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	if err := eng.RunUntilQuit(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitQueryError
		return
	}
}

// runOneShot runs a single query non-interactively, printing its accepted
// trees (or a diagnostic) and setting returnCode appropriately: a parse failure
// prints a diagnostic and exits with a non-zero status.
func runOneShot(cfg config.Config) {
	eng, initErr := sturgeon.New(os.Stdin, os.Stdout, *grammarFile, cfg, true)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	if err := eng.RunQuery(*oneShot); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitQueryError
		return
	}

	if eng.LastTreeCount() == 0 {
		fmt.Fprintln(os.Stderr, "no legal trees")
		returnCode = ExitQueryError
	}
}

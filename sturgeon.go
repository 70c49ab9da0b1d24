// Package sturgeon contains a CLI-driven engine for compiling a grammar,
// running queries against it, and reporting diagnostics from an interactive
// shell attached to an input stream and an output stream.
package sturgeon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/sturgeon/internal/automaton"
	"github.com/dekarrin/sturgeon/internal/config"
	"github.com/dekarrin/sturgeon/internal/consoleio"
	"github.com/dekarrin/sturgeon/internal/editrules"
	"github.com/dekarrin/sturgeon/internal/exampledomain"
	"github.com/dekarrin/sturgeon/internal/parser"
	"github.com/dekarrin/sturgeon/internal/search"
	"github.com/dekarrin/sturgeon/internal/semalg"
	"github.com/dekarrin/sturgeon/internal/semgrammar"
	"github.com/dekarrin/sturgeon/internal/serialize"
)

const consoleOutputWidth = 80

// Engine contains the things needed to run the query REPL from an
// interactive shell attached to an input stream and an output stream.
type Engine struct {
	grammarPath string
	grammar     *semgrammar.Grammar
	table       *automaton.StateTable
	cfg         config.Config

	in          consoleio.Reader
	out         *bufio.Writer
	forceDirect bool
	running     bool

	k       int
	history []string

	lastQuery   string
	lastResult  *parser.Result
	lastTrees   []search.Tree
	lastElapsed time.Duration
}

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream
// and a buffered writer on the output stream, then compile a grammar.
//
// If nil is given for the input stream, a bufio.Reader is opened on stdin.
// If nil is given for the output stream, a bufio.Writer is opened on stdout.
//
// If grammarPath is empty, the built-in internal/exampledomain grammar is
// used; otherwise grammarPath names a compiled grammar JSON file.
func New(inputStream io.Reader, outputStream io.Writer, grammarPath string, cfg config.Config, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	eng := &Engine{
		grammarPath: grammarPath,
		out:         bufio.NewWriter(outputStream),
		cfg:         cfg,
		k:           cfg.Search.DefaultK,
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	var err error
	if useReadline {
		eng.in, err = consoleio.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = consoleio.NewDirectReader(inputStream)
	}

	if err := eng.rebuild(); err != nil {
		return nil, fmt.Errorf("compiling grammar: %w", err)
	}

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	if err := eng.in.Close(); err != nil {
		return fmt.Errorf("close input reader: %w", err)
	}

	return nil
}

// loadGrammar constructs the grammar from eng.grammarPath, or the built-in
// internal/exampledomain grammar when grammarPath is empty.
func (eng *Engine) loadGrammar() (*semgrammar.Grammar, error) {
	if eng.grammarPath == "" {
		return exampledomain.Build()
	}

	data, err := os.ReadFile(eng.grammarPath)
	if err != nil {
		return nil, fmt.Errorf("read grammar file: %w", err)
	}
	g, err := serialize.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode grammar file %s: %w", eng.grammarPath, err)
	}
	return g, nil
}

// rebuild reloads the grammar from its source, runs the edit-rule generator
// over it, and rebuilds the state table. It is what the `.rebuild` CLI
// command invokes, and what New calls once on startup.
func (eng *Engine) rebuild() error {
	g, err := eng.loadGrammar()
	if err != nil {
		return err
	}

	for _, w := range g.Validate() {
		if err := eng.write("warning: " + w.String() + "\n"); err != nil {
			return err
		}
	}

	if _, err := editrules.GenerateWithOptions(g, editrules.Options{
		InsertionCostCeiling:     eng.cfg.EditRules.InsertionCostCeiling,
		TranspositionCostCeiling: eng.cfg.EditRules.TranspositionCostCeiling,
	}); err != nil {
		return fmt.Errorf("generate edit rules: %w", err)
	}

	table, err := automaton.Build(g)
	if err != nil {
		return fmt.Errorf("build state table: %w", err)
	}

	eng.grammar = g
	eng.table = table
	eng.lastResult = nil
	eng.lastTrees = nil
	return nil
}

// RunUntilQuit begins reading lines from the streams, dispatching
// dot-commands and running queries, until the .quit command is received or
// input reaches EOF.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "sturgeon query engine\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "======================\n\n"
	introMsg += "Type a query, or .help for the list of commands.\n"

	if err := eng.write(introMsg); err != nil {
		return err
	}

	eng.running = true
	defer func() {
		eng.running = false
	}()

	for eng.running {
		line, err := eng.in.ReadLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read input: %w", err)
		}

		if line == "" {
			continue
		}

		if err := eng.dispatch(line); err != nil {
			msg := rosed.Edit(err.Error()).Wrap(consoleOutputWidth).String()
			if err := eng.write(msg + "\n"); err != nil {
				return err
			}
		}
	}

	return eng.write("Goodbye\n")
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return eng.out.Flush()
}

// dispatch recognizes a dot-prefixed diagnostic command and runs it, or
// else treats the line as a query and runs the parser and forest search
// over it.
func (eng *Engine) dispatch(line string) error {
	eng.history = append(eng.history, line)

	if strings.HasPrefix(line, ".") {
		return eng.runCommand(line[1:])
	}

	return eng.runQuery(line)
}

func (eng *Engine) runCommand(cmdLine string) error {
	fields := strings.Fields(cmdLine)
	if len(fields) == 0 {
		return fmt.Errorf("empty command")
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "test":
		return eng.cmdTest()
	case "k":
		return eng.cmdK(args)
	case "rebuild":
		return eng.cmdRebuild()
	case "stateTable":
		return eng.cmdStateTable()
	case "out":
		return eng.cmdOut()
	case "trees":
		return eng.cmdTrees()
	case "costs":
		return eng.cmdCosts()
	case "time":
		return eng.cmdTime()
	case "query":
		return eng.runQuery(strings.Join(args, " "))
	case "stack":
		return eng.cmdStack()
	case "forest":
		return eng.cmdForest()
	case "graph":
		return eng.cmdGraph()
	case "history":
		return eng.cmdHistory()
	case "quit":
		eng.running = false
		return nil
	case "help":
		return eng.cmdHelp()
	default:
		return fmt.Errorf("unrecognized command %q; try .help", name)
	}
}

// tokenize lowercases and splits a raw query line the way
// internal/parser.Parse expects its tokens.
func tokenize(line string) []string {
	return strings.Fields(strings.ToLower(line))
}

// RunQuery parses line as a query, runs the forest search over it, and
// prints the accepted trees (or an empty-result notice) to the engine's
// output. It is the entry point for one-shot, non-interactive query runs.
func (eng *Engine) RunQuery(line string) error {
	return eng.runQuery(line)
}

// LastTreeCount returns how many trees the most recent query accepted.
func (eng *Engine) LastTreeCount() int {
	return len(eng.lastTrees)
}

func (eng *Engine) runQuery(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return fmt.Errorf("empty query")
	}

	start := time.Now()
	res, err := parser.Parse(eng.grammar, eng.table, tokenize(line))
	if err != nil {
		eng.lastResult = nil
		eng.lastTrees = nil
		eng.lastElapsed = time.Since(start)
		return fmt.Errorf("%q: %w", line, err)
	}

	trees := search.SearchWithPopBudget(res.Root, eng.k, eng.cfg.Search.MaxPops)
	eng.lastElapsed = time.Since(start)
	eng.lastQuery = line
	eng.lastResult = res
	eng.lastTrees = trees

	if len(trees) == 0 {
		return eng.write(fmt.Sprintf("%q: no legal trees\n", line))
	}

	return eng.printTrees()
}

func (eng *Engine) printTrees() error {
	var b strings.Builder
	fmt.Fprintf(&b, "query: %s\n", eng.lastQuery)
	for i, t := range eng.lastTrees {
		fmt.Fprintf(&b, "%d. %s  (cost %.2f)  %s\n", i+1, t.Text, t.Cost, semalg.SemanticToString(t.Semantic))
		for _, d := range t.Disambiguations {
			fmt.Fprintf(&b, "   also: %s\n", d)
		}
	}
	return eng.write(b.String())
}

func (eng *Engine) cmdTest() error {
	scenarios := []struct {
		tokens []string
		want   string
	}{
		{[]string{"repos", "i", "have", "liked"}, "repos-liked(me)"},
		{[]string{"my", "repos"}, "repos-created(me)"},
		{[]string{"issues", "with", "22", "comments"}, "issues-comment-count(22)"},
		{[]string{"repos", "created", "by", "alice"}, "repos-created(alice)"},
		{[]string{"my", "followers", "and", "i", "follow"}, "intersect(followers(me),users-followed(me))"},
	}

	if eng.grammarPath != "" {
		return fmt.Errorf(".test only has canned scenarios for the built-in grammar; loaded %s has none", eng.grammarPath)
	}

	var b strings.Builder
	failures := 0
	for _, sc := range scenarios {
		res, err := parser.Parse(eng.grammar, eng.table, sc.tokens)
		var got string
		if err == nil {
			trees := search.Search(res.Root, 1)
			if len(trees) > 0 {
				got = semalg.SemanticToString(trees[0].Semantic)
			}
		}
		status := "ok"
		if got != sc.want {
			status = "FAIL"
			failures++
		}
		fmt.Fprintf(&b, "[%s] %s -> %s (want %s)\n", status, strings.Join(sc.tokens, " "), got, sc.want)
	}
	fmt.Fprintf(&b, "%d/%d passed\n", len(scenarios)-failures, len(scenarios))
	return eng.write(b.String())
}

func (eng *Engine) cmdK(args []string) error {
	if len(args) == 0 {
		return eng.write(fmt.Sprintf("k = %d\n", eng.k))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("usage: .k N (N a positive integer)")
	}
	eng.k = n
	return eng.write(fmt.Sprintf("k = %d\n", eng.k))
}

func (eng *Engine) cmdRebuild() error {
	if err := eng.rebuild(); err != nil {
		return err
	}
	return eng.write("grammar rebuilt\n")
}

func (eng *Engine) cmdStateTable() error {
	data := [][]string{{"State", "Shifts", "Reductions", "Final"}}
	for _, s := range eng.table.States {
		final := ""
		if s.IsFinal {
			final = "yes"
		}
		data = append(data, []string{
			strconv.Itoa(s.Index),
			strconv.Itoa(len(s.Transitions)),
			strconv.Itoa(len(s.Reductions)),
			final,
		})
	}
	out := rosed.
		Edit("").
		InsertTableOpts(0, data, consoleOutputWidth, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
	return eng.write(fmt.Sprintf("start state: %d\n%s\n", eng.table.Start, out))
}

func (eng *Engine) cmdOut() error {
	if eng.lastResult == nil {
		return fmt.Errorf("no query has been run yet")
	}
	return eng.printTrees()
}

func (eng *Engine) cmdTrees() error {
	if eng.lastResult == nil {
		return fmt.Errorf("no query has been run yet")
	}
	var b strings.Builder
	for i, t := range eng.lastTrees {
		fmt.Fprintf(&b, "%d. %s\n", i+1, semalg.SemanticToString(t.Semantic))
	}
	return eng.write(b.String())
}

func (eng *Engine) cmdCosts() error {
	if eng.lastResult == nil {
		return fmt.Errorf("no query has been run yet")
	}
	var b strings.Builder
	for i, t := range eng.lastTrees {
		fmt.Fprintf(&b, "%d. %.4f\n", i+1, t.Cost)
	}
	return eng.write(b.String())
}

func (eng *Engine) cmdTime() error {
	return eng.write(fmt.Sprintf("last query took %s\n", eng.lastElapsed))
}

func (eng *Engine) cmdStack() error {
	if eng.lastResult == nil {
		return fmt.Errorf("no query has been run yet")
	}
	nodes := eng.lastResult.Forest.Nodes()
	symbols := map[string]int{}
	for _, n := range nodes {
		symbols[n.Symbol]++
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d forest nodes over %d distinct symbols\n", len(nodes), len(symbols))
	return eng.write(b.String())
}

func (eng *Engine) cmdForest() error {
	if eng.lastResult == nil {
		return fmt.Errorf("no query has been run yet")
	}
	nodes := eng.lastResult.Forest.Nodes()
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Start != nodes[j].Start {
			return nodes[i].Start < nodes[j].Start
		}
		if nodes[i].Size != nodes[j].Size {
			return nodes[i].Size < nodes[j].Size
		}
		return nodes[i].Symbol < nodes[j].Symbol
	})

	var b strings.Builder
	for _, n := range nodes {
		fmt.Fprintf(&b, "%s@%d+%d (%d subs)\n", n.Symbol, n.Start, n.Size, len(n.Subs))
	}
	return eng.write(b.String())
}

func (eng *Engine) cmdGraph() error {
	if eng.lastResult == nil {
		return fmt.Errorf("no query has been run yet")
	}
	nodes := eng.lastResult.Forest.Nodes()

	var b strings.Builder
	b.WriteString("digraph forest {\n")
	for _, n := range nodes {
		from := fmt.Sprintf("%q", fmt.Sprintf("%s@%d+%d", n.Symbol, n.Start, n.Size))
		for _, s := range n.Subs {
			if s.Left != nil {
				fmt.Fprintf(&b, "  %s -> %q;\n", from, fmt.Sprintf("%s@%d+%d", s.Left.Symbol, s.Left.Start, s.Left.Size))
			}
			if s.Right != nil {
				fmt.Fprintf(&b, "  %s -> %q;\n", from, fmt.Sprintf("%s@%d+%d", s.Right.Symbol, s.Right.Start, s.Right.Size))
			}
		}
	}
	b.WriteString("}\n")
	return eng.write(b.String())
}

func (eng *Engine) cmdHistory() error {
	var b strings.Builder
	for i, h := range eng.history {
		fmt.Fprintf(&b, "%d: %s\n", i+1, h)
	}
	return eng.write(b.String())
}

var commandHelp = [][2]string{
	{".test", "run the built-in grammar's canned scenarios"},
	{".k N", "set the number of trees to request (default from config)"},
	{".rebuild", "recompile the grammar and state table from source"},
	{".stateTable", "summarize the compiled state table"},
	{".out", "reprint the last query's accepted trees"},
	{".trees", "list the last query's semantic strings only"},
	{".costs", "list the last query's tree costs only"},
	{".time", "report how long the last query took"},
	{".query TEXT", "run TEXT as a query (same as typing it directly)"},
	{".stack", "summarize the last query's parse forest"},
	{".forest", "dump every node in the last query's parse forest"},
	{".graph", "dump the last query's parse forest as Graphviz dot"},
	{".history", "list every command and query run this session"},
	{".quit", "exit"},
	{".help", "show this text"},
}

func (eng *Engine) cmdHelp() error {
	ed := rosed.
		Edit("").
		WithOptions(rosed.Options{ParagraphSeparator: "\n"}).
		InsertDefinitionsTable(0, commandHelp, consoleOutputWidth)
	out := ed.
		Insert(0, "Commands (anything not starting with \".\" runs as a query):\n").
		String()
	return eng.write(out + "\n")
}

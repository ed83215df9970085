package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"rowdb/internal/engine"
	"rowdb/internal/logging"
	"rowdb/internal/render"
	"rowdb/internal/sql"
	"rowdb/internal/storage"
)

var cli struct {
	Snapshot  string `help:"Path to the database snapshot; a .xz suffix enables compression." default:"data/db.json" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn, error." default:"warn"`
	LogFormat string `name:"log-format" help:"Log format: text or json." default:"text"`
	Script    string `arg:"" optional:"" help:"SQL script to execute; omit for an interactive session." type:"existingfile"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("rowdb"),
		kong.Description("Embedded relational engine with snapshot persistence."),
		kong.UsageOnError(),
	)

	log := logging.Setup(os.Stderr, cli.LogLevel, cli.LogFormat)

	db, err := storage.LoadFile(cli.Snapshot)
	if err != nil {
		log.Error("load snapshot", "path", cli.Snapshot, "err", err)
		kctx.Exit(1)
	}
	log.Debug("snapshot loaded", "path", cli.Snapshot, "tables", len(db.Tables))

	eng := engine.New(db)

	var ok bool
	if cli.Script != "" {
		ok = runScript(eng, cli.Script, log)
	} else {
		ok = runSession(eng, log)
	}

	if err := db.SaveFile(cli.Snapshot); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save database: %v\n", err)
		ok = false
	} else {
		log.Debug("snapshot saved", "path", cli.Snapshot)
	}

	if !ok {
		kctx.Exit(1)
	}
}

// execute parses one statement and runs it.
func execute(eng *engine.Engine, text string) (*engine.Result, error) {
	stmt, err := sql.Parse(text)
	if err != nil {
		return nil, err
	}
	return eng.Execute(stmt)
}

// runScript executes a SQL file: statements run in order until the
// first failure, matching a session typed by hand.
func runScript(eng *engine.Engine, path string, log *slog.Logger) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		return false
	}

	statements := sql.SplitStatements(sql.StripComments(string(content)))

	hasOutput := false
	for _, text := range statements {
		res, err := execute(eng, text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			log.Debug("statement failed", "stmt", text, "err", err)
			return false
		}
		if res.HasRows() && len(res.Rows) > 0 {
			fmt.Println(render.Table(res.Columns, res.Rows))
			hasOutput = true
		}
	}

	if !hasOutput && len(statements) > 0 {
		fmt.Println("There are no results to be displayed.")
	}
	return true
}

// runSession is the interactive loop: lines accumulate until a
// trailing semicolon, with history recall via !! and !N.
func runSession(eng *engine.Engine, log *slog.Logger) bool {
	hist := newHistory(200)
	if err := hist.loadFile(historyPath()); err != nil && !os.IsNotExist(err) {
		log.Debug("history not loaded", "err", err)
	}
	defer func() {
		if err := hist.saveFile(historyPath()); err != nil {
			log.Debug("history not saved", "err", err)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	var buf strings.Builder

	fmt.Print("rowdb> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if buf.Len() == 0 {
			done, handled := handleCommand(line, hist)
			if done {
				return true
			}
			if handled {
				fmt.Print("rowdb> ")
				continue
			}
			if isRecall(line) {
				recalled, ok := hist.recall(line)
				if !ok {
					fmt.Fprintln(os.Stderr, "Error: no such history entry")
					fmt.Print("rowdb> ")
					continue
				}
				fmt.Println(recalled)
				line = recalled
			}
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
		if !strings.HasSuffix(line, ";") {
			fmt.Print("   ... ")
			continue
		}

		text := strings.TrimSpace(buf.String())
		buf.Reset()
		hist.add(text)

		for _, stmtText := range sql.SplitStatements(sql.StripComments(text)) {
			res, err := execute(eng, stmtText)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				break
			}
			if res.HasRows() && len(res.Rows) > 0 {
				fmt.Println(render.Table(res.Columns, res.Rows))
			} else {
				fmt.Printf("Query OK, %d row(s) affected\n", res.Affected)
			}
		}
		fmt.Print("rowdb> ")
	}
	return true
}

// handleCommand deals with session commands that never reach the SQL
// parser. done means the session should end; handled means the line
// was consumed.
func handleCommand(line string, hist *history) (done, handled bool) {
	switch strings.ToLower(strings.TrimSuffix(line, ";")) {
	case "":
		return false, true
	case "exit", "quit":
		return true, false
	case "history":
		for i, cmd := range hist.entries() {
			fmt.Printf("%4d  %s\n", i+1, cmd)
		}
		return false, true
	}
	return false, false
}

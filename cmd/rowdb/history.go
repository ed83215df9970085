package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// history keeps the session's statements for the history command and
// for !! / !N recall. It is bounded: old entries fall off the front.
type history struct {
	commands []string
	max      int
}

func newHistory(max int) *history {
	return &history{max: max}
}

// add records a statement. Blank lines, history/recall commands, and
// immediate duplicates are skipped.
func (h *history) add(cmd string) {
	cleaned := strings.TrimSpace(cmd)
	if cleaned == "" || isHistoryCommand(cleaned) || isRecall(cleaned) {
		return
	}
	if !strings.HasSuffix(cleaned, ";") {
		cleaned += ";"
	}
	if n := len(h.commands); n > 0 && h.commands[n-1] == cleaned {
		return
	}
	h.commands = append(h.commands, cleaned)
	if len(h.commands) > h.max {
		h.commands = h.commands[len(h.commands)-h.max:]
	}
}

func (h *history) entries() []string {
	return h.commands
}

// at returns the 1-based n-th entry.
func (h *history) at(n int) (string, bool) {
	if n < 1 || n > len(h.commands) {
		return "", false
	}
	return h.commands[n-1], true
}

func (h *history) last() (string, bool) {
	return h.at(len(h.commands))
}

func isHistoryCommand(line string) bool {
	return strings.EqualFold(strings.TrimSuffix(strings.TrimSpace(line), ";"), "history")
}

// isRecall reports whether the line is !! or !N.
func isRecall(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "!!" {
		return true
	}
	if strings.HasPrefix(trimmed, "!") {
		_, err := strconv.Atoi(strings.TrimSpace(trimmed[1:]))
		return err == nil
	}
	return false
}

// recall resolves a !! or !N line to the statement it names.
func (h *history) recall(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "!!" {
		return h.last()
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(trimmed, "!")))
	if err != nil {
		return "", false
	}
	return h.at(n)
}

// historyPath is the per-user history file location.
func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rowdb_history")
}

func (h *history) loadFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			h.add(line)
		}
	}
	return nil
}

func (h *history) saveFile(path string) error {
	if path == "" {
		return nil
	}
	return os.WriteFile(path, []byte(strings.Join(h.commands, "\n")+"\n"), 0o644)
}

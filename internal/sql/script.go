package sql

import "strings"

// StripComments removes -- line comments and /* */ block comments from
// SQL source. Statement text is otherwise preserved, including
// newlines, so positions stay roughly recognizable in error output.
func StripComments(input string) string {
	var out strings.Builder
	inBlock := false
	inLine := false

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case inBlock:
			if c == '*' && i+1 < len(input) && input[i+1] == '/' {
				inBlock = false
				i++
			}
		case inLine:
			if c == '\n' {
				inLine = false
				out.WriteByte(c)
			}
		case c == '/' && i+1 < len(input) && input[i+1] == '*':
			inBlock = true
			i++
		case c == '-' && i+1 < len(input) && input[i+1] == '-':
			inLine = true
			i++
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

// SplitStatements splits script text on semicolons, dropping empty
// fragments. Comments should be stripped first.
func SplitStatements(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

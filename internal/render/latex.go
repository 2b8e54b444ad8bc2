package render

import (
	"fmt"
	"regexp"
	"strings"
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeLatex escapes the characters LaTeX treats specially.
func EscapeLatex(s string) string {
	return latexEscaper.Replace(s)
}

var (
	reLiteral  = regexp.MustCompile("``([^`]+)``")
	reStrong   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	reEmphasis = regexp.MustCompile(`\*([^*\s][^*]*)\*`)
	reBullet   = regexp.MustCompile(`^\s*[-*]\s+`)
)

// RSTToLatex converts the small subset of reStructuredText used in rule
// descriptions into LaTeX.
//
// Supported markup: ``literal``, **strong**, *emphasis* and "- " or "* "
// bullet lists whose items may wrap onto indented lines. Blank lines separate
// paragraphs. Everything else is escaped.
//
// Postcondition: the result never contains an unescaped special character
// from the input text.
func RSTToLatex(s string) string {
	var blocks []string
	for _, block := range splitBlocks(s) {
		if reBullet.MatchString(block[0]) {
			items := make([]string, 0, len(block))
			for _, item := range bulletItems(block) {
				items = append(items, `\item `+inline(item))
			}
			blocks = append(blocks, "\\begin{itemize}\n"+strings.Join(items, "\n")+"\n\\end{itemize}")
			continue
		}
		lines := make([]string, 0, len(block))
		for _, line := range block {
			lines = append(lines, strings.TrimSpace(line))
		}
		blocks = append(blocks, inline(strings.Join(lines, " ")))
	}
	return strings.Join(blocks, "\n\n")
}

func splitBlocks(s string) [][]string {
	var (
		blocks  [][]string
		current []string
	)
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// bulletItems splits a block starting with a bullet into item texts. Lines
// without a bullet continue the item above them.
func bulletItems(block []string) []string {
	var items []string
	for _, line := range block {
		if reBullet.MatchString(line) {
			items = append(items, reBullet.ReplaceAllString(line, ""))
			continue
		}
		items[len(items)-1] += " " + strings.TrimSpace(line)
	}
	return items
}

func inline(s string) string {
	s = EscapeLatex(s)
	s = reLiteral.ReplaceAllString(s, `\texttt{$1}`)
	s = reStrong.ReplaceAllString(s, `\textbf{$1}`)
	return reEmphasis.ReplaceAllString(s, `\emph{$1}`)
}

// Ordinal returns "1st", "2nd", "3rd", "4th", ... for n.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

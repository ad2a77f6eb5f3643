package rendering

import "strings"

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX escapes special LaTeX characters in user text.
// Special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	return latexEscaper.Replace(text)
}

var hrefEscaper = strings.NewReplacer(`%`, `\%`, `#`, `\#`)

// EscapeHref escapes the characters hyperref still interprets inside a \href URL
func EscapeHref(url string) string {
	return hrefEscaper.Replace(url)
}

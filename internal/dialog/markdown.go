package dialog

import "strings"

var markdownEscaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"`", "\\`",
	"[", `\[`,
)

// EscapeMarkdown escapes characters that are significant in Telegram Markdown (v1)
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

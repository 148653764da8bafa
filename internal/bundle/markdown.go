package bundle

import (
	"strconv"
	"strings"
)

// Markdown serializes a bundle into the display form used by the CLI and
// the web viewer: one heading per section with its items as list lines.
// This is presentation only; no analysis or narration happens here.
func Markdown(b Bundle) string {
	var sb strings.Builder
	for i, section := range b.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("## ")
		sb.WriteString(sectionHeader(section.Category, section.Sheet))
		if section.Returned < section.Matched {
			sb.WriteString(" (" + strconv.Itoa(section.Returned) +
				" of " + strconv.Itoa(section.Matched) + " matches)")
		}
		sb.WriteString("\n\n")
		for _, item := range section.Items {
			sb.WriteString("- ")
			if section.Sheet != "" {
				sb.WriteString(item.Address)
				sb.WriteString(": ")
			}
			sb.WriteString(item.Display)
			sb.WriteString("\n")
		}
	}
	if b.Truncated {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("_Some matches were omitted to stay within the context budget._\n")
	}
	return sb.String()
}

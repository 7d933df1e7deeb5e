package export

import (
	"fmt"
	"strings"
)

// Format is an export file format.
type Format string

const (
	FormatTXT      Format = "txt"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
	FormatHTML     Format = "html"
	FormatDOCX     Format = "docx"
	FormatYAML     Format = "yaml"
)

// Formats lists every format in the order shown to users.
var Formats = []Format{FormatTXT, FormatMarkdown, FormatPDF, FormatHTML, FormatDOCX, FormatYAML}

// ParseFormat returns the format named s, accepting a leading dot and common aliases.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	switch name {
	case "txt", "text":
		return FormatTXT, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	case "html", "htm":
		return FormatHTML, nil
	case "docx", "word":
		return FormatDOCX, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported export format %q: %w", s, ErrUnsupportedFormat)
}

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f *Format) String() string {
	return string(*f)
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}

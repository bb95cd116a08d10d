package formatter

import (
	"fmt"
	"html/template"

	"github.com/desertthunder/kmx/internal/shared"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when the configured locale cannot be parsed.
const DefaultLocale = "en-US"

// HumanFileSizeHTML renders a byte count as "value<small>unit</small>". A nil value renders as nothing.
func HumanFileSizeHTML(v any) (template.HTML, error) {
	if v == nil {
		return "", nil
	}
	n, ok := shared.ToFloat(v)
	if !ok {
		return "", fmt.Errorf("%w: humanFileSize expects a number, got %T", shared.ErrInvalidInput, v)
	}
	size := shared.HumanFileSize(n)
	return template.HTML(template.HTMLEscapeString(size.Value) + "<small>" + template.HTMLEscapeString(size.Unit) + "</small>"), nil
}

// LocaleFormatter formats values the way a browser's toLocaleString does for its locale.
type LocaleFormatter struct {
	printer *message.Printer
}

// NewLocaleFormatter parses locale as a BCP 47 tag, falling back to [DefaultLocale].
func NewLocaleFormatter(locale string) *LocaleFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &LocaleFormatter{printer: message.NewPrinter(tag)}
}

// Format groups numbers with the locale's separators and keeps at most three fraction digits.
// Other values are printed as-is.
func (l *LocaleFormatter) Format(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if n, ok := shared.ToFloat(v); ok {
		return l.printer.Sprint(number.Decimal(n, number.MaxFractionDigits(3)))
	}
	return fmt.Sprint(v)
}

func funcMap(locale *LocaleFormatter) template.FuncMap {
	return template.FuncMap{
		"humanFileSize":  HumanFileSizeHTML,
		"toLocaleString": locale.Format,
	}
}

// Package i18n translates user-facing strings. English text doubles as the
// message key, so an untranslated key prints as itself.
package i18n

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the languages with a catalog, default first.
var Supported = []language.Tag{language.AmericanEnglish, language.BrazilianPortuguese}

var (
	matcher = language.NewMatcher(Supported)
	cat     = buildCatalog()
)

// buildCatalog panics at init on a malformed message.
func buildCatalog() *catalog.Builder {
	b, err := newCatalog(ptBR)
	if err != nil {
		panic(err)
	}
	return b
}

// newCatalog registers every key of pt under en-US as itself and under
// pt-BR as its translation.
func newCatalog(pt map[string]string) (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish))
	var errs []error
	for key, msg := range pt {
		if err := b.SetString(language.AmericanEnglish, key, key); err != nil {
			errs = append(errs, fmt.Errorf("en-US %q: %w", key, err))
		}
		if err := b.SetString(language.BrazilianPortuguese, key, msg); err != nil {
			errs = append(errs, fmt.Errorf("pt-BR %q: %w", key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("build i18n catalog: %w", err)
	}
	return b, nil
}

// Translator prints messages for one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
	title   cases.Caser
}

// New returns a translator for the closest supported match of lang.
// Unknown or empty values fall back to en-US.
func New(lang string) *Translator {
	tag := Match(lang)
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
		title:   cases.Title(tag),
	}
}

// Match resolves lang, a BCP 47 tag or Accept-Language value, to a
// supported tag.
func Match(lang string) language.Tag {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return Supported[0]
	}
	tags, _, err := language.ParseAcceptLanguage(strings.ReplaceAll(lang, "_", "-"))
	if err != nil || len(tags) == 0 {
		return Supported[0]
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

// Tag returns the translator's language.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// T formats key in the translator's language.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// TitleCase capitalizes each word of s, e.g. a gender label for display.
func (t *Translator) TitleCase(s string) string {
	return t.title.String(s)
}

// FormatDate renders a calendar date.
func (t *Translator) FormatDate(d time.Time) string {
	if d.IsZero() {
		return "N/A"
	}
	if t.tag == language.BrazilianPortuguese {
		return d.Format("02/01/2006")
	}
	return d.Format("January 2, 2006")
}

// FormatDateTime renders a timestamp.
func (t *Translator) FormatDateTime(d time.Time) string {
	if d.IsZero() {
		return "N/A"
	}
	if t.tag == language.BrazilianPortuguese {
		return d.Format("02/01/2006 15:04")
	}
	return d.Format("January 2, 2006 at 3:04 PM")
}

package datefmt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// DefaultLocale is the locale used when none is configured.
const DefaultLocale = "pt_BR.utf8"

// ErrLocaleUnavailable indicates a locale that cannot be resolved.
var ErrLocaleUnavailable = errors.New("locale unavailable")

// LocaleUnavailableError reports a locale name that could not be resolved.
type LocaleUnavailableError struct {
	Locale string
	Err    error
}

func (e *LocaleUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("locale %q unavailable: %v", e.Locale, e.Err)
	}
	return fmt.Sprintf("locale %q unavailable", e.Locale)
}

// Is matches ErrLocaleUnavailable.
func (e *LocaleUnavailableError) Is(target error) bool {
	return target == ErrLocaleUnavailable
}

func (e *LocaleUnavailableError) Unwrap() error {
	return e.Err
}

// NormalizeLocale resolves a POSIX locale name ("pt_BR.utf8",
// "en_US.UTF-8@euro", "C") or a BCP 47 tag ("pt-BR") to a language tag.
func NormalizeLocale(locale string) (language.Tag, error) {
	name := strings.TrimSpace(locale)
	if idx := strings.IndexAny(name, ".@"); idx >= 0 {
		name = name[:idx]
	}

	switch name {
	case "":
		return language.Und, &LocaleUnavailableError{Locale: locale, Err: errors.New("empty locale name")}
	case "C", "POSIX":
		return language.AmericanEnglish, nil
	}

	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return language.Und, &LocaleUnavailableError{Locale: locale, Err: err}
	}
	if tag == language.Und {
		return language.Und, &LocaleUnavailableError{Locale: locale, Err: errors.New("undetermined language")}
	}

	return tag, nil
}

// mondayLocale maps a language tag to the "ll_RR" names used by monday,
// filling in the most likely region when the tag has none.
func mondayLocale(tag language.Tag) monday.Locale {
	base, _ := tag.Base()
	region, _ := tag.Region()
	return monday.Locale(base.String() + "_" + region.String())
}

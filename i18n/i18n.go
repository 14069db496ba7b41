// Package i18n translates arb2android's own CLI messages.
//
// It wraps the gotext library with T, Tf and N helpers. Catalogs are
// embedded in the binary and selected once by Init.
//
// Usage:
//
//	i18n.Init("") // LANGUAGE / LC_ALL / LC_MESSAGES / LANG
//	logInfo(i18n.Tf("Reading %s", path))
//	logSuccess(i18n.N("%d resource written", "%d resources written", n), n)
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Catalogs live in locales/{lang}/LC_MESSAGES/arb2android.po.
//
//go:embed all:locales
var locales embed.FS

const domain = "arb2android"

// po is nil until Init; the helpers then pass messages through untouched.
var po *gotext.Locale

// Init selects the catalog for lang. An empty lang is detected from the
// environment the way GNU gettext does it.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates msgid, falling back to msgid itself.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// Tf translates a format string and applies args to it.
func Tf(format string, args ...any) string {
	return fmt.Sprintf(T(format), args...)
}

// N picks the plural form of a message for n. The returned string is still
// a format string; n is not applied.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// detectLanguage follows the GNU gettext priority
// LANGUAGE > LC_ALL > LC_MESSAGES > LANG.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if env == "LANGUAGE" {
			// Colon-separated preference list; the first entry wins.
			val, _, _ = strings.Cut(val, ":")
		}
		// ru_RU.UTF-8 -> ru_RU
		val, _, _ = strings.Cut(val, ".")
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return "en"
}

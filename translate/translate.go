// Package translate formats user visible messages for the current locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// DEFAULT_LOCALE is used when the system reports no locale.
const DEFAULT_LOCALE = "en-US"

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("gtu: locale: %v", err)
	}

	SetLocale(locales...)
}

// SetLocale selects the message language from a preference ordered list of
// BCP 47 tags. An empty list selects DEFAULT_LOCALE.
func SetLocale(locales ...string) {
	if len(locales) == 0 {
		locales = []string{DEFAULT_LOCALE}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Logf translates an en-US Printf() format and sends it to the standard logger.
func Logf(key message.Reference, args ...any) {
	log.Print(printer.Sprintf(key, args...))
}

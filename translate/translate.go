// Package translate localizes the emulator's diagnostic and error text.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("rdp9: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From translates an en-US Sprintf() format into the host locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}


// Package translate renders user-visible messages in the caller's locale.
package translate

//go:generate go tool gotext -srclang=en-US update -out=catalog.go -lang=en-US,fr-FR github.com/ezrec/m88k/cpu github.com/ezrec/m88k/memory github.com/ezrec/m88k/emulator

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("m88k: locale: %v", err)
	}

	printer = newPrinter(locales...)
}

// newPrinter selects a message printer for the first usable locale,
// falling back to en-US.
func newPrinter(locales ...string) *message.Printer {
	for _, name := range locales {
		tag, err := language.Parse(name)
		if err == nil {
			return message.NewPrinter(tag)
		}
	}

	return message.NewPrinter(language.AmericanEnglish)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

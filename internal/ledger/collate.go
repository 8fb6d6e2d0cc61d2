package ledger

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator orders names the way a Romanian reader expects ("Sănătate"
// after "Salariu", "Țigări" after "Transport"). A Collator is not safe for
// concurrent use; the store only touches it under its write lock.
func newCollator() *collate.Collator {
	return collate.New(language.Romanian)
}

func sortNames(c *collate.Collator, names []string) {
	c.SortStrings(names)
}

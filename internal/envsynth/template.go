package envsynth

import (
	"fmt"
	"regexp"
)

// selfReference matches the conditional-append placeholder a descriptor uses
// to refer to the variable's own previous value, for example
// ${PATH:+:$PATH} or ${PATH:+;${PATH}}.
func selfReference(name string) *regexp.Regexp {
	q := regexp.QuoteMeta(name)
	return regexp.MustCompile(fmt.Sprintf(`\$\{%s:\+[^$}]*\$(?:%s|\{%s\})\}`, q, q, q))
}

// HasSelfReference reports whether value contains a placeholder for name.
func HasSelfReference(name, value string) bool {
	return selfReference(name).MatchString(value)
}

// Interpolate replaces every self-reference placeholder for name in value.
// When current is non-empty the placeholder becomes sep+current, otherwise
// it is removed.
func Interpolate(name, value, current, sep string) string {
	replacement := ""
	if current != "" {
		replacement = sep + current
	}
	return selfReference(name).ReplaceAllLiteralString(value, replacement)
}

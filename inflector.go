package autowire

import (
	"strings"
	"unicode"
)

// PropertyToServiceID turns a camel-cased property name (suffix already stripped)
// into a dotted service id: "ifschleifeAutowiringTestservice" becomes
// "ifschleife.autowiring.testservice".
func PropertyToServiceID(name string) string {
	return inflect(name, '.')
}

// PropertyToParameterName turns a camel-cased property name (suffix already stripped)
// into a dotted parameter name: "mailerTransport" becomes "mailer.transport".
func PropertyToParameterName(name string) string {
	return inflect(name, '.')
}

// ClassToServiceID derives a service id from a fully-qualified class name.
// Namespace segments are joined with "." and camel case inside a segment is
// split with "_": `Acme\AutowiringBundle\MailerService` becomes
// "acme.autowiring_bundle.mailer_service".
func ClassToServiceID(class string) string {
	segments := strings.Split(normalizeClass(class), `\`)
	for i, s := range segments {
		segments[i] = inflect(s, '_')
	}
	return strings.Join(segments, ".")
}

// StripSuffix removes suffix from name. It reports false when name does not
// end with suffix or when nothing would be left.
func StripSuffix(name, suffix string) (string, bool) {
	if suffix == "" || len(name) <= len(suffix) || !strings.HasSuffix(name, suffix) {
		return name, false
	}
	return strings.TrimSuffix(name, suffix), true
}

// inflect inserts sep before every uppercase letter that follows a word character
// and lowercases the result.
func inflect(s string, sep rune) string {
	var sb strings.Builder
	sb.Grow(len(s) + 4)

	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && isWordChar(prev) {
			sb.WriteRune(sep)
		}
		sb.WriteRune(unicode.ToLower(r))
		prev = r
	}

	return sb.String()
}

func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Package formats holds the I/O-free format checks shared by the defendant
// and document rules.
package formats

import (
	"mime"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"precheck/pkg/email"
)

var (
	// UK postcode, including GIR 0AA. The outward code's digit positions are strict,
	// so a letter O in place of a zero does not match.
	postcodePattern = regexp.MustCompile(`(?i)^(GIR ?0AA|[A-PR-UWYZ]([0-9]{1,2}|([A-HK-Y][0-9]([0-9]|[ABEHMNPRV-Y])?)|[0-9][A-HJKPS-UW]) ?[0-9][ABD-HJLNP-UW-Z]{2})$`)

	// PNC id: four digit year, slash, seven digit serial, check letter.
	pncPattern = regexp.MustCompile(`^\d{4}/\d{7}[A-Z]$`)

	// CRO number: numeric serial, dot, alphanumeric suffix.
	croPattern = regexp.MustCompile(`^[0-9]+\.[0-9A-Za-z]+$`)
)

// materialTypes is the upload allow-list.
var materialTypes = []string{
	"image/bmp",
	"image/jpeg",
	"image/png",
	"image/tiff",
	"text/plain",
	"application/pdf",
	"application/rtf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

var allowedMaterialTypes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(materialTypes))
	for _, t := range materialTypes {
		m[t] = struct{}{}
	}
	return m
}()

func Postcode(s string) bool {
	return postcodePattern.MatchString(strings.TrimSpace(s))
}

func PNCID(s string) bool {
	return pncPattern.MatchString(strings.TrimSpace(s))
}

func CRONumber(s string) bool {
	return croPattern.MatchString(strings.TrimSpace(s))
}

func Email(s string) bool {
	return email.Valid(strings.TrimSpace(s))
}

// MaterialTypes returns the allow-listed MIME types.
func MaterialTypes() []string {
	out := make([]string, len(materialTypes))
	copy(out, materialTypes)
	return out
}

// MaterialType reports whether contentType names an allowed upload type.
// Matching ignores case and media type parameters, and accepts registered
// aliases of an allowed type (for example text/rtf for application/rtf).
func MaterialType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(contentType))
	if err != nil {
		return false
	}
	if _, ok := allowedMaterialTypes[mediaType]; ok {
		return true
	}
	known := mimetype.Lookup(mediaType)
	if known == nil {
		return false
	}
	for _, allowed := range materialTypes {
		if known.Is(allowed) {
			return true
		}
	}
	return false
}

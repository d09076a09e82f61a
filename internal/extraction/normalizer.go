package extraction

import (
	"regexp"
	"strings"
)

var (
	whitespaceRE  = regexp.MustCompile(`\s+`)
	dateSepRE     = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})`)
	dotTimeRE     = regexp.MustCompile(`(\d{1,2})\.(\d{2})\s*hrs?`)
	compactTimeRE = regexp.MustCompile(`(\d{4})\s*hrs?`)
)

// Normalize canonicalizes SoF text before matching: whitespace runs collapse
// to single spaces, date separators become "/", and "HH.MM hrs" / "HHMM hrs"
// time forms become "HH:MM". Idempotent; empty input yields empty output.
func Normalize(text string) string {
	text = whitespaceRE.ReplaceAllString(text, " ")
	text = dateSepRE.ReplaceAllString(text, "$1/$2/$3")
	text = dotTimeRE.ReplaceAllString(text, "$1:$2")
	text = compactTimeRE.ReplaceAllStringFunc(text, func(m string) string {
		digits := compactTimeRE.FindStringSubmatch(m)[1]
		return digits[:2] + ":" + digits[2:]
	})
	return strings.TrimSpace(text)
}

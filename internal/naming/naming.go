package naming

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Characters rejected by Windows filesystems; each becomes a single space.
const reservedFilenameChars = `<>:"/\|?*`

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	// A title-leading date with separators, e.g. "2024-3-5 ..." or "2024/03\05 ...".
	reLeadingDate = regexp.MustCompile(`^\s*(\d{4})[-/\s\\]+(\d{1,2})[-/\s\\]+(\d{1,2})(\s.*|$)`)

	// Any date-shaped token at the start of a title, compact or separated.
	reStartsWithDate = regexp.MustCompile(`^\s*(\d{8}|\d{4}[-/\s\\]?\d{2}[-/\s\\]?\d{2})`)
)

// SanitizeFilename strips filesystem-reserved characters from text, replacing
// each with a space, then collapses whitespace runs and trims. Applying it
// twice yields the same result as applying it once.
func SanitizeFilename(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(reservedFilenameChars, r) {
			b.WriteByte(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(b.String(), " "))
}

// NormalizeLeadingDate rewrites a leading "YYYY<sep>M[M]<sep>D[D]" token as a
// compact "YYYYMMDD" prefix, zero-padding month and day. Accepted separators
// are '-', '/', '\' and whitespace, in runs of one or more. Text that does not
// start with such a token is returned unchanged.
func NormalizeLeadingDate(text string) string {
	if text == "" {
		return ""
	}
	m := reLeadingDate.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	year, month, day, rest := m[1], m[2], m[3], m[4]
	if len(month) == 1 {
		month = "0" + month
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return year + month + day + rest
}

// StartsWithDate reports whether the title begins with a date-shaped token,
// either compact (20240105) or with single-character separators (2024-01-05).
func StartsWithDate(title string) bool {
	return reStartsWithDate.MatchString(title)
}

// DeriveBaseName produces the shared filename stem for every artifact of a
// run. Titles that already carry a leading date keep it; all others are
// prefixed with the run date. Deterministic for a given (title, today) pair.
func DeriveBaseName(title string, today time.Time) string {
	safe := SanitizeFilename(title)
	if StartsWithDate(title) {
		return safe
	}
	return fmt.Sprintf("%s %s", today.Format("20060102"), safe)
}

package markup

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	imgSrcDouble = regexp.MustCompile(`<img[^>]*?src="([^"]*)"`)
	imgSrcSingle = regexp.MustCompile(`<img[^>]*?src='([^']*)'`)

	displayMath = regexp.MustCompile(`\$\$(.*?)\$\$`)
	inlineMath  = regexp.MustCompile(`\$(.*?)\$`)
	dfrac       = regexp.MustCompile(`\\dfrac\b`)
	spaceRuns   = regexp.MustCompile(`[\n ]+`)
)

// ImageFiles returns the file paths referenced by img markup in s. Sources
// are assumed to be local files, not URLs.
func ImageFiles(s string) []string {
	var out []string
	for _, m := range imgSrcDouble.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	for _, m := range imgSrcSingle.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}

// NormalizeMath rewrites dollar-delimited math to escaped MathJax delimiters:
// $$..$$ becomes \[..\] and $..$ becomes \(..\). \dfrac is downgraded to
// \frac since the import formats choke on it. Display math must be rewritten
// first or its delimiters would match as two empty inline spans.
func NormalizeMath(s string) string {
	s = displayMath.ReplaceAllString(s, `\[${1}\]`)
	s = inlineMath.ReplaceAllString(s, `\(${1}\)`)
	s = dfrac.ReplaceAllString(s, `\frac`)
	return s
}

// InlineMathOnly rewrites $..$ spans only, leaving everything else untouched.
func InlineMathOnly(s string) string {
	return inlineMath.ReplaceAllString(s, `\(${1}\)`)
}

// CollapseSpace folds newlines and space runs into single spaces so a field
// fits the one-physical-line-per-record import formats.
func CollapseSpace(s string) string {
	return spaceRuns.ReplaceAllString(s, " ")
}

// RewriteImageRefs repoints img sources at the package media directory, the
// way the consuming LMS expects them ($IMS-CC-FILEBASE$ is resolved by the
// importer).
func RewriteImageRefs(s string) string {
	for _, fn := range ImageFiles(s) {
		s = strings.ReplaceAll(s, fn, "$IMS-CC-FILEBASE$/Uploaded%20Media/"+filepath.Base(fn))
	}
	return s
}

package qti

import "github.com/quizforge/quizforge/internal/markup"

// Text prepares rich question text for embedding in an assessment document:
// inline dollar math becomes escaped MathJax delimiters and image references
// are repointed at the package media directory.
func Text(s string) string {
	return markup.RewriteImageRefs(markup.InlineMathOnly(s))
}

package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/quizforge/quizforge/internal/markup"
	"github.com/quizforge/quizforge/internal/question"
)

// DefaultRubric is the marking rubric shared by written questions.
const DefaultRubric = `
\noindent{\bf Marking Scheme:}
\begin{small}
\begin{itemize}
\item 1 mark: The student demonstrates a partial understanding of how to do the problem.
\item 2 marks: The student demonstrates a good understanding of how to do the problem \\ (some minor errors permitted).
\item 3 marks: The student demonstrates a good understanding and obtains the correct answer.
\end{itemize}
\end{small}`

// SchemeOptions control marking-scheme typesetting.
type SchemeOptions struct {
	Course       string
	Title        string
	PrintTable   bool
	ArrayStretch float64
	TwoColumns   bool
}

// TypesetMarkingScheme renders a ready-to-compile LaTeX document with a
// variant overview table, the rubric, and one solution section per written
// question. Question and solution markup is translated on the way through.
func TypesetMarkingScheme(qs []*question.FileUpload, opts SchemeOptions) string {
	var b strings.Builder
	b.WriteString("\\documentclass{article}\n")
	b.WriteString("\\usepackage{amssymb,amsmath,hyperref,a4wide,longtable,graphicx}\n\n")
	b.WriteString("\\begin{document}\n")
	if opts.ArrayStretch != 0 && opts.ArrayStretch != 1 {
		fmt.Fprintf(&b, "\\renewcommand{\\arraystretch}{%g}\n", opts.ArrayStretch)
	}
	b.WriteString("\\setcounter{page}{0}\n")
	fmt.Fprintf(&b, "{\\Large %s %s}\n\n", opts.Course, opts.Title)
	b.WriteString("Marking scheme for written-answer question\n\n")

	if opts.PrintTable && len(qs) > 0 {
		b.WriteString("\\setcounter{section}{-1}\n\n\\section{Variant List}\n\n\\medskip\n")
		if opts.TwoColumns {
			writeTwoColumnTable(&b, qs)
		} else {
			writeTable(&b, qs)
		}
	}

	b.WriteString("\\medskip\n")
	b.WriteString(DefaultRubric + "\n\n")
	for i, q := range qs {
		b.WriteString(solutionPage(q, variantOf(q, i)) + "\n\n")
	}
	b.WriteString("\\end{document}\n")
	return b.String()
}

// SaveMarkingScheme writes the typeset marking scheme to filename.
func SaveMarkingScheme(qs []*question.FileUpload, filename string, opts SchemeOptions) error {
	return os.WriteFile(filename, []byte(TypesetMarkingScheme(qs, opts)), 0o644)
}

func variantOf(q *question.FileUpload, i int) int {
	if q.Variant > 0 {
		return q.Variant
	}
	return i + 1
}

func tableColumns(qs []*question.FileUpload) int {
	return len(qs[0].TableRow)
}

func writeTable(b *strings.Builder, qs []*question.FileUpload) {
	cols := tableColumns(qs)
	b.WriteString("\\begin{longtable}{|l|" + strings.Repeat("l|", cols) + "}\n\\hline\n")
	fmt.Fprintf(b, "Variant & %s\\\\ \\hline\n", strings.Join(qs[0].TableHeader, " & "))
	for i, q := range qs {
		v := variantOf(q, i)
		fmt.Fprintf(b, "\\hyperref[v%d]{Variant %d} & %s\\\\ \\hline\n", v, v, strings.Join(q.TableRow, " & "))
	}
	b.WriteString("\\end{longtable}\n\n")
}

// writeTwoColumnTable packs two variants per table row when a single column
// would run too long.
func writeTwoColumnTable(b *strings.Builder, qs []*question.FileUpload) {
	cols := tableColumns(qs)
	half := strings.Repeat("l|", cols)
	b.WriteString("\\begin{longtable}{|l|" + half + "|l|" + half + "}\n\\hline\n")
	header := strings.Join(qs[0].TableHeader, " & ")
	fmt.Fprintf(b, "Variant & %s & Variant & %s\\\\ \\hline\n", header, header)
	for i := 0; i < len(qs); i += 2 {
		left := qs[i]
		lv := variantOf(left, i)
		fmt.Fprintf(b, "\\hyperref[v%d]{Variant %d} & %s", lv, lv, strings.Join(left.TableRow, " & "))
		if i+1 < len(qs) {
			right := qs[i+1]
			rv := variantOf(right, i+1)
			fmt.Fprintf(b, " & \\hyperref[v%d]{Variant %d} & %s\\\\ \\hline\n", rv, rv, strings.Join(right.TableRow, " & "))
		} else {
			b.WriteString(" & & " + strings.Repeat("& ", max(cols-1, 0)) + "\\\\ \\hline\n")
		}
	}
	b.WriteString("\\end{longtable}\n\n")
}

// solutionPage renders one variant's question, solution and rubric.
func solutionPage(q *question.FileUpload, variant int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\newpage\n\\section{Variant %d}\n\\label{v%d}\n\n", variant, variant)
	b.WriteString(markup.ToLaTeX(q.Text()) + "\n\\medskip\n\n")
	b.WriteString("\\noindent{\\bf Solution.}\n\n")
	b.WriteString(markup.ToLaTeX(q.SolutionHTML) + "\n\\medskip\n\n")
	b.WriteString(DefaultRubric)
	return b.String()
}

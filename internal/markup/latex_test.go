package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLaTeXEmphasis(t *testing.T) {
	out := ToLaTeX("<b>x</b>")
	assert.Contains(t, out, `{\bf `)
	assert.Contains(t, out, "x")
	assert.Contains(t, out, "}")

	assert.Equal(t, `{\it y} `, ToLaTeX("<i>y</i>"))
	assert.Equal(t, `\underline{z} `, ToLaTeX("<u>z</u>"))
	assert.Equal(t, `\texttt{code} `, ToLaTeX("<tt>code</tt>"))
}

func TestToLaTeXImgPercentWidth(t *testing.T) {
	out := ToLaTeX(`<img width="50%" src="a.png">`)
	assert.Contains(t, out, `\includegraphics`)
	assert.Contains(t, out, `width=0.50\textwidth`)
	assert.Contains(t, out, "{a.png}")
}

func TestToLaTeXImgPixels(t *testing.T) {
	out := ToLaTeX(`<img src="b.png" width="100px" height="40px">`)
	assert.Contains(t, out, "width=75pt")
	assert.Contains(t, out, "height=30pt")
}

func TestToLaTeXImgVerbatimUnit(t *testing.T) {
	out := ToLaTeX(`<img src="c.png" width="3cm">`)
	assert.Contains(t, out, "width=3cm")
}

func TestToLaTeXHeadings(t *testing.T) {
	assert.Equal(t, "{\\Large\\bf T}\n", ToLaTeX("<h1>T</h1>"))
	assert.Equal(t, "{\\bf\\it T}\n", ToLaTeX("<h3>T</h3>"))
}

func TestToLaTeXLists(t *testing.T) {
	out := ToLaTeX("<ul><li>one</li><li>two</li></ul>")
	assert.Contains(t, out, `\begin{itemize}`)
	assert.Contains(t, out, `\item one`)
	assert.Contains(t, out, `\end{itemize}`)

	out = ToLaTeX("<ol><li>a</li></ol>")
	assert.Contains(t, out, `\begin{enumerate}`)
	assert.Contains(t, out, `\end{enumerate}`)
}

func TestToLaTeXLink(t *testing.T) {
	out := ToLaTeX(`<a href="https://example.org">here</a>`)
	assert.Contains(t, out, `\href{https://example.org}{here}`)
}

func TestToLaTeXIgnoredTags(t *testing.T) {
	out := ToLaTeX(`<div><span>inner</span></div>`)
	assert.Equal(t, "inner", out)

	out = ToLaTeX("<table><tr><td>cell</td></tr></table>")
	assert.Equal(t, "cell", out)
}

func TestToLaTeXRule(t *testing.T) {
	out := ToLaTeX("<hr>")
	assert.Contains(t, out, `\par\noindent\rule{\textwidth}{0.4pt}`)
}

func TestToLaTeXBreakAndParagraph(t *testing.T) {
	assert.Equal(t, "a\n\nb", ToLaTeX("a<br>b"))
	assert.True(t, strings.HasPrefix(ToLaTeX("<p>text</p>"), "\n"))
}

func TestToLaTeXUnknownTagPassthrough(t *testing.T) {
	// Looks like a tag but is probably math; the exact text must survive.
	out := ToLaTeX("<x^2>")
	assert.Contains(t, out, "<x^2>")
}

func TestToLaTeXUnknownEndTag(t *testing.T) {
	out := ToLaTeX("</mystery>")
	assert.Equal(t, "</mystery> ", out)
}

func TestToLaTeXPlainTextUntouched(t *testing.T) {
	assert.Equal(t, "just words", ToLaTeX("just words"))
}

// Package markup converts the constrained HTML subset used in question text
// to LaTeX fragments, and provides the text-normalization helpers shared by
// the interchange exporters.
package markup

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// Tags whose name and attributes are dropped entirely; only their inner text
// survives.
var ignoredTags = map[string]bool{
	"td": true, "tr": true, "th": true, "thead": true, "table": true,
	"head": true, "body": true, "meta": true, "html": true, "tbody": true,
	"title": true, "script": true, "div": true, "span": true, "link": true,
	"header": true, "h5": true, "style": true, "font": true,
}

var headingOpen = map[string]string{
	"h1": `{\Large\bf `,
	"h2": `{\large\bf `,
	"h3": `{\bf\it `,
	"h4": `{\bf `,
}

// ToLaTeX converts markup to a LaTeX fragment in a single streaming pass.
// Group delimiters are emitted immediately at tag boundaries without checking
// balance, so malformed or overlapping markup yields malformed LaTeX: this is
// a best-effort transformation, not a validator. Unknown tags are reinserted
// verbatim (they may be inline math rather than markup) and their body is
// re-translated to catch nested valid tags.
func ToLaTeX(markup string) string {
	return translate(markup, zerolog.Nop())
}

// ToLaTeXTraced is ToLaTeX with debug tracing of unrecognized tags.
func ToLaTeXTraced(markup string, log zerolog.Logger) string {
	return translate(markup, log)
}

func translate(markup string, log zerolog.Logger) string {
	var out strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return out.String()
		case html.TextToken:
			out.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			raw := string(z.Raw())
			name, hasAttr := z.TagName()
			attrs := readAttrs(z, hasAttr)
			startTag(&out, string(name), raw, attrs, log)
		case html.EndTagToken:
			name, _ := z.TagName()
			endTag(&out, string(name), log)
		}
	}
}

type attr struct{ key, val string }

func readAttrs(z *html.Tokenizer, hasAttr bool) []attr {
	var attrs []attr
	for hasAttr {
		k, v, more := z.TagAttr()
		attrs = append(attrs, attr{string(k), string(v)})
		hasAttr = more
	}
	return attrs
}

func startTag(out *strings.Builder, tag, raw string, attrs []attr, log zerolog.Logger) {
	switch tag {
	case "img":
		var filename string
		var wh []string
		for _, a := range attrs {
			switch a.key {
			case "src":
				filename = a.val
			case "height":
				wh = append(wh, imgHeightToLaTeX(a.val))
			case "width":
				wh = append(wh, imgWidthToLaTeX(a.val))
			}
		}
		out.WriteString(`\includegraphics`)
		if len(wh) > 0 {
			out.WriteString("[" + strings.Join(wh, ", ") + "]")
		}
		out.WriteString("{" + filename + "}")
	case "hr":
		out.WriteString("\n" + `\par\noindent\rule{\textwidth}{0.4pt}` + "\n")
	case "b":
		out.WriteString(`{\bf `)
	case "i":
		out.WriteString(`{\it `)
	case "em":
		out.WriteString(`{\em `)
	case "u":
		out.WriteString(`\underline{`)
	case "tt":
		out.WriteString(`\texttt{`)
	case "br":
		out.WriteString("\n\n")
	case "p":
		out.WriteString("\n")
	case "h1", "h2", "h3", "h4":
		out.WriteString(headingOpen[tag])
	case "ul":
		out.WriteString(`\begin{itemize}` + "\n")
	case "ol":
		out.WriteString(`\begin{enumerate}` + "\n")
	case "li":
		out.WriteString(`\item `)
	case "a":
		var target string
		for _, a := range attrs {
			if a.key == "href" {
				target = a.val
			}
		}
		out.WriteString(`\href{` + target + `}{`)
	default:
		if ignoredTags[tag] {
			return
		}
		// Possibly not a tag at all (inline math, user markup). Reinsert the
		// exact text; if a valid tag hides inside it, translate that too.
		out.WriteString("<" + translate(raw[1:], log))
		log.Debug().Str("tag", tag).Str("raw", raw).Msg("opening tag not recognized, passed through")
	}
}

func endTag(out *strings.Builder, tag string, log zerolog.Logger) {
	switch tag {
	case "b", "i", "u", "a", "em", "tt":
		out.WriteString("} ")
	case "h1", "h2", "h3", "h4":
		out.WriteString("}\n")
	case "p", "li":
		out.WriteString("\n")
	case "ul":
		out.WriteString(`\end{itemize}` + "\n")
	case "ol":
		out.WriteString(`\end{enumerate}` + "\n")
	default:
		if ignoredTags[tag] {
			return
		}
		out.WriteString("</" + tag + "> ")
		log.Debug().Str("tag", tag).Msg("closing tag not recognized, passed through")
	}
}

// imgWidthToLaTeX converts an img width attribute to an includegraphics
// option. Percentages become fractions of \textwidth, pixel values scale to
// points at 0.75pt per px, anything else passes through verbatim.
func imgWidthToLaTeX(v string) string {
	if n, ok := trimUnit(v, "%"); ok {
		return fmt.Sprintf(`width=%.2f\textwidth`, float64(n)*0.01)
	}
	if n, ok := trimUnit(v, "px"); ok {
		return fmt.Sprintf("width=%dpt", int(math.Round(float64(n)*0.75)))
	}
	return "width=" + v
}

// imgHeightToLaTeX is the height counterpart of imgWidthToLaTeX.
func imgHeightToLaTeX(v string) string {
	if n, ok := trimUnit(v, "%"); ok {
		return fmt.Sprintf(`height=%.2f\textheight`, float64(n)*0.01)
	}
	if n, ok := trimUnit(v, "px"); ok {
		return fmt.Sprintf("height=%dpt", int(math.Round(float64(n)*0.75)))
	}
	return "height=" + v
}

func trimUnit(v, unit string) (int, bool) {
	if !strings.HasSuffix(v, unit) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(v, unit))
	if err != nil {
		return 0, false
	}
	return n, true
}

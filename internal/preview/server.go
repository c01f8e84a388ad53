// Package preview serves a local, read-only MathJax rendering of a question
// list so authors can eyeball markup and answer options before exporting.
package preview

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/quizforge/quizforge/internal/question"
)

const mathjaxSrc = "https://cdnjs.cloudflare.com/ajax/libs/mathjax/2.7.5/MathJax.js?config=TeX-MML-AM_CHTML"

var pageTmpl = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script type="text/javascript" async src="{{.MathJax}}"></script>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Questions}}
<div style="border:1px solid #ccc; margin:1em 0; padding:0.5em">
<p><b>Variant {{.Variant}}</b> ({{.Points}} points)</p>
<div>{{.TextHTML}}</div>
{{if .Options}}<ol>{{range .Options}}<li>{{.}}</li>{{end}}</ol>{{end}}
</div>
{{end}}
</body>
</html>
`))

type pageData struct {
	Title     string
	MathJax   string
	Questions []pageQuestion
}

type pageQuestion struct {
	Variant  int
	Points   float64
	TextHTML template.HTML
	Options  []template.HTML
}

// Options configure the preview handler.
type Options struct {
	Title          string
	MediaDir       string
	AllowedOrigins []string
}

// NewHandler builds the preview router: GET / renders the question list with
// the correct answer listed first, /media/ serves referenced images.
func NewHandler(qs []question.Question, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		data := pageData{Title: opts.Title, MathJax: mathjaxSrc}
		for i, q := range qs {
			pq := pageQuestion{
				Variant:  variantOrIndex(q, i),
				Points:   q.Points(),
				TextHTML: template.HTML(q.Text()),
			}
			if mc, ok := q.(*question.MultipleChoice); ok {
				pq.Options = append(pq.Options, template.HTML(mc.Answer+" (correct)"))
				for _, wa := range mc.WrongAnswers {
					pq.Options = append(pq.Options, template.HTML(wa))
				}
				pq.Options = append(pq.Options, template.HTML(question.NoneOfTheOthers))
			}
			data.Questions = append(data.Questions, pq)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = pageTmpl.Execute(w, data)
	})

	if opts.MediaDir != "" {
		fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(opts.MediaDir)))
		r.Get("/media/*", fileServer.ServeHTTP)
	}
	return r
}

func variantOrIndex(q question.Question, i int) int {
	if q.VariantNumber() > 0 {
		return q.VariantNumber()
	}
	return i + 1
}

// Package dashboard is the interactive shell: a small web UI over the
// same pipeline the CLI drives.
package dashboard

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/qepting91/persona-lens/internal/config"
	"github.com/qepting91/persona-lens/internal/domain"
	"github.com/qepting91/persona-lens/internal/persona"
	"github.com/qepting91/persona-lens/internal/pipeline"
	"github.com/qepting91/persona-lens/internal/storage"
)

// Depth slider bounds, enforced server-side as well.
const (
	minDepth = 10
	maxDepth = 500
)

type Server struct {
	cfg       config.Config
	collector domain.Collector
	store     *storage.Writer
	log       *slog.Logger

	mu      sync.Mutex
	results map[string]*pipeline.Result // last finished run per username
}

// StartServer builds the shared collector once and serves the UI.
func StartServer(cfg config.Config, collector domain.Collector, outputDir, port string) error {
	s := &Server{
		cfg:       cfg,
		collector: collector,
		store:     storage.NewWriter(outputDir),
		log:       slog.Default(),
		results:   make(map[string]*pipeline.Result),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /download/profile", s.handleDownloadProfile)
	mux.HandleFunc("GET /download/export", s.handleDownloadExport)

	return http.ListenAndServe(":"+port, mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := indexData{Models: domain.Models(), Default: domain.DefaultModel, MinDepth: minDepth, MaxDepth: maxDepth}
	if err := indexTmpl.Execute(w, data); err != nil {
		s.log.Error("render index", "err", err)
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	url := r.FormValue("url")
	if url == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	depth, err := strconv.Atoi(r.FormValue("depth"))
	if err != nil {
		depth = maxDepth
	}
	if depth < minDepth {
		depth = minDepth
	}
	if depth > maxDepth {
		depth = maxDepth
	}

	model := r.FormValue("model")
	if !domain.ValidModel(model) {
		model = string(domain.DefaultModel)
	}

	gen, err := persona.NewGenerator(s.cfg.GroqAPIKey, domain.Model(model))
	if err != nil {
		s.renderError(w, err)
		return
	}

	p := pipeline.New(s.collector, gen, s.store, s.log)
	result, err := p.Run(r.Context(), url, depth)
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.mu.Lock()
	s.results[result.Username] = result
	s.mu.Unlock()

	data := resultData{
		Username:      result.Username,
		Persona:       result.Persona,
		TotalPosts:    result.TotalPosts,
		TotalComments: result.TotalComments,
		DataPoints:    result.TotalPosts + result.TotalComments,
		Model:         string(result.Model),
		ReportPath:    result.ReportPath,
	}
	if err := resultTmpl.Execute(w, data); err != nil {
		s.log.Error("render result", "err", err)
		return
	}

	// Subreddit Dominance pie, appended below the report like the rest
	// of the page.
	if len(result.SubredditCounts) > 0 {
		pie := charts.NewPie()
		pie.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Subreddit Dominance"}),
			charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		)
		var pieItems []opts.PieData
		for sub, n := range result.SubredditCounts {
			pieItems = append(pieItems, opts.PieData{Name: "r/" + sub, Value: n})
		}
		pie.AddSeries("Items", pieItems)
		pie.Render(w)
	}
}

func (s *Server) handleDownloadProfile(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, func(username string) string {
		return s.store.ProfilePath(username)
	}, "text/plain")
}

func (s *Server) handleDownloadExport(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, func(username string) string {
		return s.store.ExportPath(username)
	}, "application/json")
}

// serveArtifact hands back a previously written report file. Only users
// analyzed by this process are served; the path never comes from the
// request.
func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, path func(string) string, contentType string) {
	username := r.URL.Query().Get("user")

	s.mu.Lock()
	_, ok := s.results[username]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "no analysis for that user", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment")
	http.ServeFile(w, r, path(username))
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case domain.KindInvalidURL, domain.KindConfig:
		status = http.StatusBadRequest
	case domain.KindUserNotFound:
		status = http.StatusNotFound
	}
	w.WriteHeader(status)
	data := errorData{Message: err.Error(), Hint: domain.Hint(kind)}
	if terr := errorTmpl.Execute(w, data); terr != nil {
		s.log.Error("render error page", "err", terr)
	}
}

type indexData struct {
	Models   []domain.Model
	Default  domain.Model
	MinDepth int
	MaxDepth int
}

type resultData struct {
	Username      string
	Persona       string
	TotalPosts    int
	TotalComments int
	DataPoints    int
	Model         string
	ReportPath    string
}

type errorData struct {
	Message string
	Hint    string
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Reddit Persona Analyzer</title></head>
<body>
<h1>Reddit Persona Analyzer</h1>
<p>Turn a Reddit profile into a personality report.</p>
<form method="POST" action="/analyze">
  <p><label>Profile URL<br>
    <input type="text" name="url" size="60" placeholder="https://www.reddit.com/user/username/" required>
  </label></p>
  <p><label>Analysis depth: <output id="depthval">100</output><br>
    <input type="range" name="depth" min="{{.MinDepth}}" max="{{.MaxDepth}}" value="100"
      oninput="document.getElementById('depthval').value = this.value">
  </label></p>
  <p><label>Model<br>
    <select name="model">
      {{range .Models}}<option value="{{.}}"{{if eq . $.Default}} selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label></p>
  <p><button type="submit">Analyze Persona</button></p>
</form>
</body>
</html>
`))

var resultTmpl = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head><title>Persona: u/{{.Username}}</title></head>
<body>
<h1>Digital Persona: u/{{.Username}}</h1>
<p>
  Posts analyzed: <b>{{.TotalPosts}}</b> |
  Comments analyzed: <b>{{.TotalComments}}</b> |
  Data points: <b>{{.DataPoints}}</b> |
  Model: <b>{{.Model}}</b>
</p>
<p>Report saved as <code>{{.ReportPath}}</code></p>
<p>
  <a href="/download/profile?user={{.Username}}">Download full report</a> |
  <a href="/download/export?user={{.Username}}">Export as JSON</a> |
  <a href="/">New analysis</a>
</p>
<pre style="white-space: pre-wrap; border: 1px solid #ccc; padding: 1em;">{{.Persona}}</pre>
`))

var errorTmpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head><title>Analysis failed</title></head>
<body>
<h1>Analysis failed</h1>
<p>{{.Message}}</p>
{{if .Hint}}<p><b>{{.Hint}}</b></p>{{end}}
<p><a href="/">Back</a></p>
</body>
</html>
`))

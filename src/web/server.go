package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/BielosX/wombat/pokedex/src/export"
	"github.com/BielosX/wombat/pokedex/src/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	Title           = "Go Pokédex"
	sessionCookie   = "pokedex_session"
	indexTemplate   = "index.html.tmpl"
	fallbackImage   = "sad-pikachu.webp"
	shutdownTimeout = 5 * time.Second
)

type Options struct {
	Addr      string
	BasePath  string
	Store     *session.Store
	Publisher *export.Publisher
	Sugar     *zap.SugaredLogger
}

// Server renders the Pokédex page. Every action is a form POST answered
// with a redirect back to the page, so each render shows a committed
// snapshot.
type Server struct {
	addr      string
	basePath  string
	store     *session.Store
	publisher *export.Publisher
	sugar     *zap.SugaredLogger
	engine    *gin.Engine
}

func NewServer(opts Options) (*Server, error) {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	s := &Server{
		addr:      opts.Addr,
		basePath:  opts.BasePath,
		store:     opts.Store,
		publisher: opts.Publisher,
		sugar:     opts.Sugar,
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	s.engine = s.routes(tmpl)
	return s, nil
}

func (s *Server) routes(tmpl *template.Template) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())
	r.SetHTMLTemplate(tmpl)

	g := r.Group(s.basePath)
	g.GET(fallbackImage, s.handleStatic(fallbackImage, "image/webp"))
	g.GET("style.css", s.handleStatic("style.css", "text/css; charset=utf-8"))
	g.GET("healthz", s.handleHealth)

	pages := g.Group("", s.withSession())
	pages.GET("", s.handleIndex)
	pages.POST("add", s.handleAdd)
	pages.POST("random", s.handleRandom)
	pages.POST("entries/:index/like", s.handleLike)
	pages.POST("entries/:index/next", s.handleNext)
	pages.GET("api/pokedex", s.handleSnapshot)
	pages.GET("export.csv", s.handleExportCSV)
	pages.GET("export.parquet", s.handleExportParquet)
	pages.POST("export/s3", s.handlePublish)
	return r
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Handler:           s.engine,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.sugar.Infof("Serving Pokédex on http://%s%s", listener.Addr(), s.basePath)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve(listener)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errChan; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.sugar.Debugf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) handleStatic(name, contentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := staticFS.ReadFile("static/" + name)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Header("Cache-Control", "public, max-age=86400")
		c.Data(http.StatusOK, contentType, data)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

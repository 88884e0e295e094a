package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/BielosX/wombat/pokedex/src/export"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/gin-gonic/gin"
)

const (
	ctxSessionID = "pokedex.session"
	ctxPokedex   = "pokedex.dex"
)

type pageData struct {
	Title    string
	BasePath string
	State    pokedex.State
}

func (s *Server) withSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		dex, ok := s.store.Get(id)
		if err != nil || !ok {
			id, dex = s.store.Create()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, 0, s.basePath, "", false, true)
		}
		c.Set(ctxSessionID, id)
		c.Set(ctxPokedex, dex)
		c.Next()
	}
}

func dexFrom(c *gin.Context) *pokedex.Pokedex {
	return c.MustGet(ctxPokedex).(*pokedex.Pokedex)
}

func (s *Server) redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, s.basePath)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, indexTemplate, pageData{
		Title:    Title,
		BasePath: s.basePath,
		State:    dexFrom(c).Snapshot(),
	})
}

// Fetch failures are already recorded in the view state as the error flag,
// so add and random always redirect.
func (s *Server) handleAdd(c *gin.Context) {
	_ = dexFrom(c).AddByInput(c.Request.Context(), c.PostForm("pokemon"))
	s.redirectHome(c)
}

func (s *Server) handleRandom(c *gin.Context) {
	_ = dexFrom(c).AddRandom(c.Request.Context())
	s.redirectHome(c)
}

func (s *Server) handleLike(c *gin.Context) {
	s.handleIndexed(c, pokedex.CommandLike)
}

func (s *Server) handleNext(c *gin.Context) {
	s.handleIndexed(c, pokedex.CommandNext)
}

func (s *Server) handleIndexed(c *gin.Context, kind pokedex.CommandKind) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid entry index %q", c.Param("index"))
		return
	}
	err = dexFrom(c).Do(c.Request.Context(), pokedex.Command{Kind: kind, Index: index})
	switch {
	case errors.Is(err, pokedex.ErrUnsupported):
		c.String(http.StatusNotFound, "%s is not available", kind)
		return
	case errors.Is(err, pokedex.ErrIndexOutOfRange):
		c.String(http.StatusBadRequest, "%s", err)
		return
	}
	s.redirectHome(c)
}

func (s *Server) handleSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, dexFrom(c).Snapshot())
}

func (s *Server) handleExportCSV(c *gin.Context) {
	file, err := export.CSV(dexFrom(c).Snapshot().Entries)
	s.sendExport(c, file, err, "pokedex.csv", export.CSVContentType)
}

func (s *Server) handleExportParquet(c *gin.Context) {
	file, err := export.Parquet(dexFrom(c).Snapshot().Entries)
	s.sendExport(c, file, err, "pokedex.parquet", export.ParquetContentType)
}

func (s *Server) sendExport(c *gin.Context, file export.File, err error, name, contentType string) {
	if err != nil {
		s.sugar.Errorf("Failed to export %s: %s", name, err)
		c.String(http.StatusInternalServerError, "export failed")
		return
	}
	c.DataFromReader(http.StatusOK, int64(file.Size), contentType, file.Reader, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, name),
	})
}

func (s *Server) handlePublish(c *gin.Context) {
	id := c.GetString(ctxSessionID)
	key, err := s.publisher.Publish(c.Request.Context(), id, dexFrom(c).Snapshot().Entries)
	switch {
	case errors.Is(err, export.ErrNoBucket):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"key": key})
	}
}

package node

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lioia/pagerank/pkg/codec"
	"github.com/lioia/pagerank/pkg/graph"
)

var contentTypes = map[string]string{
	"":    "text/vnd.graphviz",
	"dot": "text/vnd.graphviz",
	"svg": "image/svg+xml",
	"png": "image/png",
	"jpg": "image/jpeg",
}

type ApiServerImpl struct {
	Ranker *Ranker
}

// NewAPI returns the HTTP API:
//
//	GET  /health
//	POST /rank             both rank tables of the JSON graph
//	POST /render?format=   the graph drawn with its iterated ranks
func NewAPI(ranker *Ranker) *echo.Echo {
	s := &ApiServerImpl{Ranker: ranker}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/health", s.Health)
	e.POST("/rank", s.Rank)
	e.POST("/render", s.Render)
	return e
}

func (s *ApiServerImpl) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *ApiServerImpl) Rank(c echo.Context) error {
	var req codec.RankRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not parse request").SetInternal(err)
	}
	resp, err := s.Ranker.Handle(req)
	if err != nil {
		return c.JSON(statusOf(err), resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *ApiServerImpl) Render(c echo.Context) error {
	name := c.QueryParam("format")
	format, err := graph.ParseFormat(name)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var req codec.RankRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not parse request").SetInternal(err)
	}
	g, ranks, err := s.Ranker.Iterate(req)
	if err != nil {
		return echo.NewHTTPError(statusOf(err), err.Error())
	}
	var buf bytes.Buffer
	if err := graph.Render(g, ranks, format, &buf); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentTypes[name], buf.Bytes())
}

func statusOf(err error) int {
	if IsInvalidInput(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

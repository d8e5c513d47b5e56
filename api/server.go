// Package api is the control api web server
package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsigner/wallslide/api/models"
	"github.com/jsigner/wallslide/slideshow"
	"github.com/jsigner/wallslide/store"
)

type WebServer struct {
	router *gin.Engine
	show   *slideshow.Slideshow

	// db may be nil when the slideshow runs without persistence; the
	// settings endpoints then only affect the running process.
	db *store.Database
}

func NewWebServer(show *slideshow.Slideshow, db *store.Database) *WebServer {
	router := gin.Default()

	ws := &WebServer{
		router: router,
		show:   show,
		db:     db,
	}

	// Setup routes
	ws.setupRoutes()

	return ws
}

func (ws *WebServer) setupRoutes() {
	ws.router.GET("/status", ws.handleStatus)
	ws.router.POST("/slideshow/next", ws.handleNext)
	ws.router.POST("/slideshow/pause", ws.handlePause)
	ws.router.POST("/slideshow/resume", ws.handleResume)
	ws.router.GET("/settings", ws.handleGetSettings)
	ws.router.PUT("/settings", ws.handleUpdateSettings)
	ws.router.GET("/schedule", ws.handleGetSchedule)
	ws.router.PUT("/schedule", ws.handleUpdateSchedule)
}

// Handler exposes the underlying router, mainly for tests.
func (ws *WebServer) Handler() http.Handler {
	return ws.router
}

func (ws *WebServer) Start(addr string) {
	log.Printf("Starting control server on %s", addr)
	if err := ws.router.Run(addr); err != nil {
		log.Fatalf("Failed to start control server: %v", err)
	}
}

func (ws *WebServer) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, ws.show.Status())
}

func (ws *WebServer) handleNext(c *gin.Context) {
	ws.show.Next()
	c.JSON(http.StatusOK, models.MessageResponse{Message: "advancing to next image"})
}

func (ws *WebServer) handlePause(c *gin.Context) {
	ws.show.Pause()
	c.JSON(http.StatusOK, models.MessageResponse{Message: "slideshow paused"})
}

func (ws *WebServer) handleResume(c *gin.Context) {
	ws.show.Resume()
	c.JSON(http.StatusOK, models.MessageResponse{Message: "slideshow resumed"})
}

func (ws *WebServer) handleGetSettings(c *gin.Context) {
	if ws.db != nil {
		settings, err := ws.db.GetSettings()
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, settings)
		return
	}

	status := ws.show.Status()
	c.JSON(http.StatusOK, store.Settings{
		IntervalSeconds: status.IntervalSeconds,
		ShuffleEnabled:  status.Shuffle,
	})
}

func (ws *WebServer) handleUpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := ws.show.SetInterval(time.Duration(req.IntervalSeconds) * time.Second); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	ws.show.SetShuffle(req.ShuffleEnabled)

	if ws.db != nil {
		settings := &store.Settings{
			IntervalSeconds: req.IntervalSeconds,
			ShuffleEnabled:  req.ShuffleEnabled,
			FitMode:         req.FitMode,
		}
		if err := ws.db.UpsertSettings(settings); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
			return
		}
	}

	// Fit mode applies on the next start since the renderer is fixed for
	// the process lifetime.
	c.JSON(http.StatusOK, models.MessageResponse{Message: "settings updated"})
}

func (ws *WebServer) handleGetSchedule(c *gin.Context) {
	if ws.db == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No database configured, schedule unavailable"})
		return
	}
	schedule, err := ws.db.GetSchedule()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (ws *WebServer) handleUpdateSchedule(c *gin.Context) {
	if ws.db == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No database configured, schedule unavailable"})
		return
	}

	var req models.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if _, err := time.Parse("15:04", req.Start); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid start time, expected HH:MM"})
		return
	}
	if _, err := time.Parse("15:04", req.End); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid end time, expected HH:MM"})
		return
	}

	schedule := &store.Schedule{
		Enabled: req.Enabled,
		Start:   req.Start,
		End:     req.End,
	}
	if err := ws.db.UpsertSchedule(schedule); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "schedule updated"})
}

// Package preview serves the latest captured frames over HTTP as
// multipart MJPEG, so a browser on the lab network can watch a session
// without a monitor attached to the rig.
package preview

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vincent-vinf/go-jsend"
	"go.uber.org/zap"

	"camrig/pkg/utils"
)

type Server struct {
	port    int
	serials []string

	mu     sync.RWMutex
	latest map[string][]byte // serial -> most recent JPEG
	seq    map[string]uint64

	srv    *http.Server
	logger *zap.SugaredLogger
}

func NewServer(port int, serials []string) *Server {
	return &Server{
		port:    port,
		serials: serials,
		latest:  make(map[string][]byte),
		seq:     make(map[string]uint64),
		logger:  utils.GetLogger(),
	}
}

// Publish stores the latest JPEG for a device. Called by the capture
// loop once per polled frame.
func (s *Server) Publish(serial string, jpg []byte) {
	s.mu.Lock()
	s.latest[serial] = jpg
	s.seq[serial]++
	s.mu.Unlock()
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, jsend.SimpleErr("page not found"))
	})

	api := r.Group("/api")
	api.GET("/devices", s.listDevices)
	api.GET("/devices/:serial/video", s.deviceVideo)

	return r
}

func (s *Server) Start() {
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.routes(),
	}
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Errorf("preview server: %s", err)
		}
	}()
	s.logger.Infof("preview server listening on :%d", s.port)
}

func (s *Server) Shutdown() {
	if s.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Errorf("shutdown preview server: %s", err)
	}
}

// Handler exposes the HTTP routes without binding a port.
func (s *Server) Handler() http.Handler {
	return s.routes()
}

func (s *Server) listDevices(c *gin.Context) {
	c.JSON(http.StatusOK, jsend.Success(s.serials))
}

func (s *Server) knownSerial(serial string) bool {
	for _, known := range s.serials {
		if known == serial {
			return true
		}
	}
	return false
}

// deviceVideo streams the device's frames as multipart/x-mixed-replace
// until the client disconnects. New parts are emitted only when the
// capture loop has published a fresh frame.
func (s *Server) deviceVideo(c *gin.Context) {
	serial := c.Param("serial")
	if !s.knownSerial(serial) {
		c.JSON(http.StatusNotFound, jsend.SimpleErr(fmt.Sprintf("unknown device %s", serial)))
		return
	}

	mimeWriter := multipart.NewWriter(c.Writer)
	c.Header("Content-Type", fmt.Sprintf("multipart/x-mixed-replace; boundary=%s", mimeWriter.Boundary()))
	partHeader := make(textproto.MIMEHeader)
	partHeader.Add("Content-Type", "image/jpeg")

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	var lastSeq uint64
	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}

		s.mu.RLock()
		frame := s.latest[serial]
		seq := s.seq[serial]
		s.mu.RUnlock()
		if frame == nil || seq == lastSeq {
			continue
		}
		lastSeq = seq

		partWriter, err := mimeWriter.CreatePart(partHeader)
		if err != nil {
			s.logger.Debugf("preview stream %s: create part: %s", serial, err)
			return
		}
		if _, err := partWriter.Write(frame); err != nil {
			s.logger.Debugf("preview stream %s: write: %s", serial, err)
			return
		}
		c.Writer.Flush()
	}
}

// Package webdav shares the recordings directory with lab workstations
// so captures can be pulled off the rig without shell access.
package webdav

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/net/webdav"

	"camrig/pkg/utils"
)

// Serve exposes dir over WebDAV on the given port until ctx is
// canceled.
func Serve(ctx context.Context, port int, dir string) {
	logger := utils.GetLogger()

	h := &webdav.Handler{
		FileSystem: webdav.Dir(dir),
		LockSystem: webdav.NewMemLS(),
		Logger: func(r *http.Request, err error) {
			if err != nil {
				logger.Errorf("webdav [%s]: %s, err: %s", r.Method, r.URL, err)
			}
		},
	}
	svr := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: h,
	}

	go func() {
		if err := svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("webdav server: %s", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svr.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("shutdown webdav server: %s", err)
		}
	}()
	logger.Infof("webdav server sharing %s on :%d", dir, port)
}

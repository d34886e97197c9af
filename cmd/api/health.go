package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"shop-backend/pkg/container"
)

func setupHealthRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":    "UP",
			"version":   c.Config.App.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	api.GET("/health/ready", readinessHandler(c))
}

// readinessHandler pings the database, the cache and object storage in
// parallel. Any failure turns the check into a 503.
func readinessHandler(c *container.Container) gin.HandlerFunc {
	type check struct {
		name string
		ping func(context.Context) error
	}
	checks := []check{
		{"database", c.DB.Ping},
		{"cache", c.Cache.Ping},
		{"storage", c.Storage.Ping},
	}

	return func(ctx *gin.Context) {
		reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		results := make([]string, len(checks))
		var g errgroup.Group
		for i, chk := range checks {
			g.Go(func() error {
				if err := chk.ping(reqCtx); err != nil {
					results[i] = "DOWN: " + err.Error()
					return fmt.Errorf("%s: %w", chk.name, err)
				}
				results[i] = "UP"
				return nil
			})
		}
		err := g.Wait()

		services := gin.H{}
		for i, chk := range checks {
			services[chk.name] = results[i]
		}

		status, code := "UP", http.StatusOK
		if err != nil {
			status, code = "DOWN", http.StatusServiceUnavailable
		}
		ctx.JSON(code, gin.H{
			"status":   status,
			"services": services,
			"pool":     c.DB.Stats(),
		})
	}
}

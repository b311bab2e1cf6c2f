// Package testing holds helpers shared by the package tests.
package testing

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/teranos/inhabit/config"
	"github.com/teranos/inhabit/expand"
	"github.com/teranos/inhabit/logger"
	"github.com/teranos/inhabit/registry"
)

// UseTestLogger routes the global logger to t for the duration of the test.
func UseTestLogger(t *testing.T) {
	t.Helper()
	prev := logger.Logger
	logger.Logger = zaptest.NewLogger(t).Sugar()
	t.Cleanup(func() {
		logger.Logger = prev
	})
}

// CreateTestEngine creates an engine over the built-in registry with packs
// installed and opts applied. Logs go to t.
func CreateTestEngine(t *testing.T, packs []registry.Pack, opts ...config.Option) *expand.Engine {
	t.Helper()
	UseTestLogger(t)

	reg := expand.DefaultRegistry()
	for _, p := range packs {
		if err := reg.Install(p); err != nil {
			t.Fatalf("Failed to install pack %s: %v", p.Name, err)
		}
	}
	cfg, err := config.New(opts...)
	if err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}
	return expand.New(reg, cfg)
}

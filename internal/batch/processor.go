// Package batch converts many scene exports in one invocation. Every file
// runs through its own pipeline with its own caches; only the read-only item
// table is shared across workers.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/config"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/document"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/itemdb"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/logger"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/texture"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/transform"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Items     *itemdb.Table
	DataDir   string
	OutputDir string
	Convert   config.ConvertConfig
	Workers   int
}

// Result holds the outcome of converting one file.
type Result struct {
	Input   string
	Output  string
	Success bool
	Error   string
}

// Discover lists the .glb and .gltf files directly inside dir.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".glb", ".gltf":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// Run converts all files using a worker pool.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					logger.Log.Info("batch progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("files_per_sec", float64(p)/elapsed))
				}
			}
		}
	}()

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	fileChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, path string) Result {
	out := filepath.Join(cfg.OutputDir, filepath.Base(path))
	result := Result{Input: path, Output: out}

	doc, err := document.Open(path)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	pipeline, err := transform.New(cfg.Convert.Transforms)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	obs := transform.ZapObserver{Log: logger.Log.With(zap.String("file", filepath.Base(path)))}
	resolver := texture.NewResolver(doc, cfg.DataDir, cfg.Convert.FlatColors)
	resolver.Notify = obs.Texture

	state := &transform.State{
		Doc:      doc,
		Items:    cfg.Items,
		Resolver: resolver,
		Convert:  cfg.Convert,
		Observer: obs,
	}
	if err := pipeline.Run(state); err != nil {
		result.Error = err.Error()
		return result
	}

	if err := document.Save(doc, out); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	return result
}

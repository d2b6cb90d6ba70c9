package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/rmorris/go-pathtracer/pkg/core"
)

// ParallelConfig contains configuration for parallel tile rendering
type ParallelConfig struct {
	TileSize   int   // Size of each square tile in pixels (64 recommended)
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed for per-tile random streams
}

// DefaultParallelConfig returns sensible default values
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       42,
	}
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Random *rand.Rand      // Tile-specific random generator for deterministic results
}

// NewTileGrid creates a grid of tiles covering the entire image. Each tile
// gets its own random generator seeded from the base seed plus the tile ID,
// so renders are reproducible regardless of worker scheduling.
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Ceiling division to cover partial tiles at the edges
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     tileID,
				Bounds: image.Rect(x0, y0, x1, y1),
				Random: rand.New(rand.NewSource(seed + int64(tileID))),
			})
			tileID++
		}
	}

	return tiles
}

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile       *Tile
	PixelStats [][]PixelStats // Shared pixel stats grid to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID int
	Stats  RenderStats
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool rendering tiles with the given raytracer
func NewWorkerPool(raytracer *Raytracer, numWorkers, maxTiles int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(raytracer)
	}

	return wp
}

// run is the main worker loop. The raytracer is read-only during rendering
// and tiles have disjoint bounds, so workers share both without locking.
func (wp *WorkerPool) run(raytracer *Raytracer) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		stats := raytracer.RenderBounds(task.Tile.Bounds, task.PixelStats, task.Tile.Random)
		wp.resultQueue <- TileResult{TileID: task.Tile.ID, Stats: stats}
	}
}

// Stop closes the task queue and waits for workers to finish
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Render renders the full image in parallel across tiles. Cancellation is
// coarse-grained: a cancelled context stops dispatching new tiles and no
// image is returned.
func (rt *Raytracer) Render(ctx context.Context, config ParallelConfig, logger core.Logger) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()

	tiles := NewTileGrid(rt.width, rt.height, config.TileSize, config.Seed)

	// Shared pixel statistics grid in global image coordinates
	pixelStats := make([][]PixelStats, rt.height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, rt.width)
	}

	pool := NewWorkerPool(rt, config.NumWorkers, len(tiles))

	logger.Printf("Rendering %dx%d, %d samples/pixel, %d tiles on %d workers\n",
		rt.width, rt.height, rt.config.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	// Dispatch tiles, stopping between tiles if the context is cancelled.
	// The task queue is buffered for every tile so submission never blocks.
	dispatched := 0
	for _, tile := range tiles {
		select {
		case <-ctx.Done():
		default:
			pool.taskQueue <- TileTask{Tile: tile, PixelStats: pixelStats}
			dispatched++
		}
		if ctx.Err() != nil {
			break
		}
	}

	// Aggregate per-tile stats as results arrive
	stats := RenderStats{
		TotalPixels: rt.width * rt.height,
		MinSamples:  rt.config.SamplesPerPixel,
		Workers:     pool.GetNumWorkers(),
	}
	for i := 0; i < dispatched; i++ {
		result := <-pool.resultQueue
		stats.TotalSamples += result.Stats.TotalSamples
		stats.MinSamples = min(stats.MinSamples, result.Stats.MinSamples)
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, result.Stats.MaxSamplesUsed)
	}
	pool.Stop()

	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("rendering cancelled: %w", err)
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	stats.Elapsed = time.Since(startTime)

	logger.Printf("Render completed in %v\n", stats.Elapsed)

	return rt.assembleImage(pixelStats), stats, nil
}

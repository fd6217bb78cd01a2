package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/grove/ecs"
	"github.com/plus3/grove/scene"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The approximate number of entities to create.")
	depth := flag.Int("depth", 4, "Depth of each generated tree.")
	fanout := flag.Int("fanout", 3, "Children per node of each generated tree.")
	prefabPath := flag.String("prefab", "", "Load the tree from a YAML prefab instead of generating one.")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "Goroutines used by parallel systems.")
	seed := flag.Int64("seed", 1, "Random seed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("Unknown profile mode %q", *profileMode)
	}

	log.Println("Starting scene stress test...")

	prefab := buildPrefab(*depth, *fanout)
	if *prefabPath != "" {
		f, err := os.Open(*prefabPath)
		if err != nil {
			log.Fatalf("Failed to open prefab: %v", err)
		}
		prefab, err = scene.LoadPrefab(f)
		f.Close()
		if err != nil {
			log.Fatalf("Failed to load prefab: %v", err)
		}
	}

	// 1. Setup World and Scheduler
	rng := rand.New(rand.NewSource(*seed))
	world := ecs.NewWorldWithCapacity(*entityCount)
	scene.Register(world)
	ecs.RegisterComponent[Spin](world)
	ecs.RegisterComponent[Drift](world)
	ecs.NewSingleton[FrameStats](world)

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&SpinSystem{})
	scheduler.Register(&DriftSystem{Workers: *workers})
	scheduler.Register(&WorldTransformSystem{})
	scheduler.Register(&ChurnSystem{Prefab: prefab, Rand: rng})

	// 2. Populate the world with prefab instances
	trees := max(1, *entityCount/len(prefab.Nodes))
	log.Printf("Instantiating %d trees of %d nodes...\n", trees, len(prefab.Nodes))
	for i := 0; i < trees; i++ {
		entities, err := prefab.Instantiate(world)
		if err != nil {
			log.Fatalf("Failed to instantiate prefab: %v", err)
		}
		decorate(world, entities, rng)
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       world.Len(),
		Trees:          trees,
		NodesPerTree:   len(prefab.Nodes),
		Workers:        *workers,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(float64(deltaTime) / float64(time.Second))
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Systems = scheduler.Stats().Systems
	report.World = world.Stats()
	var stats *FrameStats
	if world.ReadSingleton(&stats) {
		report.Frame = *stats
	}
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"

	"net/http"
	_ "net/http/pprof"

	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/asset"
	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/config"
	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/render"
	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/viewer"
)

var (
	config_path = flag.String("config", config.DefaultPath, "read settings from `file`")
	asset_root  = flag.String("root", "", "load assets from `dir` or base URL (default: bundled assets)")
	mesh_name   = flag.String("mesh", "", "OBJ `path` relative to the asset root")
	strict      = flag.Bool("strict", false, "fail on unknown materials")
	headless    = flag.Bool("headless", false, "run the render loop without a window")
	frames      = flag.Int("frames", 300, "frames to run in headless mode")
	pprof_addr  = flag.String("pprof", "", "serve net/http/pprof on `addr`")
	cpu_profile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	mem_profile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Parse()

	if *cpu_profile != "" {
		f, err := os.Create(*cpu_profile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if *mem_profile != "" {
		defer func() {
			f, err := os.Create(*mem_profile)
			if err != nil {
				log.Fatal("could not create memory profile:", err)
			}
			defer f.Close()
			runtime.GC() // get up-to-date statistics
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Fatal("could not write memory profile:", err)
			}
		}()
	}

	if *pprof_addr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprof_addr, nil))
		}()
	}

	cfg, err := settings()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetcher, err := asset.NewFetcher(cfg.Assets.Root)
	if err != nil {
		log.Fatal(err)
	}
	loader := asset.Loader{Fetcher: fetcher, Strict: cfg.Strict}
	mesh, err := loader.LoadMesh(ctx, cfg.Assets.Mesh)
	if err != nil {
		log.Fatal(err)
	}

	if *headless {
		if err := run_headless(ctx, cfg, mesh); err != nil {
			log.Fatal(err)
		}
		return
	}

	host := render.NewHost(render.Options{
		ClearColor: cfg.Render.ClearColor,
		ShowStats:  cfg.Render.ShowStats,
	}, render.Hooks{})

	session := viewer.New(mesh, host, host, nil)
	host.SetHooks(render.Hooks{
		Resize: session.Resize,
		Toggle: session.Toggle,
		Status: func() string {
			return fmt.Sprintf("Loop: %v (space) Ticks: %d", session.State(), session.Clock().Ticks())
		},
	})
	session.Init(cfg.Window.Width, cfg.Window.Height)

	err = render.Run(host, render.Window{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: cfg.Window.Resizable,
		Vsync:     cfg.Window.Vsync,
	})
	if err != nil {
		log.Fatal(err)
	}
}

// settings applies the flags that were set on top of the config file.
func settings() (config.Config, error) {
	cfg, err := config.Load(*config_path)
	if err != nil {
		return cfg, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "root":
			cfg.Assets.Root = *asset_root
		case "mesh":
			cfg.Assets.Mesh = *mesh_name
		case "strict":
			cfg.Strict = *strict
		}
	})
	return cfg, cfg.Validate()
}

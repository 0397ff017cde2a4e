package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"

	"github.com/peragwin/xmatrix/audio"
	"github.com/peragwin/xmatrix/audio/control"
	"github.com/peragwin/xmatrix/audio/matrix"
	"github.com/peragwin/xmatrix/audio/mixer"
)

var (
	configFile = flag.String("config", "", "JSON config file")

	channels   = flag.Int("channels", 2, "number of streams (N)")
	sampleRate = flag.Float64("rate", 48000, "sample rate")
	blockSize  = flag.Int("block", 256, "frames per block")
	ramp       = flag.Duration("ramp", 100*time.Millisecond, "crossfade time")
	topology   = flag.String("topology", "ring", "initial routing")
	oscAddr    = flag.String("osc", "0.0.0.0:7000", "OSC listen address")
	httpAddr   = flag.String("http", ":8080", "GraphQL listen address, empty to disable")
	renderIvl  = flag.Duration("render", time.Second, "how often to log the matrix at -v=1")

	devices = flag.Bool("devices", false, "list audio devices and exit")
)

// applyFlags copies explicitly set flags over cfg.
func applyFlags(cfg *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "channels":
			cfg.Channels = *channels
		case "rate":
			cfg.SampleRate = *sampleRate
		case "block":
			cfg.BlockSize = *blockSize
		case "ramp":
			cfg.Ramp.Duration = *ramp
		case "topology":
			cfg.Topology = *topology
		case "osc":
			cfg.OSCAddr = *oscAddr
		case "http":
			cfg.HTTPAddr = *httpAddr
		case "render":
			cfg.RenderInterval.Duration = *renderIvl
		}
	})
}

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		glog.Fatal(err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		glog.Fatal(err)
	}

	if *devices {
		if err := audio.PrintDevices(cfg.Channels); err != nil {
			glog.Fatal(err)
		}
		return
	}

	initial, err := matrix.Topology(cfg.Topology, cfg.Channels)
	if err != nil {
		glog.Fatal(err)
	}
	engine, err := mixer.New(&mixer.Config{
		Channels:   cfg.Channels,
		SampleRate: cfg.SampleRate,
		Ramp:       cfg.Ramp.Duration,
		Initial:    initial,
	})
	if err != nil {
		glog.Fatal("error creating mixer: ", err)
	}
	handler := control.NewHandler(initial, engine)
	glog.Infof("%dx%d %s matrix, %d sample crossfade",
		cfg.Channels, cfg.Channels, cfg.Topology, engine.RampSamples())

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	go func() {
		server := control.NewOSCServer(cfg.OSCAddr, handler)
		glog.Infof("OSC listening on %s (%s, %s)",
			cfg.OSCAddr, control.AbsoluteAddress, control.SparseAddress)
		if err := server.ListenAndServe(); err != nil {
			glog.Errorf("osc: %v", err)
			cancel()
		}
	}()

	if cfg.HTTPAddr != "" {
		schema, err := control.NewSchema(handler, engine)
		if err != nil {
			glog.Fatal(err)
		}
		mux := http.NewServeMux()
		mux.Handle("/api/v1/graphql", schema)
		srv := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}
		go func() {
			glog.Infof("GraphQL on %s/api/v1/graphql", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				glog.Errorf("http: %v", err)
				cancel()
			}
		}()
		defer srv.Close()
	}

	if glog.V(1) {
		go render(ctx, engine, cfg.RenderInterval.Duration)
	}

	err = audio.Serve(ctx, &audio.Config{
		BlockSize:  cfg.BlockSize,
		Channels:   cfg.Channels,
		SampleRate: cfg.SampleRate,
	}, engine)
	if err != nil {
		glog.Fatal(err)
	}
	glog.Info("signal received, exiting")
}

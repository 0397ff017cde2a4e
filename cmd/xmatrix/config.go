package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/peragwin/xmatrix/audio/matrix"
)

// Config is the router's startup configuration. It can be loaded from a
// JSON file and overridden with flags.
type Config struct {
	Channels   int      `json:"channels"`
	SampleRate float64  `json:"sampleRate"`
	BlockSize  int      `json:"blockSize"`
	Ramp       Duration `json:"ramp"`
	Topology   string   `json:"topology"`

	OSCAddr  string `json:"oscAddr"`
	HTTPAddr string `json:"httpAddr"`

	RenderInterval Duration `json:"renderInterval"`
}

// Duration is a time.Duration that reads and writes as a string like "100ms".
type Duration struct {
	time.Duration
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// DefaultConfig is used for anything the file and flags leave unset.
func DefaultConfig() *Config {
	return &Config{
		Channels:       2,
		SampleRate:     48000,
		BlockSize:      256,
		Ramp:           Duration{100 * time.Millisecond},
		Topology:       "ring",
		OSCAddr:        "0.0.0.0:7000",
		HTTPAddr:       ":8080",
		RenderInterval: Duration{time.Second},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	fp, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	defer fp.Close()
	if err := json.NewDecoder(fp).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %v", path, err)
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise fail deep inside startup.
func (c *Config) Validate() error {
	if c.Channels < 1 || c.Channels > matrix.MaxSize {
		return fmt.Errorf("channels must be in [1, %d], got %d", matrix.MaxSize, c.Channels)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %v", c.SampleRate)
	}
	if c.BlockSize < 1 {
		return fmt.Errorf("block size must be positive, got %d", c.BlockSize)
	}
	if _, err := matrix.Topology(c.Topology, c.Channels); err != nil {
		return fmt.Errorf("%v (have %v)", err, matrix.Topologies())
	}
	return nil
}

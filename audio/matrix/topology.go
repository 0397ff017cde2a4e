package matrix

import (
	"errors"
	"fmt"
	"sort"
)

// ErrTopology is returned for an unknown topology name.
var ErrTopology = errors.New("matrix: unknown topology")

var topologies = map[string]func(n int) (*Gains, error){
	"ring":     Ring,
	"star":     Star,
	"full":     Full,
	"identity": Identity,
	"silent":   New,
}

// Topologies lists the names accepted by Topology.
func Topologies() []string {
	names := make([]string, 0, len(topologies))
	for name := range topologies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Topology builds a named default routing.
func Topology(name string, n int) (*Gains, error) {
	build, ok := topologies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTopology, name)
	}
	return build(n)
}

// Ring feeds each stream into the next one at unity gain.
func Ring(n int) (*Gains, error) {
	g, err := New(n)
	if err != nil {
		return nil, err
	}
	for r := 0; r < n; r++ {
		g.Set(r, (r+1)%n, 1)
	}
	return g, nil
}

// Star connects stream 0 with every other stream in both directions.
func Star(n int) (*Gains, error) {
	g, err := New(n)
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		g.Set(0, i, 1)
		g.Set(i, 0, 1)
	}
	return g, nil
}

// Full routes every stream to every other stream.
func Full(n int) (*Gains, error) {
	g, err := New(n)
	if err != nil {
		return nil, err
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if r != c {
				g.Set(r, c, 1)
			}
		}
	}
	return g, nil
}

// Identity routes each stream back to itself.
func Identity(n int) (*Gains, error) {
	g, err := New(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		g.Set(i, i, 1)
	}
	return g, nil
}

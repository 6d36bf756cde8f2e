// File: cmd/sdrlinkctl/config.go
// Author: momentics <momentics@gmail.com>
//
// YAML configuration for the diagnostic CLI: link geometry, routing
// tree contents and the routing specs to apply.

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/momentics/hioload-sdr/api"
	"github.com/momentics/hioload-sdr/control"
	"github.com/momentics/hioload-sdr/transport/usb"
)

type routeEntry struct {
	Db string `yaml:"db"`
	Fe string `yaml:"fe"`
}

type cliConfig struct {
	Link     usb.Config        `yaml:"link"`
	TickRate float64           `yaml:"tick_rate"`
	Tree     map[string]string `yaml:"tree"`
	Routing  struct {
		Rx []routeEntry `yaml:"rx"`
		Tx []routeEntry `yaml:"tx"`
	} `yaml:"routing"`
}

func loadConfig(path string) (*cliConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg cliConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if cfg.TickRate == 0 {
		cfg.TickRate = 64e6
	}
	return &cfg, nil
}

func (c *cliConfig) routingTree() *control.RoutingTree {
	tree := control.NewRoutingTree()
	for k, v := range c.Tree {
		tree.Set(k, v)
	}
	return tree
}

func specOf(entries []routeEntry) api.RouteSpec {
	out := make(api.RouteSpec, len(entries))
	for i, e := range entries {
		out[i] = api.RouteEntry{Db: e.Db, Fe: e.Fe}
	}
	return out
}

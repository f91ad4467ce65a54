// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cubesnap runs cube snapping scenarios headlessly and
// prints the resulting state of the pieces and the container.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
	"cogentcore.org/cubesnap/config"
	"cogentcore.org/cubesnap/sim"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Config is the configuration information for the cubesnap cli.
type Config struct {

	// Scenario is the YAML scenario file to run.
	Scenario string `posarg:"0"`

	// Settings is an optional TOML file with mechanic parameters,
	// applied before CUBESNAP_* environment overrides.
	Settings string `flag:"s,settings"`

	// Trace logs every state transition.
	Trace bool `flag:"trace"`

	// Metrics prints the metrics after the report.
	Metrics bool `flag:"metrics"`

	// Watch runs the scenario again whenever the scenario or
	// settings file changes, until interrupted.
	Watch bool `flag:"w,watch"`
}

func main() {
	opts := cli.DefaultOptions("cubesnap", "Cubesnap runs cube snapping scenarios headlessly.")
	cli.Run(opts, &Config{}, Run)
}

// Run runs the scenario and prints the final report.
func Run(c *Config) error { //cli:cmd -root
	if c.Trace {
		logx.UserLevel = slog.LevelDebug
	}
	if c.Watch {
		return Watch(c)
	}
	return runOnce(c)
}

// runOnce loads the settings and the scenario, runs it in a new
// simulation and prints the report.
func runOnce(c *Config) error {
	cfg, err := config.Load(c.Settings)
	if err != nil {
		return err
	}
	sc, err := sim.OpenScenario(c.Scenario)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	s, err := sim.New(cfg, reg)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Run(sc); err != nil {
		return err
	}
	fmt.Print(s.Report())
	if !c.Metrics {
		return nil
	}
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	fmt.Println("---")
	for _, mf := range mfs {
		errors.Log1(expfmt.MetricFamilyToText(os.Stdout, mf))
	}
	return nil
}

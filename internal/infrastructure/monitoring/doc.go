/*
Package monitoring provides Prometheus metrics for the bootstrap core.

# Overview

The loader and autoloader record what they do so a host embedding the core
can see how long settings take to load, how large the autoload index is and
how often symbol resolution falls through to the slow pattern search.

# Features

- Settings files loaded and load failures by error kind
- Directory scans, scan duration and indexed file count
- Resolve outcomes: direct index hit, pattern hit, miss

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	metrics.RecordFileLoaded("json")
	metrics.RecordResolve(monitoring.ResolveDirect)

A nil *Metrics is valid and records nothing, so components can be built
without metrics in tests.

# Metrics Endpoint

Hosts that serve HTTP can expose the registerer through promhttp:

	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
*/
package monitoring

// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus instruments for exports, label edits,
// overlay redraws and watch reloads, registered with the default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ExportsTotal counts graph exports by result ("ok" or "error").
	ExportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathgraph_exports_total",
			Help: "Total number of graph exports",
		},
		[]string{"result"},
	)

	// ExportDuration observes the time to build and write one export.
	ExportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathgraph_export_duration_seconds",
			Help:    "Time spent building and writing a graph export",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ExportedVertices is the vertex count of the last export per mesh.
	ExportedVertices = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pathgraph_exported_vertices",
			Help: "Vertex count of the last export",
		},
		[]string{"mesh"},
	)

	// ExportedEdges is the edge count of the last export per mesh.
	ExportedEdges = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pathgraph_exported_edges",
			Help: "Edge count of the last export",
		},
		[]string{"mesh"},
	)

	// LabelsSavedTotal counts vertices labelled by the save operator.
	LabelsSavedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pathgraph_labels_saved_total",
			Help: "Total number of vertex labels written",
		},
	)

	// OverlayDrawsTotal counts overlay redraws that produced text.
	OverlayDrawsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pathgraph_overlay_draws_total",
			Help: "Total number of overlay redraws",
		},
	)

	// ReloadsTotal counts watch-mode mesh reloads by result.
	ReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathgraph_mesh_reloads_total",
			Help: "Total number of mesh reloads triggered by file changes",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(ExportsTotal)
	prometheus.MustRegister(ExportDuration)
	prometheus.MustRegister(ExportedVertices)
	prometheus.MustRegister(ExportedEdges)
	prometheus.MustRegister(LabelsSavedTotal)
	prometheus.MustRegister(OverlayDrawsTotal)
	prometheus.MustRegister(ReloadsTotal)
}

// Result maps an error to the "result" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler { return promhttp.Handler() }

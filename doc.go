// SPDX-License-Identifier: MIT

// Package pathgraph labels mesh vertices with "place" names and exports the
// mesh as a weighted vertex graph for external pathfinding and navigation.
//
// What gets exported:
//
//	{
//	    "verts": [ { "coords": [x, y, z], "place": "Kitchen" }, ... ],
//	    "graph": { "0": { "1": { "weight": 1.0 } }, ... }
//	}
//
// One node per vertex index, one undirected edge per mesh edge weighted by
// the Euclidean distance of its endpoints, and verts[i] describing index i.
//
// Packages:
//
//	core/     thread-safe weighted graph used to assemble the adjacency
//	mesh/     vertices with stable IDs and session indices, OBJ I/O, fingerprints
//	labels/   the per-vertex place layer, in memory or in SQLite
//	session/  active object, edit mode, scoped views and redraw events
//	export/   graph construction and deterministic, atomic JSON output
//	ops/      create-layer, save-label and export actions
//	overlay/  per-vertex text drawn on every redraw
//	panel/    interactive terminal panel (bubbletea)
//	watch/    reload and re-export on file changes (fsnotify)
//	config/   YAML + environment configuration
//	metrics/  Prometheus instruments
//
// The pathgraph command wires them together; see cmd/pathgraph.
package pathgraph

// Package pkg provides the core libraries for Gridflow diagram layout and routing.
//
// # Overview
//
// Gridflow turns a flowchart description (nodes and directed edges) into a
// deterministic layered layout and a set of collision-avoiding orthogonal
// edge routes on an integer grid. The pkg directory is organized into five
// main areas:
//
//  1. [diagram] - The diagram document model and its JSON format
//  2. [layout] - Layer assignment and in-layer ordering
//  3. [route] - Grid projection and orthogonal edge routing
//  4. [pipeline] - Orchestration (load → layout → route) with result caching
//  5. [session] - Named diagram snapshots with optimistic concurrency
//
// # Architecture
//
// The typical data flow through Gridflow:
//
//	Diagram JSON document
//	         ↓
//	    [diagram] package (parse + validate)
//	         ↓
//	    [layout] package (layers + in-layer order)
//	         ↓
//	    [route] package (grid projection + edge polylines)
//	         ↓
//	    JSON output
//
// # Quick Start
//
// Load a diagram, lay it out, and route its edges:
//
//	import (
//	    "github.com/gridflow-dev/gridflow/pkg/diagram"
//	    "github.com/gridflow-dev/gridflow/pkg/layout"
//	    "github.com/gridflow-dev/gridflow/pkg/route"
//	)
//
//	// 1. Load the diagram
//	d, _ := diagram.ReadFile("flow.json")
//
//	// 2. Compute the layered placement
//	l, _ := layout.Build(d)
//
//	// 3. Route every edge through the grid
//	routes := route.AllOrdered(d, l)
//
// # Main Packages
//
// [diagram] - Ordered node/edge document model. Insertion order never affects
// results; IDs are reported in lexical order and the JSON form is byte-stable.
//
// [layout] - Layered placement: sources at layer 0, every edge pointing to a
// strictly greater layer, in-layer order chosen by a barycenter sweep to
// reduce crossings. Cycles and unknown endpoints are reported as structural
// errors.
//
// [route] - Orthogonal edge routing on the doubled-coordinate grid. Node
// anchors occupy even/even cells with 3x3 footprints; routes travel the odd
// "streets" between them. Dense diagrams additionally steer around congested
// corridors.
//
// [pipeline] - Complete processing pipeline (load → layout → route) used by
// the CLI. Caches results keyed by the diagram's content hash.
//
// [cache] - Result cache with file-based and null implementations.
//
// [session] - Named diagram snapshots stored as files, guarded by revision
// tokens for optimistic concurrency.
//
// [observability] - Hook interfaces for instrumenting engine runs and cache
// operations without coupling the libraries to a metrics backend.
//
// [errors] - Coded errors shared by the CLI surface.
//
// [buildinfo] - Version metadata injected at build time.
package pkg

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridflow-dev/gridflow/pkg/route"
)

// routeDoc is the serialized routing result: the layout plus one polyline
// per edge, in the diagram's edge order.
type routeDoc struct {
	Layout layoutDoc         `json:"layout"`
	Routes []route.EdgeRoute `json:"routes"`
}

// routeCommand creates the route command.
func (c *CLI) routeCommand() *cobra.Command {
	var output string
	var refresh bool

	cmd := &cobra.Command{
		Use:   "route [diagram.json]",
		Short: "Compute routed edge polylines for a diagram",
		Long: `Compute routed edge polylines for a diagram.

The route command lays the diagram out and then routes every edge through
the integer street grid, avoiding node footprints and congested corridors.
Polylines list the turning points of each route, endpoints included.
The result is deterministic for a given diagram.

Output is JSON on stdout unless -o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoute(args[0], output, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached result exists")
	return cmd
}

// runRoute loads the diagram, computes layout and routes, and writes both.
func (c *CLI) runRoute(input, output string, refresh bool) error {
	p := newProgress(c.Logger)
	res, err := c.runEngine(input, refresh, true)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Routed %d edges", len(res.Routes)))

	doc := routeDoc{
		Layout: newLayoutDoc(res.Layout),
		Routes: res.Routes,
	}

	if err := c.writeJSON(doc, output); err != nil {
		return err
	}
	c.printSuccess("Routed %d edges across %d layers", len(res.Routes), len(res.Layout.Layers))
	return nil
}

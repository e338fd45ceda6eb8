package layout

import (
	"fmt"
	"strings"
)

// EndpointRole names which end of an edge failed validation.
type EndpointRole string

const (
	RoleSource      EndpointRole = "source"
	RoleDestination EndpointRole = "destination"
)

// UnknownNodeError reports an edge whose source or destination names a node
// that does not exist in the diagram.
type UnknownNodeError struct {
	Edge string       // ID of the offending edge
	Role EndpointRole // Which endpoint was invalid
	Node string       // The missing node ID
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("edge %q: unknown %s node %q", e.Edge, e.Role, e.Node)
}

// CycleError reports that the diagram is not a DAG. Nodes holds every node
// that retained positive in-degree after the topological pass (the cycle
// members plus anything reachable only through them), sorted lexically. No
// attempt is made to isolate a minimal cycle.
type CycleError struct {
	Nodes []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("diagram contains a cycle involving: %s", strings.Join(e.Nodes, ", "))
}

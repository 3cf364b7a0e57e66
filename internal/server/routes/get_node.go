package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphlens/lens/internal/server/middleware"
	"github.com/graphlens/lens/pkg/graph"
)

// GetNodeHandler returns one node with every edge touching it.
func GetNodeHandler(c echo.Context) error {
	type nodeParams struct {
		ID string `param:"id" validate:"required"`
	}

	type nodeResponse struct {
		Message   string       `json:"message,omitempty"`
		Node      *graph.Node  `json:"node,omitempty"`
		Edges     []graph.Edge `json:"edges,omitempty"`
		Neighbors []string     `json:"neighbors,omitempty"`
	}

	params := new(nodeParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, nodeResponse{
			Message: "Invalid request",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, nodeResponse{
			Message: "Invalid request",
		})
	}

	snapshot := c.(*middleware.AppContext).App.Session.Current()
	if snapshot == nil {
		return c.JSON(http.StatusNotFound, nodeResponse{
			Message: "No artifacts loaded",
		})
	}

	node, ok := snapshot.Graph.Node(params.ID)
	if !ok {
		return c.JSON(http.StatusNotFound, nodeResponse{
			Message: "Node not found",
		})
	}

	edges := snapshot.Graph.Incident(params.ID)
	seen := make(map[string]bool, len(edges))
	neighbors := make([]string, 0, len(edges))
	for _, edge := range edges {
		other := edge.Source
		if other == params.ID {
			other = edge.Target
		}
		if !seen[other] {
			seen[other] = true
			neighbors = append(neighbors, other)
		}
	}

	return c.JSON(http.StatusOK, nodeResponse{
		Node:      node,
		Edges:     edges,
		Neighbors: neighbors,
	})
}

package size

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vario/internal/core/ports"
)

// NodeID is the unique identifier for the size reporter Graft node.
const NodeID graft.ID = "adapter.size"

func init() {
	graft.Register(graft.Node[ports.SizeReporter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SizeReporter, error) {
			return NewReporter(), nil
		},
	})
}

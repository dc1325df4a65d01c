package cart

import (
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// Consolidation is the result of merging duplicate lines for one product.
// Surviving holds the canonical line carrying the summed quantity; Surplus
// lists the IDs of duplicate lines to delete. Quantity conservation: the
// surviving quantity equals the sum over all input lines, so applying a
// consolidation never changes reserved stock.
type Consolidation struct {
	Surviving Line
	Surplus   []uuid.UUID
}

// IsNoop returns true when the input was already consolidated
func (c Consolidation) IsNoop() bool {
	return len(c.Surplus) == 0
}

// Consolidate merges all lines for a single (client, product) pair into one.
// The oldest line survives so its identity is stable across repeated repairs;
// running Consolidate on already-consolidated input returns it unchanged.
func Consolidate(lines []Line) (Consolidation, error) {
	if len(lines) == 0 {
		return Consolidation{}, shared.NewDomainError("NO_LINES", "Cannot consolidate an empty line set")
	}

	survivor := 0
	for i := 1; i < len(lines); i++ {
		if lines[i].ClientID != lines[0].ClientID || lines[i].ProductID != lines[0].ProductID {
			return Consolidation{}, shared.NewDomainError("MIXED_LINES", "Cannot consolidate lines of different clients or products")
		}
		if lines[i].CreatedAt.Before(lines[survivor].CreatedAt) {
			survivor = i
		}
	}

	result := Consolidation{Surviving: lines[survivor]}
	for i, line := range lines {
		if i == survivor {
			continue
		}
		result.Surviving.Quantity += line.Quantity
		result.Surplus = append(result.Surplus, line.ID)
	}

	return result, nil
}

// GroupByProduct splits a client's lines by product. The returned product IDs
// follow the order of each product's first appearance, so callers ranging over
// them keep the cart's line order stable. Read paths use the groups to
// self-heal every product's lines.
func GroupByProduct(lines []Line) ([]uuid.UUID, map[uuid.UUID][]Line) {
	order := make([]uuid.UUID, 0, len(lines))
	groups := make(map[uuid.UUID][]Line, len(lines))
	for _, line := range lines {
		if _, seen := groups[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		groups[line.ProductID] = append(groups[line.ProductID], line)
	}
	return order, groups
}

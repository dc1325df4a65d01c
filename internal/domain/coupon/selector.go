package coupon

import (
	"sort"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Policy selects the tie-break rule used when no coupon subset matches the
// order total exactly.
type Policy string

const (
	// PolicyPreferPromotional spends an applicable promotional coupon even when
	// a trade-refund subset would land closer to the total. It never overshoots,
	// so the client never becomes owed change.
	PolicyPreferPromotional Policy = "PREFER_PROMOTIONAL"

	// PolicyMinimizeDeviation picks the subset whose sum lands closest to the
	// total, overshooting (owing change) when that is strictly closer. Ties go
	// to the subset that does not overshoot, then to fewer coupons, then to
	// preserving the promotional coupon.
	PolicyMinimizeDeviation Policy = "MINIMIZE_DEVIATION"
)

// IsValid checks if the policy is valid
func (p Policy) IsValid() bool {
	return p == PolicyPreferPromotional || p == PolicyMinimizeDeviation
}

// Selection is the outcome of a coupon selection run. Exactly one of
// Remainder and Change is nonzero unless the match is exact.
type Selection struct {
	Coupons   []Coupon
	Total     valueobject.Money
	Remainder valueobject.Money
	Change    valueobject.Money
	Exact     bool
}

// dpBudget caps the DP table work (coupon count times sum range in cents).
// Above it the selector falls back to the greedy pass, which is allowed to be
// suboptimal.
const dpBudget = 50_000_000

// Selector computes the coupon subset to apply at checkout
type Selector struct {
	policy Policy
}

// NewSelector creates a selector with the given tie-break policy
func NewSelector(policy Policy) (*Selector, error) {
	if !policy.IsValid() {
		return nil, shared.NewDomainError("INVALID_POLICY", "Unknown coupon selection policy")
	}
	return &Selector{policy: policy}, nil
}

// Select chooses the subset of available coupons to apply against target.
// Pinned coupons are forced into the selection before the search runs; at
// most one promotional coupon may appear across pinned and chosen coupons.
// All candidate coupons must be in the Available state.
func (s *Selector) Select(target valueobject.Money, available []Coupon, pinned []Coupon) (Selection, error) {
	if !target.IsPositive() {
		return Selection{}, shared.NewDomainError("INVALID_TARGET", "Selection target must be positive")
	}
	for _, c := range append(append([]Coupon{}, available...), pinned...) {
		if !c.IsAvailable() {
			return Selection{}, ErrCouponAlreadyUsed
		}
	}

	promoPinned := false
	pinnedCents := int64(0)
	pinnedIDs := make(map[uuid.UUID]bool, len(pinned))
	for _, c := range pinned {
		if c.Kind == KindPromotional {
			if promoPinned {
				return Selection{}, ErrPromotionalLimitExceeded
			}
			promoPinned = true
		}
		pinnedCents += c.ValueMoney().Cents()
		pinnedIDs[c.ID] = true
	}

	targetCents := target.Cents()
	if pinnedCents >= targetCents {
		return buildSelection(pinned, pinnedCents, targetCents), nil
	}

	// Pinned coupons shrink the search target; a pinned promotional coupon
	// removes every other promotional coupon from the pool.
	pool := make([]Coupon, 0, len(available))
	for _, c := range available {
		if pinnedIDs[c.ID] {
			continue
		}
		if promoPinned && c.Kind == KindPromotional {
			continue
		}
		pool = append(pool, c)
	}

	chosen := s.search(targetCents-pinnedCents, pool)

	result := append(append([]Coupon{}, pinned...), chosen...)
	total := pinnedCents
	for _, c := range chosen {
		total += c.ValueMoney().Cents()
	}
	return buildSelection(result, total, targetCents), nil
}

func buildSelection(coupons []Coupon, totalCents, targetCents int64) Selection {
	sel := Selection{
		Coupons:   coupons,
		Total:     valueobject.NewMoneyFromCents(totalCents, valueobject.BRL),
		Remainder: valueobject.ZeroBRL(),
		Change:    valueobject.ZeroBRL(),
		Exact:     totalCents == targetCents,
	}
	if totalCents < targetCents {
		sel.Remainder = valueobject.NewMoneyFromCents(targetCents-totalCents, valueobject.BRL)
	}
	if totalCents > targetCents {
		sel.Change = valueobject.NewMoneyFromCents(totalCents-targetCents, valueobject.BRL)
	}
	return sel
}

// pathNode is an immutable cons cell recording one subset reaching a DP
// state. Immutability keeps reconstructed subsets valid even after the state
// is later improved.
type pathNode struct {
	count     int
	couponIdx int
	prev      *pathNode
}

func (n *pathNode) materialize(pool []Coupon) []Coupon {
	if n == nil || n.count == 0 {
		return nil
	}
	coupons := make([]Coupon, 0, n.count)
	for cur := n; cur != nil && cur.couponIdx >= 0; cur = cur.prev {
		coupons = append(coupons, pool[cur.couponIdx])
	}
	return coupons
}

// search runs the subset-sum DP over cents. Layer 0 holds subsets without a
// promotional coupon, layer 1 subsets with exactly one. The sum range extends
// past the target by the largest single coupon value: any minimal
// overshooting subset stays within that bound, because dropping any coupon
// from a farther subset still overshoots.
func (s *Selector) search(targetCents int64, pool []Coupon) []Coupon {
	if targetCents <= 0 || len(pool) == 0 {
		return nil
	}

	cents := make([]int64, len(pool))
	maxCoupon := int64(0)
	for i, c := range pool {
		cents[i] = c.ValueMoney().Cents()
		if cents[i] > maxCoupon {
			maxCoupon = cents[i]
		}
	}

	bound := targetCents
	if s.policy == PolicyMinimizeDeviation {
		bound = targetCents + maxCoupon
	}
	if int64(len(pool))*bound > dpBudget {
		return greedySelect(targetCents, pool, cents)
	}

	layers := [2][]*pathNode{
		make([]*pathNode, bound+1),
		make([]*pathNode, bound+1),
	}
	layers[0][0] = &pathNode{count: 0, couponIdx: -1}

	relax := func(layer []*pathNode, sum int64, cand *pathNode) {
		if layer[sum] == nil || cand.count < layer[sum].count {
			layer[sum] = cand
		}
	}

	for i, c := range pool {
		v := cents[i]
		if v <= 0 || v > bound {
			continue
		}
		if c.Kind == KindPromotional {
			for sum := bound; sum >= v; sum-- {
				if from := layers[0][sum-v]; from != nil {
					relax(layers[1], sum, &pathNode{count: from.count + 1, couponIdx: i, prev: from})
				}
			}
			continue
		}
		for _, layer := range []int{1, 0} {
			for sum := bound; sum >= v; sum-- {
				if from := layers[layer][sum-v]; from != nil {
					relax(layers[layer], sum, &pathNode{count: from.count + 1, couponIdx: i, prev: from})
				}
			}
		}
	}

	// Exact match wins under every policy: fewest coupons, then the subset
	// preserving the promotional coupon.
	if targetCents <= bound {
		exact := layers[0][targetCents]
		if alt := layers[1][targetCents]; alt != nil && (exact == nil || alt.count < exact.count) {
			exact = alt
		}
		if exact != nil {
			return exact.materialize(pool)
		}
	}

	if s.policy == PolicyPreferPromotional {
		for sum := targetCents; sum >= 1; sum-- {
			if node := layers[1][sum]; node != nil {
				return node.materialize(pool)
			}
		}
		for sum := targetCents; sum >= 1; sum-- {
			if node := layers[0][sum]; node != nil {
				return node.materialize(pool)
			}
		}
		return nil
	}

	// The empty subset competes too: applying nothing deviates by the whole
	// target, so no chosen subset may deviate by more than that.
	best, bestSum := layers[0][0], int64(0)
	better := func(node *pathNode, sum int64, layer int) bool {
		if node == nil {
			return false
		}
		dev, bestDev := absDiff(sum, targetCents), absDiff(bestSum, targetCents)
		if dev != bestDev {
			return dev < bestDev
		}
		if (sum <= targetCents) != (bestSum <= targetCents) {
			return sum <= targetCents
		}
		if node.count != best.count {
			return node.count < best.count
		}
		return layer == 0
	}
	for layer := 1; layer >= 0; layer-- {
		for sum := int64(1); sum <= bound; sum++ {
			if node := layers[layer][sum]; better(node, sum, layer) {
				best, bestSum = node, sum
			}
		}
	}
	return best.materialize(pool)
}

// greedySelect takes coupons in descending value order while they fit under
// the target, honoring the one-promotional limit.
func greedySelect(targetCents int64, pool []Coupon, cents []int64) []Coupon {
	order := make([]int, len(pool))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return cents[order[a]] > cents[order[b]]
	})

	var chosen []Coupon
	var sum int64
	promoUsed := false
	for _, i := range order {
		if cents[i] <= 0 || sum+cents[i] > targetCents {
			continue
		}
		if pool[i].Kind == KindPromotional {
			if promoUsed {
				continue
			}
			promoUsed = true
		}
		chosen = append(chosen, pool[i])
		sum += cents[i]
		if sum == targetCents {
			break
		}
	}
	return chosen
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

package recommend

import (
	"fmt"
	"sort"

	"recomart/domain"
)

// topCategoryCount bounds how many of the customer's categories drive the
// heuristic ranking.
const topCategoryCount = 3

// fallbackRecommendations is the terminal safety net. It ranks the
// candidate products (the customer's own purchases are already excluded)
// by overlap with the customer's top categories, then global popularity,
// then product id, and never fails: no candidates yields an empty result.
func (s *RecommendService) fallbackRecommendations(
	summary domain.PurchaseSummary,
	products []domain.Product,
	popularity []domain.ProductPopularity,
	maxResults int,
) []domain.Recommendation {

	categoryRank := make(map[string]int)
	for i, c := range summary.Categories {
		if i == topCategoryCount {
			break
		}
		categoryRank[c.Category] = i
	}

	orderCount := make(map[uint]int64, len(popularity))
	for _, p := range popularity {
		orderCount[p.ProductID] = p.Orders
	}

	ranked := make([]domain.Product, len(products))
	copy(ranked, products)

	sort.Slice(ranked, func(i, j int) bool {
		ri, iTop := categoryRank[ranked[i].Category]
		rj, jTop := categoryRank[ranked[j].Category]

		if iTop != jTop {
			return iTop
		}
		if iTop && jTop && ri != rj {
			return ri < rj
		}
		if orderCount[ranked[i].ID] != orderCount[ranked[j].ID] {
			return orderCount[ranked[i].ID] > orderCount[ranked[j].ID]
		}
		return ranked[i].ID < ranked[j].ID
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	recs := make([]domain.Recommendation, 0, len(ranked))
	for _, p := range ranked {
		rationale := "Popular across the store"
		if _, ok := categoryRank[p.Category]; ok {
			rationale = fmt.Sprintf("Matches your favourite category %q", p.Category)
		}

		recs = append(recs, domain.Recommendation{
			ProductID: p.ID,
			Rationale: rationale,
			Source:    domain.RecommendationSourceFallback,
		})
	}

	return recs
}

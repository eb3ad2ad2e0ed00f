package domain

import "time"

const (
	RecommendationSourceAI       = "ai"
	RecommendationSourceFallback = "fallback-heuristic"
)

// CategoryStat is one row of a purchase summary: how often a category was
// bought and its recency-weighted score (recent orders weigh more).
type CategoryStat struct {
	Category  string  `json:"category"`
	Frequency int     `json:"frequency"`
	Score     float64 `json:"score"`
}

// PurchaseSummary is the aggregated view of a customer's order history,
// ordered by score descending, ties broken by category name ascending.
// ProductIDs lists every product the customer has bought; recommendations
// never include those.
type PurchaseSummary struct {
	CustomerID  uint           `json:"customer_id"`
	TotalOrders int            `json:"total_orders"`
	TotalSpent  float64        `json:"total_spent"`
	Categories  []CategoryStat `json:"categories"`
	ProductIDs  []uint         `json:"product_ids"`
}

// SimilarProduct is a product bought by customers whose purchases overlap
// the target customer's categories: how often it was bought and by how many
// distinct buyers.
type SimilarProduct struct {
	ProductID uint  `json:"product_id"`
	Purchases int64 `json:"purchases"`
	Buyers    int64 `json:"buyers"`
}

type Recommendation struct {
	ProductID uint   `json:"product_id"`
	Rationale string `json:"rationale"`
	Source    string `json:"source"`
}

type RecommendationResult struct {
	CustomerID      uint             `json:"customer_id"`
	Recommendations []Recommendation `json:"recommendations"`
	Total           int              `json:"total_recommendations"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

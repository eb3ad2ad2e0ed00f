package recommend

import (
	"fmt"
	"strings"

	"recomart/domain"
)

const systemPrompt = "You are a product recommendation expert. Analyze the customer's " +
	"purchase history and recommend products from the provided catalog. " +
	"Return pure JSON: a list of objects with fields product_id and reason."

// keep the catalog excerpt small enough for the provider's context window
const maxCatalogLines = 20

func buildUserPrompt(summary domain.PurchaseSummary, products []domain.Product, similar []domain.SimilarProduct, maxResults int, userContext string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Customer purchase summary (%d orders, total spent %.2f):\n",
		summary.TotalOrders, summary.TotalSpent)
	for _, c := range summary.Categories {
		fmt.Fprintf(&b, "- %s: bought %d times (recency score %.1f)\n",
			c.Category, c.Frequency, c.Score)
	}

	if userContext != "" {
		fmt.Fprintf(&b, "\nAdditional context from the customer: %s\n", userContext)
	}

	if len(similar) > 0 {
		detail := make(map[uint]domain.Product, len(products))
		for _, p := range products {
			detail[p.ID] = p
		}

		b.WriteString("\nProducts bought by similar customers:\n")
		for _, sp := range similar {
			p, ok := detail[sp.ProductID]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "- ID: %d, Name: %s, Category: %s, Price: %.2f - bought %d times by %d similar customers\n",
				p.ID, p.Name, p.Category, p.Price, sp.Purchases, sp.Buyers)
		}
	}

	b.WriteString("\nAvailable products:\n")
	for i, p := range products {
		if i == maxCatalogLines {
			break
		}
		fmt.Fprintf(&b, "- ID: %d, Name: %s, Category: %s, Price: %.2f\n",
			p.ID, p.Name, p.Category, p.Price)
	}

	fmt.Fprintf(&b,
		"\nRecommend up to %d products. Respond with JSON only, in the form "+
			`[{"product_id": 1, "reason": "..."}]`+". Use only product ids from the list above.\n",
		maxResults)

	return b.String()
}

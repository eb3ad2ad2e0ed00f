package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recomart/domain"
	"recomart/pkg/logger"
	"recomart/pkg/metrics"
)

// HistoryService contract interface
type HistoryService interface {
	Summarize(ctx context.Context, customerID uint) (domain.PurchaseSummary, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

// OrdersRepository contract interface
type OrdersRepository interface {
	GlobalPopularity(ctx context.Context) ([]domain.ProductPopularity, error)
	SimilarCustomerProducts(ctx context.Context, customerID uint, categories []string, exclude []uint, limit int) ([]domain.SimilarProduct, error)
}

// Provider is the external completion client. It performs one request per
// call; the retry policy lives here in the engine.
type Provider interface {
	IsConfigured() bool
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// similarProductLimit caps how many collaborative rows enrich the prompt.
const similarProductLimit = 10

type RecommendService struct {
	historySvc  HistoryService
	productRepo ProductRepository
	ordersRepo  OrdersRepository
	provider    Provider
	timeout     time.Duration
}

func NewRecommendService(
	historySvc HistoryService,
	productRepo ProductRepository,
	ordersRepo OrdersRepository,
	provider Provider,
	timeout time.Duration,
) *RecommendService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &RecommendService{
		historySvc:  historySvc,
		productRepo: productRepo,
		ordersRepo:  ordersRepo,
		provider:    provider,
		timeout:     timeout,
	}
}

// Recommend assembles the customer's purchase summary plus what similar
// customers bought, asks the completion provider for suggestions and falls
// back to the deterministic heuristic whenever the provider is unavailable,
// misconfigured or returns unusable output. Products the customer already
// bought are never recommended. Provider failures never escape this method;
// only unknown customers and storage errors do.
func (s *RecommendService) Recommend(ctx context.Context, customerID uint, maxResults int, userContext string) (domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("context error: %w", err)
	}

	if maxResults < 1 {
		maxResults = 1
	}

	summary, err := s.historySvc.Summarize(ctx, customerID)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load catalog for recommendations", err)
		return domain.RecommendationResult{}, err
	}

	popularity, err := s.ordersRepo.GlobalPopularity(ctx)
	if err != nil {
		logger.Error("Failed to load popularity for recommendations", err)
		return domain.RecommendationResult{}, err
	}

	// the customer's own purchases are never candidates
	owned := make(map[uint]bool, len(summary.ProductIDs))
	for _, id := range summary.ProductIDs {
		owned[id] = true
	}

	candidates := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !owned[p.ID] {
			candidates = append(candidates, p)
		}
	}

	// no purchase history: global popularity answers immediately,
	// the provider is never called
	if summary.TotalOrders == 0 {
		return s.finish(customerID, s.fallbackRecommendations(summary, candidates, popularity, maxResults), true), nil
	}

	similar, err := s.ordersRepo.SimilarCustomerProducts(ctx, customerID, categoryNames(summary), summary.ProductIDs, similarProductLimit)
	if err != nil {
		logger.Error("Failed to load similar customer purchases", err)
		return domain.RecommendationResult{}, err
	}

	if s.provider != nil && s.provider.IsConfigured() {
		recs, err := s.askProvider(ctx, summary, candidates, similar, maxResults, userContext)
		if err == nil && len(recs) > 0 {
			return s.finish(customerID, recs, false), nil
		}
		if err != nil {
			logger.Warn("provider recommendation failed, using fallback",
				"customer_id", customerID,
				"error", err,
			)
		}
	}

	return s.finish(customerID, s.fallbackRecommendations(summary, candidates, popularity, maxResults), true), nil
}

func categoryNames(summary domain.PurchaseSummary) []string {
	names := make([]string, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		names = append(names, c.Category)
	}
	return names
}

func (s *RecommendService) finish(customerID uint, recs []domain.Recommendation, fallback bool) domain.RecommendationResult {
	if fallback {
		metrics.RecommendFallbacks.Inc()
	}

	return domain.RecommendationResult{
		CustomerID:      customerID,
		Recommendations: recs,
		Total:           len(recs),
		GeneratedAt:     time.Now().UTC(),
	}
}

// askProvider builds the prompt, calls the provider with a bounded timeout
// and at most one retry on transient failure, then parses the reply against
// the candidate set. Candidates already exclude the customer's own
// purchases, so a reply suggesting one of those is dropped like any other
// unknown id.
func (s *RecommendService) askProvider(
	ctx context.Context,
	summary domain.PurchaseSummary,
	candidates []domain.Product,
	similar []domain.SimilarProduct,
	maxResults int,
	userContext string,
) ([]domain.Recommendation, error) {

	userPrompt := buildUserPrompt(summary, candidates, similar, maxResults, userContext)

	content, err := s.completeOnce(ctx, userPrompt)
	if err != nil {
		var provErr *domain.ProviderError
		if !errors.As(err, &provErr) || !provErr.Transient {
			return nil, err
		}

		content, err = s.completeOnce(ctx, userPrompt)
		if err != nil {
			return nil, err
		}
	}

	suggestions, err := parseSuggestions(content)
	if err != nil {
		return nil, err
	}

	known := make(map[uint]bool, len(candidates))
	for _, p := range candidates {
		known[p.ID] = true
	}

	recs := make([]domain.Recommendation, 0, len(suggestions))
	picked := make(map[uint]bool)
	for _, sg := range suggestions {
		// drop hallucinated ids, de-duplicate keeping first occurrence
		if !known[sg.ProductID] || picked[sg.ProductID] {
			continue
		}
		picked[sg.ProductID] = true

		rationale := sg.Reason
		if rationale == "" {
			rationale = "Based on your purchase history"
		}

		recs = append(recs, domain.Recommendation{
			ProductID: sg.ProductID,
			Rationale: rationale,
			Source:    domain.RecommendationSourceAI,
		})

		if len(recs) == maxResults {
			break
		}
	}

	return recs, nil
}

func (s *RecommendService) completeOnce(ctx context.Context, userPrompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	content, err := s.provider.Complete(callCtx, systemPrompt, userPrompt)
	if err != nil {
		outcome := "permanent"
		var provErr *domain.ProviderError
		if errors.As(err, &provErr) && provErr.Transient {
			outcome = "transient"
		}
		metrics.ProviderCalls.WithLabelValues(outcome).Inc()
		return "", err
	}

	metrics.ProviderCalls.WithLabelValues("ok").Inc()
	return content, nil
}

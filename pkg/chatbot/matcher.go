package chatbot

import (
	"sort"
	"strings"
)

// Product scoring table. Tunable constants carried over verbatim from the
// original engine; they have no derivation beyond observed behavior.
const (
	scoreNameExact         = 100
	scoreNameContainsQuery = 50
	scoreQueryContainsName = 30
	scoreCategoryMatch     = 20
	scoreKeywordMatch      = 15
	scoreDescriptionMatch  = 10
	scoreHighRating        = 5
	scorePopularProduct    = 3

	highRatingStars    = 4.5
	popularReviewCount = 100

	DefaultTopN = 5
)

type Matcher struct {
	products []Product
	index    map[string][]int
}

func NewMatcher(products []Product) *Matcher {
	m := &Matcher{}
	m.rebuild(products)
	return m
}

// Rebuild replaces the snapshot wholesale and rebuilds the token index in
// full. The index is never patched incrementally.
func (m *Matcher) Rebuild(products []Product) {
	m.rebuild(products)
}

func (m *Matcher) rebuild(products []Product) {
	copied := make([]Product, len(products))
	copy(copied, products)

	index := make(map[string][]int)
	add := func(token string, pos int) {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			return
		}
		for _, existing := range index[token] {
			if existing == pos {
				return
			}
		}
		index[token] = append(index[token], pos)
	}

	for pos, product := range copied {
		for _, word := range strings.Fields(product.Name) {
			add(word, pos)
		}
		if product.Category != "" {
			add(product.Category, pos)
		}
		for _, keyword := range product.Keywords {
			add(keyword, pos)
		}
	}

	m.products = copied
	m.index = index
}

func (m *Matcher) Products() []Product {
	return m.products
}

// Lookup returns the products indexed under a single normalized token, in
// snapshot order.
func (m *Matcher) Lookup(token string) []Product {
	positions := m.index[strings.ToLower(strings.TrimSpace(token))]
	if len(positions) == 0 {
		return nil
	}
	products := make([]Product, 0, len(positions))
	for _, pos := range positions {
		products = append(products, m.products[pos])
	}
	return products
}

// FindMatches scores every product in the snapshot holistically against the
// full query and returns the topN best, sorted by score descending. Ties
// keep snapshot order. An empty snapshot yields an empty result.
func (m *Matcher) FindMatches(query string, topN int) []ProductMatch {
	if topN <= 0 {
		topN = DefaultTopN
	}

	matches := make([]ProductMatch, 0, topN)
	loweredQuery := strings.ToLower(strings.TrimSpace(query))
	if loweredQuery == "" || len(m.products) == 0 {
		return matches
	}

	for _, product := range m.products {
		if score := scoreProduct(product, loweredQuery); score > 0 {
			matches = append(matches, ProductMatch{Product: product, MatchScore: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}

func scoreProduct(product Product, loweredQuery string) int {
	score := 0
	name := strings.ToLower(product.Name)

	switch {
	case name == loweredQuery:
		score += scoreNameExact
	case strings.Contains(name, loweredQuery):
		score += scoreNameContainsQuery
	case strings.Contains(loweredQuery, name):
		score += scoreQueryContainsName
	}

	if product.Category != "" {
		category := strings.ToLower(product.Category)
		if strings.Contains(category, loweredQuery) || strings.Contains(loweredQuery, category) {
			score += scoreCategoryMatch
		}
	}

	for _, keyword := range product.Keywords {
		lowered := strings.ToLower(keyword)
		if lowered == "" {
			continue
		}
		if strings.Contains(lowered, loweredQuery) || strings.Contains(loweredQuery, lowered) {
			score += scoreKeywordMatch
		}
	}

	if product.Description != "" && strings.Contains(strings.ToLower(product.Description), loweredQuery) {
		score += scoreDescriptionMatch
	}

	// Rating and popularity only rank products that already matched
	// lexically; they never turn a non-match into a match.
	if score > 0 && product.Rating != nil {
		if product.Rating.Stars >= highRatingStars {
			score += scoreHighRating
		}
		if product.Rating.Count > popularReviewCount {
			score += scorePopularProduct
		}
	}

	return score
}

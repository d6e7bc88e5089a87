package chatbot

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"StorefrontGolang/pkg/currency"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	// Turns below this confidence never feed back into the pattern set.
	trainConfidenceThreshold = 0.7

	enrichmentTrigger = "recommendations"
	enrichmentTopN    = 3
	enrichmentCTA     = "Tap a product to see details or add it to your cart."

	fallbackApology = "I'm sorry, something went wrong on my end. Could you try asking that again?"
)

// Model composes the classifier, matcher, and responder into a single
// conversation orchestrator. One instance serves one conversation at a
// time; the internal mutex serializes Predict against the snapshot and
// pattern rebuilds so a shared instance stays safe.
type Model struct {
	mu        sync.Mutex
	log       *logrus.Logger
	source    CorpusSource
	formatter currency.IFormatter
	rng       RandSource

	storeProducts []Product

	loaded     bool
	corpus     *TrainingCorpus
	classifier *Classifier
	matcher    *Matcher
	responder  *Responder
	history    []ConversationTurn
}

func NewModel(
	log *logrus.Logger,
	source CorpusSource,
	formatter currency.IFormatter,
	rng RandSource,
	storeProducts []Product,
) IModel {
	return &Model{
		log:           log,
		source:        source,
		formatter:     formatter,
		rng:           rng,
		storeProducts: storeProducts,
	}
}

// Predict runs the full pipeline for one utterance. It never returns an
// error: every internal failure collapses into the fixed apology response.
func (m *Model) Predict(ctx context.Context, message string) *Prediction {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		m.loadCorpus(ctx)
	}

	return m.predictLocked(message)
}

func (m *Model) predictLocked(message string) (prediction *Prediction) {
	defer func() {
		if r := recover(); r != nil {
			m.log.WithFields(logrus.Fields{
				"panic": fmt.Sprint(r),
			}).Error("Prediction failed, returning fallback response")
			prediction = degradedPrediction()
		}
	}()

	if m.classifier == nil {
		return degradedPrediction()
	}

	classification := m.classifier.Classify(message)
	template := m.responder.Generate(classification.Intent, m.classifier.Intents())

	products := []ProductMatch{}
	if classification.Intent == TagProductSearch && m.matcher != nil {
		products = m.matcher.FindMatches(message, DefaultTopN)
	}

	response := m.enrichResponse(template, message, products)

	m.history = append(m.history, ConversationTurn{
		UserMessage: message,
		Intent:      classification.Intent,
		Confidence:  classification.Confidence,
		Response:    response,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})

	return &Prediction{
		Response:    response,
		Intent:      classification.Intent,
		Confidence:  classification.Confidence,
		Products:    products,
		Suggestions: suggestionsFor(classification.Intent),
	}
}

// loadCorpus runs at most once per model. A source failure degrades the
// model instead of propagating: loaded flips to true with no classifier,
// and every later Predict takes the fallback branch.
func (m *Model) loadCorpus(ctx context.Context) {
	base, err := m.source.Load(ctx)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Training corpus unavailable, chatbot running in degraded mode")
		m.loaded = true
		return
	}

	merged, err := CombineTrainingData(base, m.storeProducts)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Training corpus rejected, chatbot running in degraded mode")
		m.loaded = true
		return
	}

	m.corpus = merged
	m.classifier = NewClassifier(merged.Intents)
	m.matcher = NewMatcher(merged.Products)
	m.responder = NewResponder(m.rng)
	m.loaded = true

	m.log.WithFields(logrus.Fields{
		"intents":  len(merged.Intents),
		"products": len(merged.Products),
	}).Info("Chatbot model loaded")
}

func (m *Model) enrichResponse(template, message string, products []ProductMatch) string {
	if len(products) == 0 || !strings.Contains(template, enrichmentTrigger) {
		return template
	}

	loweredMessage := strings.ToLower(message)

	var b strings.Builder
	b.WriteString(template)
	b.WriteString("\n")

	top := products
	if len(top) > enrichmentTopN {
		top = top[:enrichmentTopN]
	}

	for _, match := range top {
		marker := "✨"
		if strings.Contains(loweredMessage, strings.ToLower(match.Name)) {
			marker = "🎯"
		}

		b.WriteString("\n")
		b.WriteString(marker)
		b.WriteString(" ")
		b.WriteString(match.Name)
		b.WriteString(" — ")
		b.WriteString(m.formatter.FormatCents(match.PriceCents))
		if match.Category != "" {
			b.WriteString(" (")
			b.WriteString(match.Category)
			b.WriteString(")")
		}
		if match.Rating != nil {
			b.WriteString(fmt.Sprintf(" ⭐ %.1f (%d reviews)", match.Rating.Stars, match.Rating.Count))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(enrichmentCTA)
	return b.String()
}

// UpdateStoreProducts replaces the matcher's snapshot wholesale and
// rebuilds the index. A nil or empty list, or a matcher that was never
// built, makes it a no-op.
func (m *Model) UpdateStoreProducts(products []Product) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.matcher == nil || len(products) == 0 {
		return
	}
	m.matcher.Rebuild(products)

	m.log.WithFields(logrus.Fields{
		"products": len(products),
	}).Info("Chatbot product snapshot replaced")
}

// TrainModel appends the user message of every sufficiently confident turn
// as a new literal pattern for its intent, then rebuilds the classifier.
// Duplicates are skipped, so replaying the same turns is idempotent.
// Returns the number of patterns added.
func (m *Model) TrainModel(turns []ConversationTurn) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.corpus == nil {
		return 0
	}

	added := 0
	for _, turn := range turns {
		if turn.Confidence <= trainConfidenceThreshold {
			continue
		}
		message := strings.ToLower(strings.TrimSpace(turn.UserMessage))
		if message == "" {
			continue
		}
		if m.appendPattern(turn.Intent, message) {
			added++
		}
	}

	if added > 0 {
		m.classifier.UpdatePatterns(m.corpus.Intents)
		m.log.WithFields(logrus.Fields{
			"patterns_added": added,
		}).Info("Chatbot patterns reinforced")
	}
	return added
}

func (m *Model) appendPattern(tag, pattern string) bool {
	for i := range m.corpus.Intents {
		if m.corpus.Intents[i].Tag != tag {
			continue
		}
		for _, existing := range m.corpus.Intents[i].Patterns {
			if existing == pattern {
				return false
			}
		}
		m.corpus.Intents[i].Patterns = append(m.corpus.Intents[i].Patterns, pattern)
		return true
	}
	return false
}

// ExportTrainingData snapshots the merged corpus and conversation history
// for external logging or backup. There is no import path back.
func (m *Model) ExportTrainingData() *TrainingExport {
	m.mu.Lock()
	defer m.mu.Unlock()

	export := &TrainingExport{
		Intents:             []Intent{},
		Products:            []Product{},
		ConversationHistory: append([]ConversationTurn{}, m.history...),
		ExportedAt:          time.Now().UTC().Format(time.RFC3339),
	}

	if m.corpus != nil {
		export.Intents = make([]Intent, 0, len(m.corpus.Intents))
		for _, intent := range m.corpus.Intents {
			export.Intents = append(export.Intents, Intent{
				Tag:       intent.Tag,
				Patterns:  append([]string(nil), intent.Patterns...),
				Responses: append([]string(nil), intent.Responses...),
			})
		}
		export.Products = append(export.Products, m.corpus.Products...)
	}

	return export
}

// LookupProducts resolves a single index token to the products carrying it.
func (m *Model) LookupProducts(token string) []Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.matcher == nil {
		return nil
	}
	return m.matcher.Lookup(token)
}

func degradedPrediction() *Prediction {
	return &Prediction{
		Response:    fallbackApology,
		Intent:      "unknown",
		Confidence:  0,
		Products:    []ProductMatch{},
		Suggestions: []string{},
	}
}

func suggestionsFor(tag string) []string {
	switch tag {
	case TagProductSearch:
		return []string{"Add to cart", "Compare similar products", "Filter by price"}
	case TagCustomerService:
		return []string{"Talk to a support agent", "Track my order", "View return policy"}
	case TagNavigation:
		return []string{"Browse categories", "View today's deals", "Go to my orders"}
	default:
		return []string{}
	}
}

package chatbot

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

type fakeSource struct {
	corpus *TrainingCorpus
	err    error
	calls  int
}

func (f *fakeSource) Load(_ context.Context) (*TrainingCorpus, error) {
	f.calls++
	return f.corpus, f.err
}

type fakeFormatter struct{}

func (fakeFormatter) FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&strings.Builder{})
	return logger
}

func baseCorpus() *TrainingCorpus {
	return &TrainingCorpus{
		Intents: []Intent{
			{
				Tag:       TagGreeting,
				Patterns:  []string{"hello", "hi"},
				Responses: []string{"Hello! How can I help?"},
			},
			{
				Tag:      TagProductSearch,
				Patterns: []string{"i am looking for", "show me"},
			},
		},
	}
}

func searchableProducts() []Product {
	return []Product{
		{
			ID:         "p1",
			Name:       "Wireless Earbuds",
			Category:   "electronics",
			Keywords:   []string{"earbuds"},
			PriceCents: 7999,
		},
		{
			ID:         "p2",
			Name:       "Running Shoes",
			Category:   "sports",
			Keywords:   []string{"shoes"},
			PriceCents: 12999,
		},
	}
}

func newTestModel(source CorpusSource, products []Product) IModel {
	return NewModel(testLogger(), source, fakeFormatter{}, fixedRand{0}, products)
}

func TestPredictGreeting(t *testing.T) {
	source := &fakeSource{corpus: baseCorpus()}
	model := newTestModel(source, nil)

	prediction := model.Predict(context.Background(), "hello")

	require.NotNil(t, prediction)
	assert.Equal(t, TagGreeting, prediction.Intent)
	assert.Greater(t, prediction.Confidence, 0.0)
	assert.NotEmpty(t, prediction.Response)
	assert.Empty(t, prediction.Products)
	assert.Empty(t, prediction.Suggestions)
}

func TestPredictLoadsCorpusOnce(t *testing.T) {
	source := &fakeSource{corpus: baseCorpus()}
	model := newTestModel(source, nil)

	model.Predict(context.Background(), "hello")
	model.Predict(context.Background(), "hi")

	assert.Equal(t, 1, source.calls)
}

func TestPredictProductSearchEnrichment(t *testing.T) {
	source := &fakeSource{corpus: baseCorpus()}
	model := newTestModel(source, searchableProducts())

	prediction := model.Predict(context.Background(), "show me wireless earbuds")

	require.Equal(t, TagProductSearch, prediction.Intent)
	require.NotEmpty(t, prediction.Products)
	assert.Equal(t, "p1", prediction.Products[0].ID)

	// The message names the product, so it is highlighted rather than
	// generically suggested, and the call to action closes the reply.
	assert.Contains(t, prediction.Response, "recommendations")
	assert.Contains(t, prediction.Response, "🎯 Wireless Earbuds — $79.99 (electronics)")
	assert.True(t, strings.HasSuffix(prediction.Response, enrichmentCTA))

	assert.Equal(t, []string{"Add to cart", "Compare similar products", "Filter by price"}, prediction.Suggestions)
}

func TestPredictSeesConstructionSnapshotWithoutRefresh(t *testing.T) {
	source := &fakeSource{corpus: baseCorpus()}
	model := newTestModel(source, searchableProducts())

	// No UpdateStoreProducts call: the construction-time snapshot alone
	// must back the very first product search.
	prediction := model.Predict(context.Background(), "show me wireless earbuds")
	require.Equal(t, TagProductSearch, prediction.Intent)
	assert.NotEmpty(t, prediction.Products)
}

func TestPredictEnrichmentCapsAtTopThree(t *testing.T) {
	products := make([]Product, 0, 6)
	for i := 0; i < 6; i++ {
		products = append(products, Product{
			ID:         fmt.Sprintf("p%d", i),
			Name:       "Travel Mug",
			PriceCents: 1000,
		})
	}
	source := &fakeSource{corpus: baseCorpus()}
	model := newTestModel(source, products)

	prediction := model.Predict(context.Background(), "show me a travel mug")

	require.Equal(t, TagProductSearch, prediction.Intent)
	assert.Len(t, prediction.Products, DefaultTopN)
	assert.Equal(t, enrichmentTopN, strings.Count(prediction.Response, "🎯"))
}

func TestPredictDegradedOnSourceFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("bucket unavailable")}
	model := newTestModel(source, nil)

	for i := 0; i < 2; i++ {
		prediction := model.Predict(context.Background(), "hello")
		require.NotNil(t, prediction)
		assert.Equal(t, fallbackApology, prediction.Response)
		assert.Equal(t, "unknown", prediction.Intent)
		assert.Zero(t, prediction.Confidence)
		assert.NotNil(t, prediction.Products)
		assert.Empty(t, prediction.Products)
		assert.NotNil(t, prediction.Suggestions)
		assert.Empty(t, prediction.Suggestions)
	}

	// Degraded mode is sticky; the source is not retried per message.
	assert.Equal(t, 1, source.calls)
}

func TestPredictDegradedOnMalformedCorpus(t *testing.T) {
	source := &fakeSource{corpus: &TrainingCorpus{
		Intents: []Intent{{Tag: TagGreeting}},
	}}
	model := newTestModel(source, nil)

	prediction := model.Predict(context.Background(), "hello")
	assert.Equal(t, fallbackApology, prediction.Response)
}

func TestPredictIsTotal(t *testing.T) {
	source := &fakeSource{corpus: baseCorpus()}
	model := newTestModel(source, searchableProducts())

	for _, message := range []string{
		"",
		"   ",
		strings.Repeat("very long message ", 500),
		"héllo wörld 你好 🙂",
	} {
		prediction := model.Predict(context.Background(), message)
		require.NotNil(t, prediction)
		assert.NotEmpty(t, prediction.Response)
	}
}

func TestTrainModelBeforeLoadIsNoOp(t *testing.T) {
	source := &fakeSource{corpus: baseCorpus()}
	model := newTestModel(source, nil)

	added := model.TrainModel([]ConversationTurn{{
		UserMessage: "i need new sneakers",
		Intent:      TagProductSearch,
		Confidence:  0.9,
	}})
	assert.Zero(t, added)
}

func TestTrainModelReinforcesPatterns(t *testing.T) {
	source := &fakeSource{corpus: baseCorpus()}
	model := newTestModel(source, nil)
	model.Predict(context.Background(), "hello")

	before := model.Predict(context.Background(), "i need new sneakers")
	require.NotEqual(t, TagProductSearch, before.Intent)

	turns := []ConversationTurn{
		{UserMessage: "I Need New Sneakers", Intent: TagProductSearch, Confidence: 0.9},
		{UserMessage: "below threshold", Intent: TagProductSearch, Confidence: 0.7},
		{UserMessage: "   ", Intent: TagProductSearch, Confidence: 0.9},
		{UserMessage: "no such tag", Intent: "made_up", Confidence: 0.9},
	}

	added := model.TrainModel(turns)
	assert.Equal(t, 1, added)

	// Replaying the same turns is idempotent.
	assert.Zero(t, model.TrainModel(turns))

	after := model.Predict(context.Background(), "i need new sneakers")
	assert.Equal(t, TagProductSearch, after.Intent)
}

func TestUpdateStoreProductsLaws(t *testing.T) {
	source := &fakeSource{corpus: baseCorpus()}
	model := newTestModel(source, searchableProducts())

	// Before the first Predict there is no matcher to rebuild.
	model.UpdateStoreProducts([]Product{{ID: "x", Name: "Thing"}})
	assert.Nil(t, model.LookupProducts("thing"))

	model.Predict(context.Background(), "hello")
	require.NotEmpty(t, model.LookupProducts("earbuds"))

	// An empty snapshot is ignored rather than wiping the catalog.
	model.UpdateStoreProducts(nil)
	assert.NotEmpty(t, model.LookupProducts("earbuds"))

	model.UpdateStoreProducts([]Product{{ID: "n1", Name: "Standing Desk", Keywords: []string{"desk"}}})
	assert.Empty(t, model.LookupProducts("earbuds"))
	assert.NotEmpty(t, model.LookupProducts("desk"))
}

func TestExportTrainingDataDegraded(t *testing.T) {
	source := &fakeSource{err: errors.New("bucket unavailable")}
	model := newTestModel(source, nil)
	model.Predict(context.Background(), "hello")

	export := model.ExportTrainingData()
	require.NotNil(t, export)
	assert.NotNil(t, export.Intents)
	assert.Empty(t, export.Intents)
	assert.NotNil(t, export.Products)
	assert.Empty(t, export.Products)

	_, err := time.Parse(time.RFC3339, export.ExportedAt)
	assert.NoError(t, err)
}

func TestExportTrainingDataSnapshotsHistory(t *testing.T) {
	source := &fakeSource{corpus: baseCorpus()}
	model := newTestModel(source, searchableProducts())

	model.Predict(context.Background(), "hello")
	model.Predict(context.Background(), "show me wireless earbuds")

	export := model.ExportTrainingData()
	require.Len(t, export.ConversationHistory, 2)
	assert.Equal(t, "hello", export.ConversationHistory[0].UserMessage)
	assert.Equal(t, TagGreeting, export.ConversationHistory[0].Intent)
	assert.NotEmpty(t, export.Intents)
	assert.Len(t, export.Products, 2)

	// The export is an owned copy.
	export.Intents[0].Patterns[0] = "mutated"
	fresh := model.ExportTrainingData()
	assert.NotEqual(t, "mutated", fresh.Intents[0].Patterns[0])
}

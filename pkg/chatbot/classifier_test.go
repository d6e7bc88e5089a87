package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productSearchIntent() Intent {
	return Intent{
		Tag: TagProductSearch,
		Patterns: []string{
			"looking for", "show me", "do you have", "i want to buy",
			"search for", "find me", "browse", "deals",
		},
		Responses: []string{"Let me check the catalog."},
	}
}

func TestClassifyMatchTiers(t *testing.T) {
	classifier := NewClassifier([]Intent{productSearchIntent()})

	tests := []struct {
		name      string
		utterance string
		score     float64
	}{
		{name: "exact match", utterance: "looking for", score: 3},
		{name: "phrase match", utterance: "i am looking for shoes", score: 2},
		{name: "substring match", utterance: "bookinglooking forever", score: 1},
		{name: "no match", utterance: "completely unrelated", score: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Classify(tt.utterance)
			assert.Equal(t, tt.score, result.Scores[TagProductSearch])
		})
	}
}

func TestClassifyConfidenceFormula(t *testing.T) {
	// 8 patterns, so confidence divides by max(0.5*8, 1) = 4.
	classifier := NewClassifier([]Intent{productSearchIntent()})

	result := classifier.Classify("any deals today")
	require.Equal(t, TagProductSearch, result.Intent)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)

	// Two phrase hits stack to 4 and the ratio clamps at 1.
	result = classifier.Classify("show me deals")
	require.Equal(t, TagProductSearch, result.Intent)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestClassifyConfidenceTinyCorpus(t *testing.T) {
	// One pattern makes the denominator floor at 1 instead of 0.5.
	classifier := NewClassifier([]Intent{{
		Tag:      TagGreeting,
		Patterns: []string{"hello"},
	}})

	result := classifier.Classify("well hello friend")
	require.Equal(t, TagGreeting, result.Intent)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestClassifyNoSignalFallsBackToGeneral(t *testing.T) {
	classifier := NewClassifier([]Intent{productSearchIntent()})

	result := classifier.Classify("zzz qqq")
	assert.Equal(t, TagGeneral, result.Intent)
	assert.Zero(t, result.Confidence)
}

func TestClassifyTieKeepsFirstIntent(t *testing.T) {
	classifier := NewClassifier([]Intent{
		{Tag: "alpha", Patterns: []string{"red shoes"}},
		{Tag: "beta", Patterns: []string{"red shoes"}},
	})

	result := classifier.Classify("red shoes")
	assert.Equal(t, "alpha", result.Intent)
	assert.Equal(t, result.Scores["alpha"], result.Scores["beta"])
}

func TestClassifyNavigationCueBonus(t *testing.T) {
	classifier := NewClassifier([]Intent{{
		Tag:      TagGreeting,
		Patterns: []string{"hello"},
	}})

	result := classifier.Classify("take me to my orders")
	assert.Equal(t, TagNavigation, result.Intent)
	assert.Equal(t, 2.0, result.Scores[TagNavigation])
}

func TestClassifyCueBonusAppliedOncePerSet(t *testing.T) {
	classifier := NewClassifier([]Intent{{
		Tag:      TagGreeting,
		Patterns: []string{"hello"},
	}})

	// Two navigation cues in the same utterance still add a single bonus.
	result := classifier.Classify("go to the page and visit the deals")
	assert.Equal(t, 2.0, result.Scores[TagNavigation])
}

func TestClassifyCustomerServiceCue(t *testing.T) {
	classifier := NewClassifier([]Intent{{
		Tag:      TagGreeting,
		Patterns: []string{"hello"},
	}})

	result := classifier.Classify("i need to contact someone about my order")
	assert.Equal(t, TagCustomerService, result.Intent)
}

func TestClassifyCorpusIntentBeatsCueBonusOnTie(t *testing.T) {
	// A corpus-defined navigation intent is scored in corpus order, so the
	// bonus accrues to the same tag rather than a separate late entry.
	classifier := NewClassifier([]Intent{{
		Tag:      TagNavigation,
		Patterns: []string{"take me to checkout"},
	}})

	result := classifier.Classify("take me to checkout")
	assert.Equal(t, TagNavigation, result.Intent)
	assert.Equal(t, 5.0, result.Scores[TagNavigation])
}

func TestUpdatePatternsCopiesInput(t *testing.T) {
	intents := []Intent{{
		Tag:      TagGreeting,
		Patterns: []string{"hello"},
	}}
	classifier := NewClassifier(intents)

	intents[0].Patterns[0] = "mutated"

	result := classifier.Classify("hello")
	assert.Equal(t, TagGreeting, result.Intent)
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	classifier := NewClassifier([]Intent{productSearchIntent()})

	result := classifier.Classify("SHOW ME your best laptops")
	assert.Equal(t, TagProductSearch, result.Intent)
}

package chatbot

import (
	"strings"
)

// Match tier weights and bonuses. Tunable constants carried over from the
// original scoring table; changing them changes classification behavior.
const (
	exactMatchWeight     = 3.0
	phraseMatchWeight    = 2.0
	substringMatchWeight = 1.0
	intentCueBonus       = 2.0
	defaultPatternWeight = 1.0
)

var (
	navigationCues      = []string{"go to", "take me", "visit", "open"}
	customerServiceCues = []string{"contact", "customer care", "support"}
)

type Classifier struct {
	intents       []Intent
	patternWeight float64
	totalPatterns int
}

func NewClassifier(intents []Intent) *Classifier {
	c := &Classifier{patternWeight: defaultPatternWeight}
	c.UpdatePatterns(intents)
	return c
}

// UpdatePatterns is the only mutation path into the classifier. Derived
// state is rebuilt from scratch so it can never diverge from the corpus.
func (c *Classifier) UpdatePatterns(intents []Intent) {
	copied := make([]Intent, 0, len(intents))
	total := 0
	for _, intent := range intents {
		patterns := make([]string, len(intent.Patterns))
		copy(patterns, intent.Patterns)
		responses := make([]string, len(intent.Responses))
		copy(responses, intent.Responses)

		copied = append(copied, Intent{
			Tag:       intent.Tag,
			Patterns:  patterns,
			Responses: responses,
		})
		total += len(patterns)
	}

	c.intents = copied
	c.totalPatterns = total
}

func (c *Classifier) Intents() []Intent {
	return c.intents
}

func (c *Classifier) Classify(utterance string) ClassificationResult {
	lowered := strings.ToLower(utterance)
	scores := make(map[string]float64, len(c.intents))

	for _, intent := range c.intents {
		for _, pattern := range intent.Patterns {
			scores[intent.Tag] += c.scorePattern(lowered, pattern)
		}
	}

	for _, cue := range navigationCues {
		if strings.Contains(lowered, cue) {
			scores[TagNavigation] += intentCueBonus
			break
		}
	}
	for _, cue := range customerServiceCues {
		if strings.Contains(lowered, cue) {
			scores[TagCustomerService] += intentCueBonus
			break
		}
	}

	best, bestScore := c.selectBest(scores)
	if bestScore <= 0 {
		return ClassificationResult{Intent: TagGeneral, Confidence: 0, Scores: scores}
	}

	denominator := 0.5 * float64(c.totalPatterns)
	if denominator < 1 {
		denominator = 1
	}
	confidence := bestScore / denominator
	if confidence > 1 {
		confidence = 1
	}

	return ClassificationResult{Intent: best, Confidence: confidence, Scores: scores}
}

// scorePattern credits exactly one tier per pattern, strongest first.
func (c *Classifier) scorePattern(utterance, pattern string) float64 {
	if pattern == "" {
		return 0
	}
	switch {
	case utterance == pattern:
		return c.patternWeight * exactMatchWeight
	case containsPhrase(utterance, pattern):
		return c.patternWeight * phraseMatchWeight
	case strings.Contains(utterance, pattern):
		return c.patternWeight * substringMatchWeight
	default:
		return 0
	}
}

// selectBest walks intents in corpus order so that ties deterministically
// keep the first tag scored. The cue tags may carry bonus-only scores
// without a corpus entry; they are considered after the corpus intents in
// a fixed order.
func (c *Classifier) selectBest(scores map[string]float64) (string, float64) {
	best := ""
	bestScore := 0.0
	seen := make(map[string]bool, len(c.intents))

	for _, intent := range c.intents {
		seen[intent.Tag] = true
		if score := scores[intent.Tag]; score > bestScore {
			best = intent.Tag
			bestScore = score
		}
	}

	for _, tag := range []string{TagNavigation, TagCustomerService} {
		if seen[tag] {
			continue
		}
		if score := scores[tag]; score > bestScore {
			best = tag
			bestScore = score
		}
	}

	return best, bestScore
}

// containsPhrase reports whether pattern occurs as a whole space-delimited
// word or phrase, bounded by spaces or the ends of the utterance.
func containsPhrase(utterance, pattern string) bool {
	return strings.Contains(" "+utterance+" ", " "+pattern+" ")
}

package chatbot

import (
	"errors"
	"fmt"
)

var ErrMalformedIntent = errors.New("intent has no patterns")

// Extra patterns and reply templates stitched into the merged corpus for
// the storefront. Appended to the base corpus entries, never replacing
// them; intents missing from the base corpus are created.
var storeIntentPatterns = map[string][]string{
	TagGreeting: {
		"hi there", "hello there", "good morning", "good evening",
	},
	TagProductSearch: {
		"show me products", "i am looking for", "do you have", "i want to buy",
		"search for", "find me",
	},
	TagNavigation: {
		"go to my cart", "take me to checkout", "open my orders", "show my wishlist",
	},
	TagCategoryBrowse: {
		"browse categories", "what categories do you have", "show me electronics",
		"show me clothing",
	},
}

var storeIntentResponses = map[string][]string{
	TagGreeting: {
		"Welcome back! Looking for anything in particular today?",
	},
	TagProductSearch: {
		"Here are some recommendations based on what you asked for:",
	},
	TagNavigation: {
		"On it, taking you there now.",
	},
	TagCategoryBrowse: {
		"We have plenty to browse. Here are our categories:",
	},
}

// CombineTrainingData deep-merges the base training corpus with the live
// catalog snapshot. The result is an owned copy: mutating it never touches
// the base corpus. Products are deduplicated by id with base corpus entries
// winning; store products with unseen ids are appended in order.
func CombineTrainingData(base *TrainingCorpus, storeProducts []Product) (*TrainingCorpus, error) {
	if base == nil {
		base = &TrainingCorpus{}
	}

	merged := &TrainingCorpus{
		Intents:  make([]Intent, 0, len(base.Intents)),
		Products: make([]Product, 0, len(base.Products)+len(storeProducts)),
		Metadata: base.Metadata,
	}

	for _, intent := range base.Intents {
		if intent.Tag == "" || len(intent.Patterns) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedIntent, intent.Tag)
		}
		patterns := make([]string, len(intent.Patterns))
		copy(patterns, intent.Patterns)
		responses := make([]string, len(intent.Responses))
		copy(responses, intent.Responses)
		merged.Intents = append(merged.Intents, Intent{
			Tag:       intent.Tag,
			Patterns:  patterns,
			Responses: responses,
		})
	}

	seen := make(map[string]bool, len(base.Products))
	for _, product := range base.Products {
		if product.ID != "" {
			seen[product.ID] = true
		}
		merged.Products = append(merged.Products, product)
	}
	for _, product := range storeProducts {
		if product.ID == "" || seen[product.ID] {
			continue
		}
		seen[product.ID] = true
		merged.Products = append(merged.Products, product)
	}

	for _, tag := range []string{TagGreeting, TagProductSearch, TagNavigation, TagCategoryBrowse} {
		appendStoreIntent(merged, tag)
	}

	return merged, nil
}

func appendStoreIntent(corpus *TrainingCorpus, tag string) {
	for i := range corpus.Intents {
		if corpus.Intents[i].Tag == tag {
			corpus.Intents[i].Patterns = appendMissing(corpus.Intents[i].Patterns, storeIntentPatterns[tag])
			corpus.Intents[i].Responses = append(corpus.Intents[i].Responses, storeIntentResponses[tag]...)
			return
		}
	}

	corpus.Intents = append(corpus.Intents, Intent{
		Tag:       tag,
		Patterns:  append([]string(nil), storeIntentPatterns[tag]...),
		Responses: append([]string(nil), storeIntentResponses[tag]...),
	})
}

func appendMissing(existing []string, extra []string) []string {
	for _, candidate := range extra {
		found := false
		for _, pattern := range existing {
			if pattern == candidate {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, candidate)
		}
	}
	return existing
}

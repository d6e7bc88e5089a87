package chatbot

// RandSource is the injected randomness behind template selection, so chat
// replies can be pinned in tests. Production wiring passes *rand.Rand.
type RandSource interface {
	Intn(n int) int
}

var fallbackResponses = map[string]string{
	TagGreeting:        "Hello! Welcome to our store. How can I help you today?",
	TagCustomerService: "I can connect you with our support team. What do you need help with?",
	TagProductSearch:   "Let me look through our catalog for you.",
	TagNavigation:      "Sure, I can help you find your way around the store.",
	TagPriceInquiry:    "I can check prices for you. Which product are you interested in?",
	TagGeneral:         "I'm here to help with products, orders, and anything about the store.",
}

type Responder struct {
	rng RandSource
}

func NewResponder(rng RandSource) *Responder {
	return &Responder{rng: rng}
}

// Generate picks a reply template for the classified intent: uniformly at
// random from the intent's own templates when it has any, otherwise from
// the fixed fallback table keyed by tag, with general as the last resort.
func (r *Responder) Generate(tag string, intents []Intent) string {
	for _, intent := range intents {
		if intent.Tag != tag {
			continue
		}
		if len(intent.Responses) == 0 {
			break
		}
		return intent.Responses[r.rng.Intn(len(intent.Responses))]
	}

	if response, ok := fallbackResponses[tag]; ok {
		return response
	}
	return fallbackResponses[TagGeneral]
}

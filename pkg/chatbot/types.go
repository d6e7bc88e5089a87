package chatbot

import "golang.org/x/net/context"

// Reserved intent tags the engine knows about even when the training
// corpus does not define them.
const (
	TagGeneral         = "general"
	TagGreeting        = "greeting"
	TagProductSearch   = "product_search"
	TagNavigation      = "navigation"
	TagCustomerService = "customer_service"
	TagPriceInquiry    = "price_inquiry"
	TagCategoryBrowse  = "category_browse"
)

type Intent struct {
	Tag       string   `json:"tag"`
	Patterns  []string `json:"patterns"`
	Responses []string `json:"responses"`
}

type Rating struct {
	Stars float64 `json:"stars"`
	Count int     `json:"count"`
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	PriceCents  int64    `json:"price_cents"`
	Rating      *Rating  `json:"rating,omitempty"`
}

type ProductMatch struct {
	Product
	MatchScore int `json:"match_score"`
}

type ClassificationResult struct {
	Intent     string             `json:"intent"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores"`
}

type ConversationTurn struct {
	UserMessage string  `json:"user_message"`
	Intent      string  `json:"intent"`
	Confidence  float64 `json:"confidence"`
	Response    string  `json:"response"`
	Timestamp   string  `json:"timestamp"`
}

type Prediction struct {
	Response    string         `json:"response"`
	Intent      string         `json:"intent"`
	Confidence  float64        `json:"confidence"`
	Products    []ProductMatch `json:"products"`
	Suggestions []string       `json:"suggestions"`
}

type TrainingCorpus struct {
	Intents  []Intent               `json:"intents"`
	Products []Product              `json:"products"`
	Metadata map[string]interface{} `json:"training_metadata,omitempty"`
}

type TrainingExport struct {
	Intents             []Intent           `json:"intents"`
	Products            []Product          `json:"products"`
	ConversationHistory []ConversationTurn `json:"conversation_history"`
	ExportedAt          string             `json:"exported_at"`
}

// CorpusSource loads the base training corpus from wherever it lives.
// A failed Load leaves the model in degraded mode, it never aborts it.
type CorpusSource interface {
	Load(ctx context.Context) (*TrainingCorpus, error)
}

type IModel interface {
	Predict(ctx context.Context, message string) *Prediction
	UpdateStoreProducts(products []Product)
	TrainModel(turns []ConversationTurn) int
	ExportTrainingData() *TrainingExport
	LookupProducts(token string) []Product
}

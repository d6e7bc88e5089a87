package chatService

import (
	"StorefrontGolang/internal/api/catalog"
	"StorefrontGolang/internal/api/chat"
	chatRepository "StorefrontGolang/internal/api/chat/repository"
	"StorefrontGolang/internal/entity"
	"StorefrontGolang/pkg/chatbot"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	netcontext "golang.org/x/net/context"
)

type fakeModel struct {
	prediction   *chatbot.Prediction
	predicted    []string
	trained      []chatbot.ConversationTurn
	trainAdded   int
	snapshot     []chatbot.Product
	lookupTable  map[string][]chatbot.Product
	exportResult *chatbot.TrainingExport
}

func (f *fakeModel) Predict(_ netcontext.Context, message string) *chatbot.Prediction {
	f.predicted = append(f.predicted, message)
	return f.prediction
}

func (f *fakeModel) UpdateStoreProducts(products []chatbot.Product) {
	f.snapshot = products
}

func (f *fakeModel) TrainModel(turns []chatbot.ConversationTurn) int {
	f.trained = turns
	return f.trainAdded
}

func (f *fakeModel) ExportTrainingData() *chatbot.TrainingExport {
	return f.exportResult
}

func (f *fakeModel) LookupProducts(token string) []chatbot.Product {
	return f.lookupTable[token]
}

type fakeMessages struct {
	created   []entity.ChatMessage
	createErr error
	messages  []entity.ChatMessage
	total     int
}

func (f *fakeMessages) CreateMessage(_ netcontext.Context, message entity.ChatMessage) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, message)
	return nil
}

func (f *fakeMessages) GetMessagesBySession(_ netcontext.Context, _ string, _, _ int) ([]entity.ChatMessage, int, error) {
	return f.messages, f.total, nil
}

type fakeChatRepo struct {
	messages *fakeMessages
}

func (f *fakeChatRepo) NewClient(_ bool) (chatRepository.Client, error) {
	return chatRepository.Client{
		Messages: f.messages,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeCatalog struct {
	snapshot []entity.Product
	err      error
}

func (f *fakeCatalog) ListProducts(_ context.Context, _, _ int, _ string) (*catalog.ProductListResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) GetProduct(_ context.Context, _ string) (*catalog.ProductResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) GetCategories(_ context.Context) (*catalog.CategoryListResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) CreateProduct(_ context.Context, _ catalog.CreateProductRequest) (*catalog.ProductResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) UpdateProduct(_ context.Context, _ string, _ catalog.UpdateProductRequest) (*catalog.ProductResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) ActiveSnapshot(_ context.Context) ([]entity.Product, error) {
	return f.snapshot, f.err
}

type fakeFormatter struct{}

func (fakeFormatter) FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

type fakeUtils struct{}

func (fakeUtils) NewULIDFromTimestamp(_ time.Time) (string, error) {
	return "01TESTULID0000000000000000", nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestService(model *fakeModel, repo *fakeChatRepo, cat *fakeCatalog) IChatService {
	return NewChatService(quietLogger(), repo, model, cat, fakeFormatter{}, fakeUtils{})
}

func greetingPrediction() *chatbot.Prediction {
	return &chatbot.Prediction{
		Response:    "Hello! How can I help?",
		Intent:      chatbot.TagGreeting,
		Confidence:  0.8,
		Products:    []chatbot.ProductMatch{},
		Suggestions: []string{},
	}
}

func TestSendMessageRejectsEmptyMessage(t *testing.T) {
	service := newTestService(&fakeModel{}, &fakeChatRepo{messages: &fakeMessages{}}, &fakeCatalog{})

	_, err := service.SendMessage(context.Background(), chat.SendMessageRequest{Message: "   "})
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)
}

func TestSendMessageGeneratesSessionID(t *testing.T) {
	model := &fakeModel{prediction: greetingPrediction()}
	messages := &fakeMessages{}
	service := newTestService(model, &fakeChatRepo{messages: messages}, &fakeCatalog{})

	resp, err := service.SendMessage(context.Background(), chat.SendMessageRequest{Message: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "01TESTULID0000000000000000", resp.SessionID)
	assert.Equal(t, "Hello! How can I help?", resp.Response)
	assert.Equal(t, chatbot.TagGreeting, resp.Intent)

	require.Len(t, messages.created, 1)
	assert.Equal(t, resp.SessionID, messages.created[0].SessionID)
	assert.Equal(t, "hello", messages.created[0].UserMessage)
}

func TestSendMessageKeepsExistingSessionID(t *testing.T) {
	model := &fakeModel{prediction: greetingPrediction()}
	service := newTestService(model, &fakeChatRepo{messages: &fakeMessages{}}, &fakeCatalog{})

	resp, err := service.SendMessage(context.Background(), chat.SendMessageRequest{
		SessionID: "existing",
		Message:   "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "existing", resp.SessionID)
}

func TestSendMessageSurvivesPersistenceFailure(t *testing.T) {
	model := &fakeModel{prediction: greetingPrediction()}
	messages := &fakeMessages{createErr: errors.New("db down")}
	service := newTestService(model, &fakeChatRepo{messages: messages}, &fakeCatalog{})

	resp, err := service.SendMessage(context.Background(), chat.SendMessageRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help?", resp.Response)
}

func TestSendMessageFormatsProductMatches(t *testing.T) {
	model := &fakeModel{prediction: &chatbot.Prediction{
		Response:   "Here are some recommendations based on what you asked for:",
		Intent:     chatbot.TagProductSearch,
		Confidence: 0.9,
		Products: []chatbot.ProductMatch{{
			Product: chatbot.Product{
				ID:         "p1",
				Name:       "Wireless Earbuds",
				Category:   "electronics",
				PriceCents: 7999,
				Rating:     &chatbot.Rating{Stars: 4.8, Count: 320},
			},
			MatchScore: 45,
		}},
		Suggestions: []string{"Add to cart"},
	}}
	service := newTestService(model, &fakeChatRepo{messages: &fakeMessages{}}, &fakeCatalog{})

	resp, err := service.SendMessage(context.Background(), chat.SendMessageRequest{Message: "show me earbuds"})
	require.NoError(t, err)

	require.Len(t, resp.Products, 1)
	assert.Equal(t, "$79.99", resp.Products[0].Price)
	assert.Equal(t, 45, resp.Products[0].MatchScore)
	assert.Equal(t, 4.8, resp.Products[0].Rating)
}

func TestGetHistoryUnknownSession(t *testing.T) {
	service := newTestService(&fakeModel{}, &fakeChatRepo{messages: &fakeMessages{}}, &fakeCatalog{})

	_, err := service.GetHistory(context.Background(), "ghost", 1, 20)
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)

	_, err = service.GetHistory(context.Background(), "", 1, 20)
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestGetHistoryReturnsMessages(t *testing.T) {
	now := time.Now().UTC()
	messages := &fakeMessages{
		messages: []entity.ChatMessage{{
			ID:          "m1",
			SessionID:   "s1",
			UserMessage: "hello",
			Intent:      chatbot.TagGreeting,
			Confidence:  0.8,
			Response:    "Hi!",
			CreatedAt:   now,
		}},
		total: 7,
	}
	service := newTestService(&fakeModel{}, &fakeChatRepo{messages: messages}, &fakeCatalog{})

	resp, err := service.GetHistory(context.Background(), "s1", 0, 500)
	require.NoError(t, err)

	assert.Equal(t, "s1", resp.SessionID)
	assert.Equal(t, 7, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, defaultHistoryLimit, resp.Limit)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "hello", resp.Messages[0].UserMessage)
}

func TestGetSuggestionsDedupesAndCaps(t *testing.T) {
	earbuds := chatbot.Product{ID: "p1", Name: "Wireless Earbuds", PriceCents: 7999}
	model := &fakeModel{lookupTable: map[string][]chatbot.Product{
		"wireless": {earbuds},
		"earbuds":  {earbuds},
	}}
	service := newTestService(model, &fakeChatRepo{messages: &fakeMessages{}}, &fakeCatalog{})

	resp, err := service.GetSuggestions(context.Background(), "Wireless Earbuds")
	require.NoError(t, err)

	assert.Equal(t, defaultSuggestions, resp.Suggestions)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "p1", resp.Products[0].ID)
}

func TestTrainForwardsTurns(t *testing.T) {
	model := &fakeModel{trainAdded: 2}
	service := newTestService(model, &fakeChatRepo{messages: &fakeMessages{}}, &fakeCatalog{})

	resp, err := service.Train(context.Background(), chat.TrainRequest{Turns: []chat.TrainingTurnRequest{
		{UserMessage: "i need sneakers", Intent: chatbot.TagProductSearch, Confidence: 0.9},
		{UserMessage: "find me a mug", Intent: chatbot.TagProductSearch, Confidence: 0.95},
	}})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.PatternsAdded)
	require.Len(t, model.trained, 2)
	assert.Equal(t, "i need sneakers", model.trained[0].UserMessage)
	assert.NotEmpty(t, model.trained[0].Timestamp)
}

func TestTrainRejectsEmptyRequest(t *testing.T) {
	service := newTestService(&fakeModel{}, &fakeChatRepo{messages: &fakeMessages{}}, &fakeCatalog{})

	_, err := service.Train(context.Background(), chat.TrainRequest{})
	assert.ErrorIs(t, err, chat.ErrNoTrainingTurns)
}

func TestToStoreProducts(t *testing.T) {
	snapshot := []entity.Product{
		{ID: "p1", Name: "Wireless Earbuds", Keywords: []string{"earbuds"}, PriceCents: 7999, RatingStars: 4.8, RatingCount: 320},
		{ID: "p2", Name: "Coffee Maker", PriceCents: 4999},
	}

	products := ToStoreProducts(snapshot)
	require.Len(t, products, 2)

	require.NotNil(t, products[0].Rating)
	assert.Equal(t, 4.8, products[0].Rating.Stars)
	assert.Equal(t, 320, products[0].Rating.Count)
	assert.Nil(t, products[1].Rating)

	// Keywords are an owned copy.
	products[0].Keywords[0] = "mutated"
	assert.Equal(t, "earbuds", snapshot[0].Keywords[0])

	assert.Empty(t, ToStoreProducts(nil))
}

func TestRefreshProductsConvertsSnapshot(t *testing.T) {
	model := &fakeModel{}
	cat := &fakeCatalog{snapshot: []entity.Product{
		{ID: "p1", Name: "Wireless Earbuds", Keywords: []string{"earbuds"}, PriceCents: 7999, RatingStars: 4.8, RatingCount: 320},
		{ID: "p2", Name: "Coffee Maker", PriceCents: 4999},
	}}
	service := newTestService(model, &fakeChatRepo{messages: &fakeMessages{}}, cat)

	resp, err := service.RefreshProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.ProductCount)
	require.Len(t, model.snapshot, 2)
	require.NotNil(t, model.snapshot[0].Rating)
	assert.Equal(t, 4.8, model.snapshot[0].Rating.Stars)
	assert.Nil(t, model.snapshot[1].Rating)
}

func TestRefreshProductsPropagatesSnapshotError(t *testing.T) {
	cat := &fakeCatalog{err: errors.New("db down")}
	service := newTestService(&fakeModel{}, &fakeChatRepo{messages: &fakeMessages{}}, cat)

	_, err := service.RefreshProducts(context.Background())
	assert.Error(t, err)
}

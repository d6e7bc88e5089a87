package chatService

import (
	"StorefrontGolang/internal/api/chat"
	"StorefrontGolang/internal/entity"
	"StorefrontGolang/pkg/chatbot"
	contextPkg "StorefrontGolang/pkg/context"
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit  = 20
	maxHistoryLimit      = 100
	maxSuggestedProducts = 5
)

var defaultSuggestions = []string{
	"What's on sale today?",
	"Show me electronics",
	"Track my order",
}

func (s *chatService) SendMessage(ctx context.Context, req chat.SendMessageRequest) (*chat.SendMessageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, chat.ErrEmptyMessage
	}

	sessionID := req.SessionID
	if sessionID == "" {
		id, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate session id")
			return nil, err
		}
		sessionID = id
	}

	prediction := s.model.Predict(ctx, message)

	// Persistence is best effort. A dead database must not take the
	// assistant down with it.
	s.persistTurn(ctx, requestID, sessionID, message, prediction)

	products := make([]chat.ProductMatchResponse, 0, len(prediction.Products))
	for _, match := range prediction.Products {
		products = append(products, s.toMatchResponse(match.Product, match.MatchScore))
	}

	return &chat.SendMessageResponse{
		SessionID:   sessionID,
		Response:    prediction.Response,
		Intent:      prediction.Intent,
		Confidence:  prediction.Confidence,
		Products:    products,
		Suggestions: prediction.Suggestions,
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionID string, page, limit int) (*chat.HistoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if sessionID == "" {
		return nil, chat.ErrSessionNotFound
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	client, err := s.chatRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	messages, total, err := client.Messages.GetMessagesBySession(ctx, sessionID, limit, (page-1)*limit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to fetch chat history")
		return nil, err
	}

	if total == 0 {
		return nil, chat.ErrSessionNotFound
	}

	responses := make([]chat.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, chat.ChatMessageResponse{
			ID:          m.ID,
			UserMessage: m.UserMessage,
			Intent:      m.Intent,
			Confidence:  m.Confidence,
			Response:    m.Response,
			CreatedAt:   m.CreatedAt,
		})
	}

	return &chat.HistoryResponse{
		SessionID: sessionID,
		Messages:  responses,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}, nil
}

func (s *chatService) GetSuggestions(ctx context.Context, query string) (*chat.SuggestionsResponse, error) {
	suggestions := make([]string, len(defaultSuggestions))
	copy(suggestions, defaultSuggestions)

	products := make([]chat.ProductMatchResponse, 0, maxSuggestedProducts)
	if query != "" {
		seen := make(map[string]bool)
		for _, token := range strings.Fields(strings.ToLower(query)) {
			for _, product := range s.model.LookupProducts(token) {
				if seen[product.ID] {
					continue
				}
				seen[product.ID] = true
				products = append(products, s.toMatchResponse(product, 0))
				if len(products) == maxSuggestedProducts {
					break
				}
			}
			if len(products) == maxSuggestedProducts {
				break
			}
		}
	}

	return &chat.SuggestionsResponse{
		Suggestions: suggestions,
		Products:    products,
	}, nil
}

func (s *chatService) Train(ctx context.Context, req chat.TrainRequest) (*chat.TrainResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if len(req.Turns) == 0 {
		return nil, chat.ErrNoTrainingTurns
	}

	turns := make([]chatbot.ConversationTurn, 0, len(req.Turns))
	for _, turn := range req.Turns {
		turns = append(turns, chatbot.ConversationTurn{
			UserMessage: turn.UserMessage,
			Intent:      turn.Intent,
			Confidence:  turn.Confidence,
			Response:    turn.Response,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		})
	}

	added := s.model.TrainModel(turns)

	s.log.WithFields(logrus.Fields{
		"request_id":     requestID,
		"turns":          len(turns),
		"patterns_added": added,
	}).Info("Applied training turns to the chatbot model")

	return &chat.TrainResponse{PatternsAdded: added}, nil
}

func (s *chatService) Export(ctx context.Context) (*chat.ExportResponse, error) {
	return &chat.ExportResponse{Export: s.model.ExportTrainingData()}, nil
}

func (s *chatService) RefreshProducts(ctx context.Context) (*chat.RefreshProductsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	snapshot, err := s.catalog.ActiveSnapshot(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load product snapshot")
		return nil, err
	}

	products := ToStoreProducts(snapshot)

	s.model.UpdateStoreProducts(products)

	s.log.WithFields(logrus.Fields{
		"request_id":    requestID,
		"product_count": len(products),
	}).Info("Refreshed chatbot product snapshot")

	return &chat.RefreshProductsResponse{ProductCount: len(products)}, nil
}

func (s *chatService) persistTurn(ctx context.Context, requestID, sessionID, message string, prediction *chatbot.Prediction) {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to generate chat message id, skipping persistence")
		return
	}

	client, err := s.chatRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to open repository client, skipping persistence")
		return
	}

	err = client.Messages.CreateMessage(ctx, entity.ChatMessage{
		ID:          id,
		SessionID:   sessionID,
		UserMessage: message,
		Intent:      prediction.Intent,
		Confidence:  prediction.Confidence,
		Response:    prediction.Response,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to persist chat message")
	}
}

func (s *chatService) toMatchResponse(product chatbot.Product, score int) chat.ProductMatchResponse {
	resp := chat.ProductMatchResponse{
		ID:         product.ID,
		Name:       product.Name,
		Category:   product.Category,
		PriceCents: product.PriceCents,
		Price:      s.formatter.FormatCents(product.PriceCents),
		MatchScore: score,
	}
	if product.Rating != nil {
		resp.Rating = product.Rating.Stars
	}
	return resp
}

// ToStoreProducts converts a catalog snapshot into the chatbot's product
// shape. Used both for the construction-time seed and for hot refreshes.
func ToStoreProducts(snapshot []entity.Product) []chatbot.Product {
	products := make([]chatbot.Product, 0, len(snapshot))
	for _, p := range snapshot {
		products = append(products, toChatbotProduct(p))
	}
	return products
}

func toChatbotProduct(p entity.Product) chatbot.Product {
	product := chatbot.Product{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Keywords:    append([]string(nil), p.Keywords...),
		PriceCents:  p.PriceCents,
	}
	if p.RatingCount > 0 || p.RatingStars > 0 {
		product.Rating = &chatbot.Rating{
			Stars: p.RatingStars,
			Count: p.RatingCount,
		}
	}
	return product
}

package chatService

import (
	catalogService "StorefrontGolang/internal/api/catalog/service"
	"StorefrontGolang/internal/api/chat"
	chatRepository "StorefrontGolang/internal/api/chat/repository"
	"StorefrontGolang/pkg/chatbot"
	"StorefrontGolang/pkg/currency"
	"StorefrontGolang/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type IChatService interface {
	SendMessage(ctx context.Context, req chat.SendMessageRequest) (*chat.SendMessageResponse, error)
	GetHistory(ctx context.Context, sessionID string, page, limit int) (*chat.HistoryResponse, error)
	GetSuggestions(ctx context.Context, query string) (*chat.SuggestionsResponse, error)
	Train(ctx context.Context, req chat.TrainRequest) (*chat.TrainResponse, error)
	Export(ctx context.Context) (*chat.ExportResponse, error)
	RefreshProducts(ctx context.Context) (*chat.RefreshProductsResponse, error)
}

type chatService struct {
	log       *logrus.Logger
	chatRepo  chatRepository.Repository
	model     chatbot.IModel
	catalog   catalogService.ICatalogService
	formatter currency.IFormatter
	utils     utils.IUtils
}

func NewChatService(
	log *logrus.Logger,
	chatRepo chatRepository.Repository,
	model chatbot.IModel,
	catalog catalogService.ICatalogService,
	formatter currency.IFormatter,
	utils utils.IUtils,
) IChatService {
	return &chatService{
		log:       log,
		chatRepo:  chatRepo,
		model:     model,
		catalog:   catalog,
		formatter: formatter,
		utils:     utils,
	}
}

package chatRepository

import (
	"StorefrontGolang/internal/entity"
	contextPkg "StorefrontGolang/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type messageRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type ChatMessageDB struct {
	ID          sql.NullString  `db:"id"`
	SessionID   sql.NullString  `db:"session_id"`
	UserMessage sql.NullString  `db:"user_message"`
	Intent      sql.NullString  `db:"intent"`
	Confidence  sql.NullFloat64 `db:"confidence"`
	Response    sql.NullString  `db:"response"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (r *messageRepository) CreateMessage(ctx context.Context, message entity.ChatMessage) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":           message.ID,
		"session_id":   message.SessionID,
		"user_message": message.UserMessage,
		"intent":       message.Intent,
		"confidence":   message.Confidence,
		"response":     message.Response,
		"created_at":   message.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateMessage, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": message.SessionID,
			"error":      err.Error(),
		}).Error("Failed to insert chat message")
		return err
	}

	return nil
}

func (r *messageRepository) GetMessagesBySession(ctx context.Context, sessionID string, limit, offset int) ([]entity.ChatMessage, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"session_id": sessionID,
		"limit":      limit,
		"offset":     offset,
	}

	query, args, err := sqlx.Named(queryGetMessagesBySession, argsKV)
	if err != nil {
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []ChatMessageDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to fetch chat messages")
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountMessagesBySession, argsKV)
	if err != nil {
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	messages := make([]entity.ChatMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, entity.ChatMessage{
			ID:          row.ID.String,
			SessionID:   row.SessionID.String,
			UserMessage: row.UserMessage.String,
			Intent:      row.Intent.String,
			Confidence:  row.Confidence.Float64,
			Response:    row.Response.String,
			CreatedAt:   row.CreatedAt,
		})
	}

	return messages, total, nil
}

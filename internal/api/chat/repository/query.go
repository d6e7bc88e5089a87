package chatRepository

const (
	queryCreateMessage = `
		INSERT INTO chat_messages (
			id, session_id, user_message, intent, confidence, response, created_at
		) VALUES (
			:id, :session_id, :user_message, :intent, :confidence, :response, :created_at
		)
	`

	queryGetMessagesBySession = `
		SELECT
			id, session_id, user_message, intent, confidence, response, created_at
		FROM chat_messages
		WHERE session_id = :session_id
		ORDER BY created_at ASC
		LIMIT :limit OFFSET :offset
	`

	queryCountMessagesBySession = `
		SELECT COUNT(*)
		FROM chat_messages
		WHERE session_id = :session_id
	`
)

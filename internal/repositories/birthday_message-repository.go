package repositories

import (
	"context"
	"errors"
	"time"

	"employee-system/internal/entities"
	apperrors "employee-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const birthdayMessageSelectFields = "message_id, receiver_id, sender_id, COALESCE(sender_name, ''), message, timestamp, is_read"

type BirthdayMessageRepositoryInterface interface {
	Create(ctx context.Context, msg *entities.BirthdayMessage) (*entities.BirthdayMessage, error)
	Inbox(ctx context.Context, receiverID uint64) ([]entities.BirthdayThread, error)
	Thread(ctx context.Context, tx pgx.Tx, receiverID, senderID uint64) ([]entities.BirthdayMessage, error)
	MarkThreadRead(ctx context.Context, tx pgx.Tx, receiverID, senderID uint64) (int64, error)
	DeleteForReceiver(ctx context.Context, tx pgx.Tx, receiverID uint64) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type BirthdayMessageRepository struct {
	storage DBPool
	logger  *zap.Logger
}

func NewBirthdayMessageRepository(storage DBPool, logger *zap.Logger) BirthdayMessageRepositoryInterface {
	return &BirthdayMessageRepository{storage: storage, logger: logger}
}

func scanBirthdayMessage(row pgx.Row) (*entities.BirthdayMessage, error) {
	var m entities.BirthdayMessage
	err := row.Scan(&m.ID, &m.ReceiverID, &m.SenderID, &m.SenderName, &m.Message, &m.Timestamp, &m.IsRead)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *BirthdayMessageRepository) Create(ctx context.Context, msg *entities.BirthdayMessage) (*entities.BirthdayMessage, error) {
	query := `INSERT INTO birthday_messages (receiver_id, sender_id, sender_name, message, timestamp, is_read)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + birthdayMessageSelectFields
	return scanBirthdayMessage(r.storage.QueryRow(ctx, query,
		msg.ReceiverID, msg.SenderID, msg.SenderName, msg.Message, msg.Timestamp, msg.IsRead,
	))
}

// Inbox returns one row per sender: the latest message and the unread count.
func (r *BirthdayMessageRepository) Inbox(ctx context.Context, receiverID uint64) ([]entities.BirthdayThread, error) {
	query := `
		SELECT DISTINCT ON (m.sender_id)
			m.sender_id, COALESCE(m.sender_name, ''), m.message, m.timestamp,
			(SELECT COUNT(*) FROM birthday_messages u
			  WHERE u.receiver_id = m.receiver_id AND u.sender_id = m.sender_id AND u.is_read = FALSE)
		FROM birthday_messages m
		WHERE m.receiver_id = $1
		ORDER BY m.sender_id, m.timestamp DESC, m.message_id DESC`

	rows, err := r.storage.Query(ctx, query, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	threads := make([]entities.BirthdayThread, 0)
	for rows.Next() {
		var t entities.BirthdayThread
		if err := rows.Scan(&t.SenderID, &t.SenderName, &t.Message, &t.Timestamp, &t.UnreadCount); err != nil {
			return nil, err
		}
		threads = append(threads, t)
	}
	return threads, rows.Err()
}

func (r *BirthdayMessageRepository) Thread(ctx context.Context, tx pgx.Tx, receiverID, senderID uint64) ([]entities.BirthdayMessage, error) {
	query := `SELECT ` + birthdayMessageSelectFields + `
		FROM birthday_messages WHERE receiver_id = $1 AND sender_id = $2
		ORDER BY timestamp, message_id`
	rows, err := tx.Query(ctx, query, receiverID, senderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]entities.BirthdayMessage, 0)
	for rows.Next() {
		m, err := scanBirthdayMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}

func (r *BirthdayMessageRepository) MarkThreadRead(ctx context.Context, tx pgx.Tx, receiverID, senderID uint64) (int64, error) {
	result, err := tx.Exec(ctx,
		"UPDATE birthday_messages SET is_read = TRUE WHERE receiver_id = $1 AND sender_id = $2 AND is_read = FALSE",
		receiverID, senderID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *BirthdayMessageRepository) DeleteForReceiver(ctx context.Context, tx pgx.Tx, receiverID uint64) (int64, error) {
	result, err := tx.Exec(ctx, "DELETE FROM birthday_messages WHERE receiver_id = $1", receiverID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *BirthdayMessageRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.storage.Exec(ctx, "DELETE FROM birthday_messages WHERE timestamp < $1", cutoff)
	if err != nil {
		r.logger.Error("failed to delete old birthday messages", zap.Error(err))
		return 0, err
	}
	return result.RowsAffected(), nil
}

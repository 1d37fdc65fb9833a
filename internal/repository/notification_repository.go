package repository

import (
	"context"
	"database/sql"

	"github.com/yourspace/yourspace-api/internal/model"
)

// NotificationRepo persists in-app notifications. Rows are written by the
// queue consumer when booking events arrive and read by users from their
// dashboard.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Insert stores a notification for a user.
func (r *NotificationRepo) Insert(ctx context.Context, n *model.Notification) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (user_id, kind, message) VALUES (?,?,?)",
		n.UserID, n.Kind, n.Message)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// ListByUser returns a user's notifications, newest first, capped at the
// most recent 100.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,kind,message,read_at,created_at FROM notifications WHERE user_id=? ORDER BY created_at DESC LIMIT 100",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		var readAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Message, &readAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		if readAt.Valid {
			t := readAt.Time
			n.ReadAt = &t
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags one of the user's notifications as read. A mismatched
// user or unknown id is a silent no-op.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, notificationID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET read_at=NOW() WHERE id=? AND user_id=? AND read_at IS NULL",
		notificationID, userID)
	return err
}

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Franklivania/go-to-market/internal/model"
)

type NotificationStore struct {
	db *sql.DB
}

func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func scanNotification(scanner interface{ Scan(...any) error }) (*model.Notification, error) {
	var n model.Notification
	var read int
	if err := scanner.Scan(&n.ID, &n.Title, &n.Body, &n.Date, &read); err != nil {
		return nil, err
	}
	n.Read = read != 0
	return &n, nil
}

func (s *NotificationStore) Create(title, body string) (*model.Notification, error) {
	result, err := s.db.Exec(
		`INSERT INTO notifications (title, body, date) VALUES (?, ?, ?)`,
		title, body, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *NotificationStore) GetByID(id int64) (*model.Notification, error) {
	row := s.db.QueryRow(`SELECT id, title, body, date, read FROM notifications WHERE id = ?`, id)
	n, err := scanNotification(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

// List returns all notifications, newest first.
func (s *NotificationStore) List() ([]model.Notification, error) {
	rows, err := s.db.Query(`SELECT id, title, body, date, read FROM notifications ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

// ToggleRead flips the read flag and returns the updated notification,
// or nil if the id does not exist.
func (s *NotificationStore) ToggleRead(id int64) (*model.Notification, error) {
	n, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}

	read := 0
	if !n.Read {
		read = 1
	}
	if _, err := s.db.Exec(`UPDATE notifications SET read = ? WHERE id = ?`, read, id); err != nil {
		return nil, fmt.Errorf("toggle read: %w", err)
	}
	return s.GetByID(id)
}

// CountUnread returns the number of unread notifications.
func (s *NotificationStore) CountUnread() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE read = 0`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

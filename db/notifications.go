package db

import (
	"database/sql"
	"time"
)

// WasNotifiedRecently reports whether the user was already sent the given
// notification within the window. Used to suppress repeated validation DMs.
func WasNotifiedRecently(userID, reason string, window time.Duration) (bool, error) {
	row := DB.QueryRow(`
		SELECT sent_at FROM notifications
		WHERE user_id = ? AND reason = ?
	`, userID, reason)

	var sentAt int64
	err := row.Scan(&sentAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}

	return time.Since(time.Unix(sentAt, 0)) < window, nil
}

// RecordNotification stores or refreshes the timestamp of a notification
// sent to a user.
func RecordNotification(userID, reason string) error {
	_, err := DB.Exec(`
		INSERT INTO notifications (user_id, reason, sent_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, reason) DO UPDATE SET
		sent_at = excluded.sent_at;
	`, userID, reason, time.Now().Unix())
	return err
}

package database

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/taskboard/internal/models"
)

func insertUser(ctx context.Context, q querier, u models.User) error {
	_, err := q.ExecContext(ctx, "INSERT INTO users (id, name, avatar) VALUES (?, ?, ?)", u.ID, u.Name, u.Avatar)
	if err != nil {
		return fmt.Errorf("failed to insert user %s: %w", u.ID, err)
	}
	return nil
}

func selectUsers(ctx context.Context, q querier) ([]models.User, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name, avatar FROM users ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

package database

import "fmt"

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Exists reports whether the user row is present
func (r *UserRepository) Exists(id int64) (bool, error) {
	var count int
	query := DB.Rebind("SELECT COUNT(*) FROM users WHERE user_id = ?")
	if err := DB.Get(&count, query, id); err != nil {
		return false, fmt.Errorf("failed to check user %d: %w", id, err)
	}
	return count > 0, nil
}

// Create inserts a new user row
func (r *UserRepository) Create(id int64) error {
	query := DB.Rebind("INSERT INTO users (user_id) VALUES (?)")
	if _, err := DB.Exec(query, id); err != nil {
		return fmt.Errorf("failed to create user %d: %w", id, err)
	}
	return nil
}

// Delete removes a user row
func (r *UserRepository) Delete(id int64) error {
	query := DB.Rebind("DELETE FROM users WHERE user_id = ?")
	if _, err := DB.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}

package repos

import (
	"krishifarm/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT id, email, name, COALESCE(image,'') AS image, created_at
	  FROM users WHERE LOWER(email)=LOWER(?)
	`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Insert(u domain.User) error {
	_, err := r.DB.Exec(`
	  INSERT INTO users(id, email, name, image, created_at)
	  VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, u.ID, u.Email, u.Name, u.Image)
	return err
}

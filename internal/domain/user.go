package domain

type User struct {
	ID        string `db:"id" json:"_id"`
	Email     string `db:"email" json:"email"`
	Name      string `db:"name" json:"name"`
	Image     string `db:"image" json:"image,omitempty"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

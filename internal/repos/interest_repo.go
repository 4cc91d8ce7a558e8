package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"krishifarm/internal/domain"
)

type InterestRepo struct{ db *sqlx.DB }

func NewInterestRepo(db *sqlx.DB) *InterestRepo { return &InterestRepo{db: db} }

type interestRow struct {
	ID         string `db:"id"`
	CropID     string `db:"crop_id"`
	BuyerEmail string `db:"buyer_email"`
	BuyerName  string `db:"buyer_name"`
	Quantity   int    `db:"quantity"`
	Message    string `db:"message"`
	Status     string `db:"status"`
	CreatedAt  string `db:"created_at"`
}

func (r interestRow) toDomain() domain.Interest {
	return domain.Interest{
		ID:        r.ID,
		CropID:    r.CropID,
		UserEmail: r.BuyerEmail,
		UserName:  r.BuyerName,
		Quantity:  r.Quantity,
		Message:   r.Message,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

const interestCols = `id, crop_id, buyer_email, buyer_name, quantity, COALESCE(message,'') AS message, status, created_at`

// ForCrops loads the interest sequences for a set of crops in one round-trip,
// keyed by crop id and kept in submission order.
func (r *InterestRepo) ForCrops(cropIDs []string) (map[string][]domain.Interest, error) {
	out := make(map[string][]domain.Interest, len(cropIDs))
	if len(cropIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
	  SELECT `+interestCols+`
	  FROM interests
	  WHERE crop_id IN (?)
	  ORDER BY datetime(created_at), id
	`, cropIDs)
	if err != nil {
		return nil, err
	}
	var rows []interestRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.CropID] = append(out[row.CropID], row.toDomain())
	}
	return out, nil
}

// Exists reports whether the buyer already has an interest on this crop.
func (r *InterestRepo) Exists(cropID, buyerEmail string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM interests
	  WHERE crop_id = ? AND LOWER(buyer_email) = LOWER(?)
	`, cropID, buyerEmail)
	return n > 0, err
}

// Append adds a new interest to the crop's sequence.
func (r *InterestRepo) Append(i domain.Interest) error {
	_, err := r.db.Exec(`
	  INSERT INTO interests(id, crop_id, buyer_email, buyer_name, quantity, message, status, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, i.ID, i.CropID, i.UserEmail, i.UserName, i.Quantity, i.Message, i.Status)
	return err
}

// Decide flips a pending interest to the given terminal status. Acceptance
// also reserves stock by decrementing the crop's quantity, in the same
// transaction; a shortfall rolls back the status flip as well.
func (r *InterestRepo) Decide(cropID, interestID, status string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE interests SET status = ?
	  WHERE id = ? AND crop_id = ? AND status = 'pending'
	`, status, interestID, cropID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var cur string
		err := tx.Get(&cur, `SELECT status FROM interests WHERE id = ? AND crop_id = ?`, interestID, cropID)
		if err == sql.ErrNoRows {
			return domain.ErrInterestNotFound
		}
		if err != nil {
			return err
		}
		return domain.ErrAlreadyDecided
	}

	if status == domain.StatusAccepted {
		// Decrement by the stored requested amount, never below zero.
		var want int
		if err := tx.Get(&want, `SELECT quantity FROM interests WHERE id = ?`, interestID); err != nil {
			return err
		}
		res, err := tx.Exec(`
		  UPDATE crops
		  SET quantity = quantity - ?, updated_at = CURRENT_TIMESTAMP
		  WHERE id = ? AND quantity >= ?
		`, want, cropID, want)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrInsufficientQuantity
		}
	}

	return tx.Commit()
}

// ViewsByBuyer projects the buyer's own interests across all crops: one row
// per crop, joined with the crop's name and owner.
func (r *InterestRepo) ViewsByBuyer(buyerEmail string) ([]domain.InterestView, error) {
	var out []domain.InterestView
	err := r.db.Select(&out, `
	  SELECT c.id AS crop_id, c.name AS crop_name, c.owner_name,
	         i.quantity, COALESCE(i.message,'') AS message, i.status
	  FROM interests i
	  JOIN crops c ON c.id = i.crop_id
	  WHERE LOWER(i.buyer_email) = LOWER(?)
	  ORDER BY datetime(i.created_at) DESC, i.id
	`, buyerEmail)
	return out, err
}

package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"krishifarm/internal/domain"
)

type CropRepo struct{ db *sqlx.DB }

func NewCropRepo(db *sqlx.DB) *CropRepo { return &CropRepo{db: db} }

// cropRow is the flat scan target for the crops table.
type cropRow struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Type         string  `db:"type"`
	PricePerUnit float64 `db:"price_per_unit"`
	Unit         string  `db:"unit"`
	Quantity     int     `db:"quantity"`
	Description  string  `db:"description"`
	Location     string  `db:"location"`
	Image        string  `db:"image"`
	OwnerName    string  `db:"owner_name"`
	OwnerEmail   string  `db:"owner_email"`
	CreatedAt    string  `db:"created_at"`
	UpdatedAt    string  `db:"updated_at"`
}

func (r cropRow) toDomain() domain.Crop {
	return domain.Crop{
		ID:           r.ID,
		Name:         r.Name,
		Type:         r.Type,
		PricePerUnit: r.PricePerUnit,
		Unit:         r.Unit,
		Quantity:     r.Quantity,
		Description:  r.Description,
		Location:     r.Location,
		Image:        r.Image,
		Owner:        domain.Owner{Name: r.OwnerName, Email: r.OwnerEmail},
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func rowsToDomain(rows []cropRow) []domain.Crop {
	out := make([]domain.Crop, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}

const cropCols = `
    id, name, type, price_per_unit, unit, quantity,
    COALESCE(description,'') AS description, location, COALESCE(image,'') AS image,
    owner_name, owner_email, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *CropRepo) Insert(c domain.Crop) error {
	_, err := r.db.Exec(`
	  INSERT INTO crops
	    (id, name, type, price_per_unit, unit, quantity, description, location, image, owner_name, owner_email, created_at)
	  VALUES
	    (?,  ?,    ?,    ?,              ?,    ?,        ?,           ?,        ?,     ?,          ?,           CURRENT_TIMESTAMP)
	`, c.ID, c.Name, c.Type, c.PricePerUnit, c.Unit, c.Quantity, c.Description, c.Location, c.Image, c.Owner.Name, c.Owner.Email)
	return err
}

func (r *CropRepo) Get(id string) (domain.Crop, error) {
	var row cropRow
	err := r.db.Get(&row, `SELECT `+cropCols+` FROM crops WHERE id = ?`, id)
	if err != nil {
		return domain.Crop{}, err
	}
	return row.toDomain(), nil
}

// CropUpdate carries the mutable listing fields for a full replace.
type CropUpdate struct {
	Name         string
	Type         string
	PricePerUnit float64
	Unit         string
	Quantity     int
	Description  string
	Location     string
	Image        string
}

// Update replaces the mutable fields and stamps updated_at. Returns the
// number of affected rows (0 when the crop does not exist).
func (r *CropRepo) Update(id string, u CropUpdate) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE crops SET
	    name = ?, type = ?, price_per_unit = ?, unit = ?, quantity = ?,
	    description = ?, location = ?, image = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, u.Name, u.Type, u.PricePerUnit, u.Unit, u.Quantity, u.Description, u.Location, u.Image, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a listing; its interests go with it (FK cascade).
func (r *CropRepo) Delete(id string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM crops WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *CropRepo) Latest(limit int) ([]domain.Crop, error) {
	var rows []cropRow
	err := r.db.Select(&rows, `
	  SELECT `+cropCols+`
	  FROM crops
	  ORDER BY datetime(created_at) DESC, id
	  LIMIT ?
	`, limit)
	return rowsToDomain(rows), err
}

func (r *CropRepo) ByOwner(email string) ([]domain.Crop, error) {
	var rows []cropRow
	err := r.db.Select(&rows, `
	  SELECT `+cropCols+`
	  FROM crops
	  WHERE LOWER(owner_email) = LOWER(?)
	  ORDER BY datetime(created_at) DESC, id
	`, email)
	return rowsToDomain(rows), err
}

// Categories returns the distinct set of crop types across all listings.
func (r *CropRepo) Categories() ([]string, error) {
	var out []string
	err := r.db.Select(&out, `SELECT DISTINCT type FROM crops ORDER BY type`)
	return out, err
}

// buildWhere translates the filter into a conjunctive WHERE clause. The
// free-text search matches name OR type OR location, case-insensitively.
func buildWhere(f domain.CropFilter) (string, []any) {
	where := `1=1`
	args := []any{}
	if f.Search != "" {
		q := "%" + strings.ToLower(f.Search) + "%"
		where += ` AND (LOWER(name) LIKE ? OR LOWER(type) LIKE ? OR LOWER(location) LIKE ?)`
		args = append(args, q, q, q)
	}
	if f.Type != "" {
		where += ` AND type = ?`
		args = append(args, f.Type)
	}
	if f.Location != "" {
		where += ` AND location = ?`
		args = append(args, f.Location)
	}
	if f.MinPrice != nil {
		where += ` AND price_per_unit >= ?`
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where += ` AND price_per_unit <= ?`
		args = append(args, *f.MaxPrice)
	}
	return where, args
}

func orderClause(sort string) string {
	switch sort {
	case "price_asc":
		return ` ORDER BY price_per_unit ASC, id`
	case "price_desc":
		return ` ORDER BY price_per_unit DESC, id`
	case "latest":
		return ` ORDER BY datetime(created_at) DESC, id`
	}
	// unrecognized sort means natural order
	return ``
}

func (r *CropRepo) Search(f domain.CropFilter, limit, offset int) ([]domain.Crop, error) {
	where, args := buildWhere(f)

	sql := `
	  SELECT ` + cropCols + `
	  FROM crops
	  WHERE ` + where + orderClause(f.Sort) + `
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var rows []cropRow
	err := r.db.Select(&rows, sql, args...)
	return rowsToDomain(rows), err
}

// Count returns the number of listings matching the filter, ignoring pagination.
func (r *CropRepo) Count(f domain.CropFilter) (int, error) {
	where, args := buildWhere(f)
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM crops WHERE `+where, args...)
	return n, err
}

package repos

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	// foreign_keys is connection-scoped; carrying it in the DSN turns it on
	// for every connection the pool opens, so interest rows reliably cascade
	// with their crop.
	if !strings.Contains(dsn, "_pragma=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline listings if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Crop listings
CREATE TABLE IF NOT EXISTS crops(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  price_per_unit NUMERIC NOT NULL CHECK (price_per_unit >= 0),
  unit TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  description TEXT,
  location TEXT NOT NULL,
  image TEXT,
  owner_name TEXT NOT NULL,
  owner_email TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_crops_type       ON crops(type);
CREATE INDEX IF NOT EXISTS idx_crops_location   ON crops(location);
CREATE INDEX IF NOT EXISTS idx_crops_owner      ON crops(LOWER(owner_email));
CREATE INDEX IF NOT EXISTS idx_crops_created_at ON crops(created_at);

-- Interests live inside their crop: removed with it, one per buyer per crop
CREATE TABLE IF NOT EXISTS interests(
  id TEXT PRIMARY KEY,
  crop_id TEXT NOT NULL REFERENCES crops(id) ON DELETE CASCADE,
  buyer_email TEXT NOT NULL,
  buyer_name TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  message TEXT,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','accepted','rejected')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(crop_id, buyer_email)
);
CREATE INDEX IF NOT EXISTS idx_interests_crop  ON interests(crop_id);
CREATE INDEX IF NOT EXISTS idx_interests_buyer ON interests(LOWER(buyer_email));

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  image TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM crops`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo crop listings")

	tx := db.MustBegin()
	// Fixed uuids so the demo listings work with the id-validating routes.
	tx.MustExec(`INSERT INTO crops(id,name,type,price_per_unit,unit,quantity,description,location,image,owner_name,owner_email) VALUES
	  ('1d6f4f52-0a5c-4f69-9e6d-6a17e2f3b101','Aman Rice','Grain',42.50,'kg',500,'Freshly harvested aman paddy','Rangpur','crops/rice-001.jpg','Abdul Karim','karim@krishifarm.test'),
	  ('2b7a8c91-5d3e-4b2a-8f4c-9d0e1f2a3b02','Red Potato','Vegetable',18.00,'kg',1200,'Cold-storage grade red potatoes','Bogura','crops/potato-001.jpg','Rahima Begum','rahima@krishifarm.test'),
	  ('3c8b9da2-6e4f-4c3b-9a5d-0e1f2a3b4c03','Himsagar Mango','Fruit',95.00,'kg',300,'Orchard-ripened himsagar mangoes','Rajshahi','crops/mango-001.jpg','Selim Reza','selim@krishifarm.test')`)

	return tx.Commit()
}

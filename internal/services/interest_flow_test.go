package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"krishifarm/internal/domain"
	"krishifarm/internal/repos"
	"krishifarm/internal/services"
)

func memdbInterest(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE crops(
	  id TEXT PRIMARY KEY, name TEXT, type TEXT, price_per_unit NUMERIC,
	  unit TEXT, quantity INTEGER, description TEXT, location TEXT, image TEXT,
	  owner_name TEXT, owner_email TEXT, created_at TEXT, updated_at TEXT
	);
	CREATE TABLE interests(
	  id TEXT PRIMARY KEY, crop_id TEXT, buyer_email TEXT, buyer_name TEXT,
	  quantity INTEGER, message TEXT, status TEXT, created_at TEXT,
	  UNIQUE(crop_id, buyer_email)
	);
	INSERT INTO crops(id,name,type,price_per_unit,unit,quantity,location,owner_name,owner_email,created_at)
	  VALUES ('C1','Aman Rice','Grain',42.50,'kg',100,'Rangpur','Owner A','a@x.com','2024-01-01 00:00:00');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func newInterestFixture(t *testing.T) (*sqlx.DB, *services.InterestService) {
	t.Helper()
	db := memdbInterest(t)
	svc := services.NewInterestService(repos.NewCropRepo(db), repos.NewInterestRepo(db))
	return db, svc
}

func cropQty(t *testing.T, db *sqlx.DB, id string) int {
	t.Helper()
	var qty int
	if err := db.Get(&qty, `SELECT quantity FROM crops WHERE id=?`, id); err != nil {
		t.Fatal(err)
	}
	return qty
}

func TestInterestFlow_SubmitAcceptDecrementsQuantity(t *testing.T) {
	db, svc := newInterestFixture(t)

	in, err := svc.Submit("C1", services.InterestInput{
		UserEmail: "b@x.com", UserName: "Buyer B", Quantity: 10, Message: "please",
	})
	if err != nil {
		t.Fatal(err)
	}
	if in.Status != domain.StatusPending || in.ID == "" {
		t.Fatalf("want fresh pending interest, got %+v", in)
	}

	if err := svc.Decide("C1", in.ID, "accepted"); err != nil {
		t.Fatal(err)
	}
	if qty := cropQty(t, db, "C1"); qty != 90 {
		t.Fatalf("want quantity=90 after acceptance, got %d", qty)
	}

	var status string
	if err := db.Get(&status, `SELECT status FROM interests WHERE id=?`, in.ID); err != nil {
		t.Fatal(err)
	}
	if status != "accepted" {
		t.Fatalf("want accepted, got %s", status)
	}

	// second submission from the same buyer on the same crop
	if _, err := svc.Submit("C1", services.InterestInput{
		UserEmail: "b@x.com", UserName: "Buyer B", Quantity: 5,
	}); err != domain.ErrDuplicateInterest {
		t.Fatalf("want ErrDuplicateInterest, got %v", err)
	}
}

func TestInterestFlow_SelfInterestForbidden(t *testing.T) {
	_, svc := newInterestFixture(t)

	_, err := svc.Submit("C1", services.InterestInput{
		UserEmail: "a@x.com", UserName: "Owner A", Quantity: 1,
	})
	if err != domain.ErrSelfInterest {
		t.Fatalf("want ErrSelfInterest, got %v", err)
	}
}

func TestInterestFlow_MissingCrop(t *testing.T) {
	_, svc := newInterestFixture(t)

	_, err := svc.Submit("nope", services.InterestInput{
		UserEmail: "b@x.com", UserName: "Buyer B", Quantity: 1,
	})
	if err != domain.ErrCropNotFound {
		t.Fatalf("want ErrCropNotFound, got %v", err)
	}
}

func TestInterestFlow_RejectLeavesQuantity(t *testing.T) {
	db, svc := newInterestFixture(t)

	in, err := svc.Submit("C1", services.InterestInput{
		UserEmail: "b@x.com", UserName: "Buyer B", Quantity: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Decide("C1", in.ID, "rejected"); err != nil {
		t.Fatal(err)
	}
	if qty := cropQty(t, db, "C1"); qty != 100 {
		t.Fatalf("rejection must not touch quantity, got %d", qty)
	}
}

func TestInterestFlow_DecideIsOneWay(t *testing.T) {
	db, svc := newInterestFixture(t)

	in, err := svc.Submit("C1", services.InterestInput{
		UserEmail: "b@x.com", UserName: "Buyer B", Quantity: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Decide("C1", in.ID, "accepted"); err != nil {
		t.Fatal(err)
	}
	// re-deciding must fail and must not decrement again
	if err := svc.Decide("C1", in.ID, "accepted"); err != domain.ErrAlreadyDecided {
		t.Fatalf("want ErrAlreadyDecided, got %v", err)
	}
	if err := svc.Decide("C1", in.ID, "rejected"); err != domain.ErrAlreadyDecided {
		t.Fatalf("want ErrAlreadyDecided, got %v", err)
	}
	if qty := cropQty(t, db, "C1"); qty != 90 {
		t.Fatalf("want quantity=90 after a single acceptance, got %d", qty)
	}
}

func TestInterestFlow_InvalidStatus(t *testing.T) {
	db, svc := newInterestFixture(t)

	in, err := svc.Submit("C1", services.InterestInput{
		UserEmail: "b@x.com", UserName: "Buyer B", Quantity: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Decide("C1", in.ID, "maybe"); err != domain.ErrInvalidStatus {
		t.Fatalf("want ErrInvalidStatus, got %v", err)
	}
	var status string
	if err := db.Get(&status, `SELECT status FROM interests WHERE id=?`, in.ID); err != nil {
		t.Fatal(err)
	}
	if status != "pending" || cropQty(t, db, "C1") != 100 {
		t.Fatalf("invalid status must not mutate anything: status=%s", status)
	}
}

func TestInterestFlow_QuantityFloor(t *testing.T) {
	db, svc := newInterestFixture(t)

	// oversubscription at submit time
	if _, err := svc.Submit("C1", services.InterestInput{
		UserEmail: "b@x.com", UserName: "Buyer B", Quantity: 150,
	}); err != domain.ErrInsufficientQuantity {
		t.Fatalf("want ErrInsufficientQuantity at submit, got %v", err)
	}

	// two buyers whose combined requests exceed stock
	first, err := svc.Submit("C1", services.InterestInput{
		UserEmail: "b@x.com", UserName: "Buyer B", Quantity: 60,
	})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Submit("C1", services.InterestInput{
		UserEmail: "c@x.com", UserName: "Buyer C", Quantity: 60,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Decide("C1", first.ID, "accepted"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Decide("C1", second.ID, "accepted"); err != domain.ErrInsufficientQuantity {
		t.Fatalf("want ErrInsufficientQuantity at decide, got %v", err)
	}

	// the failed decision rolled back entirely: status still pending, qty 40
	var status string
	if err := db.Get(&status, `SELECT status FROM interests WHERE id=?`, second.ID); err != nil {
		t.Fatal(err)
	}
	if status != "pending" {
		t.Fatalf("failed acceptance must roll back the status flip, got %s", status)
	}
	if qty := cropQty(t, db, "C1"); qty != 40 {
		t.Fatalf("want quantity=40, got %d", qty)
	}
}

func TestInterestFlow_MyInterestsProjection(t *testing.T) {
	db, svc := newInterestFixture(t)

	if _, err := db.Exec(`
	  INSERT INTO crops(id,name,type,price_per_unit,unit,quantity,location,owner_name,owner_email,created_at)
	  VALUES ('C2','Red Potato','Vegetable',18.00,'kg',50,'Bogura','Owner D','d@x.com','2024-01-02 00:00:00')
	`); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Submit("C1", services.InterestInput{
		UserEmail: "b@x.com", UserName: "Buyer B", Quantity: 10, Message: "hello",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Submit("C2", services.InterestInput{
		UserEmail: "b@x.com", UserName: "Buyer B", Quantity: 5,
	}); err != nil {
		t.Fatal(err)
	}
	// another buyer's interest must never surface for b@x.com
	if _, err := svc.Submit("C2", services.InterestInput{
		UserEmail: "c@x.com", UserName: "Buyer C", Quantity: 7,
	}); err != nil {
		t.Fatal(err)
	}

	views, err := svc.MyInterests("b@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 2 {
		t.Fatalf("want one row per crop, got %+v", views)
	}
	seen := map[string]domain.InterestView{}
	for _, v := range views {
		if seen[v.CropID].CropID != "" {
			t.Fatalf("crop %s duplicated in projection", v.CropID)
		}
		seen[v.CropID] = v
	}
	if v := seen["C1"]; v.CropName != "Aman Rice" || v.OwnerName != "Owner A" || v.Quantity != 10 || v.Message != "hello" || v.Status != "pending" {
		t.Fatalf("bad C1 projection: %+v", v)
	}
	if v := seen["C2"]; v.Quantity != 5 {
		t.Fatalf("C2 row must carry b@x.com's own quantity, got %+v", v)
	}
}

package repos_test

import (
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"cellardoor/internal/repos"
)

func stockdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
	  INSERT INTO products(product_id,name,price,brand,category_id) VALUES
	    ('P1','Test Cabernet',100,'Testico','red-wine'),
	    ('P2','Test Merlot',50,'Testico','red-wine');
	  INSERT INTO product_stocks(product_id,quantity) VALUES ('P1',3);
	`); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestStockSnapshotSkipsMissingRecords(t *testing.T) {
	db := stockdb(t)
	r := repos.NewStockRepo(db)

	snap, err := r.Snapshot([]string{"P1", "P2", "ghost"})
	if err != nil {
		t.Fatal(err)
	}
	if len(snap) != 1 || snap["P1"] != 3 {
		t.Fatalf("bad snapshot: %+v", snap)
	}
	if _, ok := snap["P2"]; ok {
		t.Fatal("P2 has no stock record and must be absent")
	}
}

func TestStockQuantityForMissingRecord(t *testing.T) {
	db := stockdb(t)
	r := repos.NewStockRepo(db)

	if _, err := r.QuantityFor("P2"); err != sql.ErrNoRows {
		t.Fatalf("want sql.ErrNoRows, got %v", err)
	}
}

// The decrement only applies when enough stock exists at write time; an
// unsatisfied guard reports zero rows affected rather than going negative.
func TestStockDecrementTxIsGuarded(t *testing.T) {
	db := stockdb(t)
	r := repos.NewStockRepo(db)

	tx, err := db.Beginx()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = tx.Rollback() }()

	ok, err := r.DecrementTx(tx, "P1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("decrement of 5 against stock 3 must not apply")
	}

	ok, err = r.DecrementTx(tx, "P1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("decrement of 3 against stock 3 should apply")
	}

	// now at zero, even a decrement of 1 must be refused
	ok, err = r.DecrementTx(tx, "P1", 1)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("stock must never go negative")
	}

	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	qty, err := r.QuantityFor("P1")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 0 {
		t.Fatalf("want qty=0, got %d", qty)
	}
}

func TestStockUpsertCreatesAndReplaces(t *testing.T) {
	db := stockdb(t)
	r := repos.NewStockRepo(db)

	if err := r.Upsert("P2", 7); err != nil {
		t.Fatal(err)
	}
	if qty, _ := r.QuantityFor("P2"); qty != 7 {
		t.Fatalf("want 7, got %d", qty)
	}
	if err := r.Upsert("P2", 2); err != nil {
		t.Fatal(err)
	}
	if qty, _ := r.QuantityFor("P2"); qty != 2 {
		t.Fatalf("want 2, got %d", qty)
	}
}

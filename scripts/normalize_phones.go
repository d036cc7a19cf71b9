package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"wedding-planner/internal/utils"
)

// One-off backfill: rewrites guest and vendor phone numbers already in the
// database into E.164 form. New records are normalized on the way in, this
// repairs rows that predate that.
func main() {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./wedding.db"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"guests", "vendors"} {
		if err := normalizeTable(db, table); err != nil {
			log.Fatalf("Failed to normalize %s: %v", table, err)
		}
	}
}

func normalizeTable(db *sql.DB, table string) error {
	rows, err := db.Query("SELECT id, phone FROM " + table)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	type record struct {
		id    int64
		phone string
	}

	var records []record
	for rows.Next() {
		var rec record
		if err := rows.Scan(&rec.id, &rec.phone); err != nil {
			log.Printf("Failed to scan row: %v", err)
			continue
		}
		if rec.phone != "" {
			records = append(records, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	fmt.Printf("Found %d %s rows with a phone number\n", len(records), table)

	updated := 0
	failed := 0
	for _, rec := range records {
		normalized, err := utils.NormalizePhoneNumber(rec.phone)
		if err != nil {
			log.Printf("Failed to normalize phone %q (ID: %d): %v", rec.phone, rec.id, err)
			failed++
			continue
		}

		if normalized != rec.phone {
			_, err := db.Exec("UPDATE "+table+" SET phone = ? WHERE id = ?", normalized, rec.id)
			if err != nil {
				log.Printf("Failed to update phone for ID %d: %v", rec.id, err)
				failed++
				continue
			}
			fmt.Printf("Updated %s ID %d: %q -> %q\n", table, rec.id, rec.phone, normalized)
			updated++
		}
	}

	fmt.Printf("%s summary: total %d, updated %d, failed %d, unchanged %d\n",
		table, len(records), updated, failed, len(records)-updated-failed)
	return nil
}

// Package catalog loads the address location catalog from Postgres and
// holds it as an immutable, append-only slice, the Go port of the reference
// implementation's location_store_load.
package catalog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/address-parser/internal/addrmodel"
	"github.com/address-parser/internal/parser"
)

// Catalog is an immutable snapshot of every known location, built once at
// startup and never mutated in place — a reload produces a new Catalog.
type Catalog struct {
	records []addrmodel.LocationRecord
	byID    map[string]int
	version string
}

const loadQuery = `SELECT location_id, street, city, state, postal_code FROM locations`

// Load connects to dsn, streams every row of the locations table, and
// returns the resulting Catalog. Rows with any NULL column are skipped.
func Load(ctx context.Context, dsn string) (*Catalog, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, loadQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c := &Catalog{byID: make(map[string]int)}
	hasher := sha256.New()

	for rows.Next() {
		var id, street, city, state, postal sql.NullString
		if err := rows.Scan(&id, &street, &city, &state, &postal); err != nil {
			return nil, err
		}
		if !id.Valid || !street.Valid || !city.Valid || !state.Valid || !postal.Valid {
			continue
		}

		// Canonical postal code: digits only, plus a single '-' after the
		// fifth digit.
		var canonPostal strings.Builder
		digits, hyphen := 0, false
		for _, r := range postal.String {
			switch {
			case r >= '0' && r <= '9':
				canonPostal.WriteRune(r)
				digits++
			case r == '-' && !hyphen && digits >= 5:
				canonPostal.WriteRune(r)
				hyphen = true
			}
		}

		rec := addrmodel.LocationRecord{
			LocationID: strings.ToUpper(id.String),
			Street:     strings.ToUpper(street.String),
			City:       strings.ToUpper(city.String),
			State:      strings.ToUpper(state.String),
			PostalCode: canonPostal.String(),
		}
		composite := fmt.Sprintf("%s, %s, %s %s", rec.Street, rec.City, rec.State, rec.PostalCode)
		components, err := parser.Parse(composite)
		if err == nil {
			rec.Components = components
		}

		fmt.Fprintf(hasher, "%s|%s|%s|%s|%s\n", rec.LocationID, rec.Street, rec.City, rec.State, rec.PostalCode)
		c.byID[rec.LocationID] = len(c.records)
		c.records = append(c.records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	c.version = hex.EncodeToString(hasher.Sum(nil))
	return c, nil
}

// NewForTest builds a Catalog directly from already-parsed records, without
// a database round-trip. Used by package tests.
func NewForTest(records []addrmodel.LocationRecord) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(records))}
	hasher := sha256.New()
	for _, rec := range records {
		fmt.Fprintf(hasher, "%s|%s|%s|%s|%s\n", rec.LocationID, rec.Street, rec.City, rec.State, rec.PostalCode)
		c.byID[strings.ToUpper(rec.LocationID)] = len(c.records)
		c.records = append(c.records, rec)
	}
	c.version = hex.EncodeToString(hasher.Sum(nil))
	return c
}

// Records returns the full, immutable set of catalog entries.
func (c *Catalog) Records() []addrmodel.LocationRecord {
	return c.records
}

// GetByID looks up a single record through the id index built at load
// time. The id is matched case-insensitively.
func (c *Catalog) GetByID(id string) (*addrmodel.LocationRecord, bool) {
	idx, ok := c.byID[strings.ToUpper(id)]
	if !ok {
		return nil, false
	}
	return &c.records[idx], true
}

// Version returns the load-time content hash, used to invalidate the result
// cache whenever the catalog is reloaded.
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of loaded records.
func (c *Catalog) Len() int {
	return len(c.records)
}

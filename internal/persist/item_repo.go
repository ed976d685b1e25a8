package persist

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/vanatools/vanainv/internal/data"
)

type ItemRepo struct {
	store *Store
}

func NewItemRepo(s *Store) *ItemRepo {
	return &ItemRepo{store: s}
}

// LoadAll returns every dictionary entry ordered by id.
func (r *ItemRepo) LoadAll(ctx context.Context) ([]data.ItemInfo, error) {
	rows, err := r.store.DB.QueryContext(ctx,
		`SELECT id, name_ja, name_en, category, type, skill, slots FROM items ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var result []data.ItemInfo
	for rows.Next() {
		var (
			id                       int64
			nameJA, nameEN, category sql.NullString
			itemType, skill, slots   sql.NullInt64
		)
		if err := rows.Scan(&id, &nameJA, &nameEN, &category, &itemType, &skill, &slots); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if id < 0 || id > 0xFFFF {
			continue
		}
		result = append(result, data.ItemInfo{
			ItemID:   uint16(id),
			NameJA:   nameJA.String,
			NameEN:   nameEN.String,
			Category: category.String,
			Type:     int(itemType.Int64),
			Skill:    nullableInt(skill),
			Slots:    nullableInt(slots),
		})
	}
	return result, rows.Err()
}

// ReplaceAll deletes every entry and inserts entries in one transaction.
// Duplicate ids keep the last entry.
func (r *ItemRepo) ReplaceAll(ctx context.Context, entries []data.ItemInfo) (int, error) {
	byID := make(map[uint16]data.ItemInfo, len(entries))
	for _, e := range entries {
		byID[e.ItemID] = e
	}
	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	tx, err := r.store.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return 0, fmt.Errorf("clear items: %w", err)
	}

	d := r.store.dialect
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO items (id, name_ja, name_en, category, type, skill, slots) VALUES (%s, %s, %s, %s, %s, %s, %s)`,
		d.placeholder(1), d.placeholder(2), d.placeholder(3), d.placeholder(4),
		d.placeholder(5), d.placeholder(6), d.placeholder(7),
	))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range ids {
		e := byID[uint16(id)]
		if _, err := stmt.ExecContext(ctx,
			id, e.NameJA, e.NameEN, e.Category, e.Type, nullInt(e.Skill), nullInt(e.Slots),
		); err != nil {
			return 0, fmt.Errorf("insert item %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(ids), nil
}

// SetMetadata upserts key/value rows of the metadata table.
func (r *ItemRepo) SetMetadata(ctx context.Context, kv map[string]string) error {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := r.store.dialect
	del := fmt.Sprintf(`DELETE FROM metadata WHERE key = %s`, d.placeholder(1))
	ins := fmt.Sprintf(`INSERT INTO metadata (key, value) VALUES (%s, %s)`, d.placeholder(1), d.placeholder(2))

	tx, err := r.store.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, del, k); err != nil {
			return fmt.Errorf("metadata %s: %w", k, err)
		}
		if _, err := tx.ExecContext(ctx, ins, k, kv[k]); err != nil {
			return fmt.Errorf("metadata %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// Metadata returns all metadata rows.
func (r *ItemRepo) Metadata(ctx context.Context) (map[string]string, error) {
	rows, err := r.store.DB.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return nil, fmt.Errorf("query metadata: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var k string
		var v sql.NullString
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v.String
	}
	return out, rows.Err()
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

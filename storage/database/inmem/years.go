package inmemdb

import "github.com/trezcool/schooladmin/core/year"

func (db *DB) Years() []year.Year {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.years.sorted(nil)
}

func (db *DB) CurrentYear() (year.Year, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, y := range db.years.sorted(nil) {
		if y.IsCurrent {
			return y, nil
		}
	}
	return year.Year{}, ErrNotFound
}

// CreateYear adds a year. The first year ever created becomes the current one.
func (db *DB) CreateYear(label string) (year.Year, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, y := range db.years.rows {
		if y.Label == label {
			return year.Year{}, ErrYearExists
		}
	}
	y := year.Year{ID: db.years.nextID(), Label: label, IsCurrent: len(db.years.rows) == 0}
	db.years.rows[y.ID] = y
	return y, nil
}

// SetCurrentYear makes id the only current year.
func (db *DB) SetCurrentYear(id int) (year.Year, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.years.rows[id]; !ok {
		return year.Year{}, ErrNotFound
	}
	for yid, y := range db.years.rows {
		y.IsCurrent = yid == id
		db.years.rows[yid] = y
	}
	return db.years.rows[id], nil
}

func (db *DB) DeleteYear(id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.years.rows[id]; !ok {
		return ErrNotFound
	}
	delete(db.years.rows, id)
	return nil
}

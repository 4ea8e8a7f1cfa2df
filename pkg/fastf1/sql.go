package fastf1

import (
	"database/sql"
	"fmt"
)

func buildCreateResponsesTable() string {
	return `CREATE TABLE IF NOT EXISTS responses (
		url TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		fetchedat INTEGER NOT NULL);`
}

func buildSelectResponseCommand(url string) (string, func(*sql.Rows) ([]byte, error)) {
	return fmt.Sprintf(`SELECT body FROM responses WHERE url = '%s'`, url), processSelectResponseRows
}

func processSelectResponseRows(rows *sql.Rows) ([]byte, error) {
	defer rows.Close()

	// only can be one row
	if rows.Next() {
		var body []byte
		err := rows.Scan(&body)
		if err != nil {
			return nil, err
		}
		return body, nil
	}
	return nil, rows.Err()
}

func buildUpsertResponseCommand() string {
	return `INSERT OR REPLACE INTO responses (url, body, fetchedat) VALUES (?, ?, ?)`
}

package fastf1

import (
	"database/sql"
	"log"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Cache stores raw gateway responses in a local sqlite file so repeated
// loads of the same session do not hit the network. Entries never expire;
// session data is immutable once the event is over.
type Cache struct {
	db *sql.DB
	mu sync.Mutex
}

func NewCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Printf("error opening cache database: %s\n", err)
		return nil, err
	}

	_, err = db.Exec(buildCreateResponsesTable())
	if err != nil {
		log.Printf("error init cache database: %s\n", err)
		return nil, err
	}

	return &Cache{
		db: db,
		mu: sync.Mutex{},
	}, nil
}

func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.db.Close()
}

func (c *Cache) Get(url string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	query, read := buildSelectResponseCommand(url)
	rows, err := c.db.Query(query)
	if err != nil {
		log.Printf("error querying cache: %s\n", err)
		return nil, false
	}
	body, err := read(rows)
	if err != nil {
		log.Printf("error reading cache row: %s\n", err)
		return nil, false
	}
	return body, body != nil
}

func (c *Cache) Put(url string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stmt := buildUpsertResponseCommand()
	_, err := c.db.Exec(stmt, url, body, time.Now().Unix())
	if err != nil {
		log.Printf("error updating cache: %s\n", err)
		return err
	}
	return nil
}

package config

const (
	// DefaultDatabaseURL is the sqlite file used when DATABASE_URL is not set
	DefaultDatabaseURL = "./audiobook-store.db"

	// DefaultTasksDatabasePath is used for the task queue when the store runs on PostgreSQL
	DefaultTasksDatabasePath = "./audiobook-store-tasks.db"
)

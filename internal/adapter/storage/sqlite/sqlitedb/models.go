package sqlitedb

type Job struct {
	ID        string
	Status    string
	Document  string
	CreatedAt int64
	ExpiresAt int64
}

type JobQueue struct {
	Seq        int64
	JobID      string
	EnqueuedAt int64
}

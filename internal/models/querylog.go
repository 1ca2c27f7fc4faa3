package models

// QueryDateLayout is the timestamp format used by the search-request log.
const QueryDateLayout = "02.01.2006 15:04:05"

// QueryRecord is one logged search request.
type QueryRecord struct {
	ID     int    `json:"request_id"`
	UserID string `json:"user_id"`
	Query  string `json:"request"`
	Date   string `json:"date"`
}

// QueryLog is the durable state of the search-request log.
type QueryLog struct {
	Records []QueryRecord `json:"requests"`
	NextID  int           `json:"next_request_id"`
}

// Clone returns a deep copy of the log.
func (q QueryLog) Clone() QueryLog {
	cp := q
	if q.Records != nil {
		cp.Records = make([]QueryRecord, len(q.Records))
		copy(cp.Records, q.Records)
	}
	return cp
}

package schema

import (
	"encoding/json"
	"time"
)

// Person is a (display name, email) pair as recorded by the VCS.
type Person struct {
	Name  string
	Email string
}

// Revision is one raw commit fact as extracted from the repository,
// before normalization. Timestamps are UTC.
type Revision struct {
	Hash           string
	Author         Person
	AuthoredAt     time.Time
	Committer      Person
	CommittedAt    time.Time
	Message        string
	Encoding       string
	Signature      string
	ParentHashes   []string
	CoAuthorEmails []string
}

// Ref is a nullable foreign key into another metric table. A nil Ref
// means the referenced entity could not be resolved in this run.
type Ref = *int64

// RefList is an ordered collection of nullable references. It is stored
// as a JSON array; an empty source list normalizes to [null] so the
// persisted column is never an empty array.
type RefList []Ref

// MarshalText encodes the list as a JSON array, e.g. "[1,null,3]".
func (rl RefList) MarshalText() ([]byte, error) {
	refs := rl
	if len(refs) == 0 {
		refs = RefList{nil}
	}
	return json.Marshal([]Ref(refs))
}

// ParseRefList decodes the JSON form written by MarshalText.
func ParseRefList(s string) (RefList, error) {
	var refs []Ref
	if err := json.Unmarshal([]byte(s), &refs); err != nil {
		return nil, err
	}
	return RefList(refs), nil
}

// CommitHashRow is one row of the commit_hashes table.
type CommitHashRow struct {
	ID         int64  `json:"id"`
	CommitHash string `json:"commit_hash"`
}

// AuthorRow is one row of the authors table, deduplicated by email.
type AuthorRow struct {
	ID          int64  `json:"id"`
	Author      string `json:"author"`
	AuthorEmail string `json:"author_email"`
}

// CommitterRow is one row of the committers table, deduplicated by email.
type CommitterRow struct {
	ID             int64  `json:"id"`
	Committer      string `json:"committer"`
	CommitterEmail string `json:"committer_email"`
}

// CommitLogRow is one row of the commit_logs table. All *_ID fields hold
// store-assigned keys of rows written earlier in the same run (or, for
// parents, a previous run).
type CommitLogRow struct {
	ID            int64     `json:"id"`
	CommitHashID  int64     `json:"commit_hash_id"`
	AuthorID      int64     `json:"author_id"`
	CommitterID   int64     `json:"committer_id"`
	CoAuthorIDs   RefList   `json:"co_author_ids"`
	ParentHashIDs RefList   `json:"parent_hash_ids"`
	AuthoredAt    time.Time `json:"authored_at"`
	CommittedAt   time.Time `json:"committed_at"`
	Encoding      string    `json:"encoding"`
	Message       string    `json:"message"`
	Signature     string    `json:"signature"`
}

// ReleaseRow is one row of the releases table. Tags whose target commit
// is not part of the current batch are dropped before this row exists.
type ReleaseRow struct {
	ID           int64 `json:"id"`
	CommitHashID int64 `json:"commit_hash_id"`
}

package core

import (
	"sort"

	"github.com/huangsam/repopulse/schema"
)

// FilterSeenRevisions drops revisions whose hash was persisted by a
// previous run, preserving oldest-first order. Running the normalizer
// twice over an unchanged history therefore yields an empty batch the
// second time.
func FilterSeenRevisions(revs []schema.Revision, known map[string]int64) []schema.Revision {
	fresh := make([]schema.Revision, 0, len(revs))
	for _, rev := range revs {
		if _, ok := known[rev.Hash]; ok {
			continue
		}
		fresh = append(fresh, rev)
	}
	return fresh
}

// UniqueCommitHashes returns the batch's commit hashes in first-seen order.
func UniqueCommitHashes(revs []schema.Revision) []string {
	seen := make(map[string]struct{}, len(revs))
	hashes := make([]string, 0, len(revs))
	for _, rev := range revs {
		if _, ok := seen[rev.Hash]; ok {
			continue
		}
		seen[rev.Hash] = struct{}{}
		hashes = append(hashes, rev.Hash)
	}
	return hashes
}

// UniqueAuthors collects (name, email) pairs deduplicated by email. The
// first name seen for an email wins, later spellings are discarded.
func UniqueAuthors(revs []schema.Revision) []schema.AuthorRow {
	seen := make(map[string]struct{}, len(revs))
	rows := make([]schema.AuthorRow, 0, len(revs))
	for _, rev := range revs {
		if _, ok := seen[rev.Author.Email]; ok {
			continue
		}
		seen[rev.Author.Email] = struct{}{}
		rows = append(rows, schema.AuthorRow{
			Author:      rev.Author.Name,
			AuthorEmail: rev.Author.Email,
		})
	}
	return rows
}

// UniqueCommitters collects (name, email) pairs deduplicated by email,
// keep-first, same policy as UniqueAuthors.
func UniqueCommitters(revs []schema.Revision) []schema.CommitterRow {
	seen := make(map[string]struct{}, len(revs))
	rows := make([]schema.CommitterRow, 0, len(revs))
	for _, rev := range revs {
		if _, ok := seen[rev.Committer.Email]; ok {
			continue
		}
		seen[rev.Committer.Email] = struct{}{}
		rows = append(rows, schema.CommitterRow{
			Committer:      rev.Committer.Name,
			CommitterEmail: rev.Committer.Email,
		})
	}
	return rows
}

// BuildCommitLogs rewrites each revision's literal hash and identity
// fields into the keys the store assigned when the referenced tables
// were inserted. hashIDs must cover every hash in revs and may also
// cover hashes from earlier runs so parents across batch boundaries
// resolve. Parent hashes and co-author emails that cannot be resolved
// become null references rather than errors.
func BuildCommitLogs(revs []schema.Revision, hashIDs, authorIDs, committerIDs map[string]int64) []schema.CommitLogRow {
	rows := make([]schema.CommitLogRow, 0, len(revs))
	for _, rev := range revs {
		row := schema.CommitLogRow{
			CommitHashID: hashIDs[rev.Hash],
			AuthorID:     authorIDs[rev.Author.Email],
			CommitterID:  committerIDs[rev.Committer.Email],
			AuthoredAt:   rev.AuthoredAt.UTC(),
			CommittedAt:  rev.CommittedAt.UTC(),
			Encoding:     rev.Encoding,
			Message:      rev.Message,
			Signature:    rev.Signature,
		}
		row.CoAuthorIDs = resolveRefs(rev.CoAuthorEmails, authorIDs)
		row.ParentHashIDs = resolveRefs(rev.ParentHashes, hashIDs)
		rows = append(rows, row)
	}
	return rows
}

// resolveRefs maps each key through ids, producing a null reference for
// keys the table does not contain.
func resolveRefs(keys []string, ids map[string]int64) schema.RefList {
	refs := make(schema.RefList, 0, len(keys))
	for _, key := range keys {
		if id, ok := ids[key]; ok {
			ref := id
			refs = append(refs, &ref)
		} else {
			refs = append(refs, nil)
		}
	}
	return refs
}

// BuildReleases resolves tag targets against the batch's commit hash
// keys. Tags whose target is not in the batch (dangling tags included)
// are dropped silently. Rows come out sorted by tag name so repeated
// runs produce the same order.
func BuildReleases(tagTargets map[string]string, hashIDs map[string]int64) []schema.ReleaseRow {
	names := make([]string, 0, len(tagTargets))
	for name := range tagTargets {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]schema.ReleaseRow, 0, len(names))
	for _, name := range names {
		id, ok := hashIDs[tagTargets[name]]
		if !ok {
			continue
		}
		rows = append(rows, schema.ReleaseRow{CommitHashID: id})
	}
	return rows
}

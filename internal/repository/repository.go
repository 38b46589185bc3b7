// Package repository contains the CouchDB-backed stores. Each collection
// lives in its own database; documents are keyed "<collection>:<uuid>".
package repository

import (
	"context"
	"fmt"

	"streamhub-server/internal/apperr"

	"github.com/go-kivik/kivik/v4"
)

// Mango returns 25 rows unless told otherwise. Listings fetch the full
// filtered set because the pagination layer reports its total size.
const fetchAllLimit = 1_000_000

func exists[T any](_ T, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if apperr.KindOf(err) == apperr.NotFound {
		return false, nil
	}
	return false, err
}

// deleteDoc removes a document by id, resolving the current revision first.
func deleteDoc(client *kivik.Client, dbName, docID, label string) error {
	db := client.DB(dbName)

	row := db.Get(context.Background(), docID)
	var doc map[string]interface{}
	if err := row.ScanDoc(&doc); err != nil {
		if kivik.HTTPStatus(err) == 404 {
			return apperr.New(apperr.NotFound, fmt.Sprintf("%s not found", label))
		}
		return apperr.Wrap(apperr.Internal, fmt.Sprintf("failed to fetch %s for delete", label), err)
	}

	rev, ok := doc["_rev"].(string)
	if !ok {
		return apperr.New(apperr.Internal, fmt.Sprintf("missing revision on %s document", label))
	}

	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return apperr.Wrap(apperr.Internal, fmt.Sprintf("failed to delete %s", label), err)
	}

	return nil
}

// countDocs runs a selector and counts matches. Mango has no count operator,
// so matching rows are streamed and tallied.
func countDocs(client *kivik.Client, dbName string, selector map[string]interface{}) (int, error) {
	db := client.DB(dbName)

	query := map[string]interface{}{
		"selector": selector,
		"fields":   []string{"_id"},
		"limit":    fetchAllLimit,
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return 0, apperr.Wrap(apperr.Internal, "failed to count documents", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}

	return count, nil
}

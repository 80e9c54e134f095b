package memstore

import (
	"bytes"
	"time"

	"hostel-backoffice/internal/infra"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func duplicate(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindDuplicateKey)
}

func missingParent(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindForeignKeyViolated)
}

func paginate[T any](items []T, page shared.Page) []T {
	page = page.Normalize()
	if page.Offset >= len(items) {
		return []T{}
	}
	end := page.Offset + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Offset:end]
}

func lessID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// newerFirst orders by timestamp descending, ties broken by id.
func newerFirst(ta, tb time.Time, ia, ib uuid.UUID) int {
	if c := tb.Compare(ta); c != 0 {
		return c
	}
	return bytes.Compare(ia[:], ib[:])
}

package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"reqflow/test/infra"
)

// startRepo spins up a disposable database and returns a repository bound to
// it. Skipped under -short.
func startRepo(t *testing.T) (*PGRepository, context.Context) {
	t.Helper()
	if testing.Short() {
		t.Skip("requires docker")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	pg, dsn, err := infra.StartPostgres16(ctx)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := pg.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	pool, err := infra.ApplyMigrations(ctx, dsn)
	if err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	t.Cleanup(pool.Close)

	return NewRepository(pool), ctx
}

func TestReportLifecycle(t *testing.T) {
	repo, ctx := startRepo(t)

	created, err := repo.Create(ctx, CreateParams{
		Requester: "Andi",
		Item:      "Label printer",
		Quantity:  2,
		Branch:    "Surabaya",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != StatusPending {
		t.Fatalf("status = %q, want %q", created.Status, StatusPending)
	}
	if created.CreatedAt == 0 {
		t.Error("created_at not stamped")
	}
	if created.ApprovedBy != nil {
		t.Errorf("approved_by = %q, want nil", *created.ApprovedBy)
	}

	fetched, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched != created {
		t.Errorf("GetByID = %+v, want %+v", fetched, created)
	}

	decided, err := repo.Decide(ctx, created.ID, StatusApproved, "budi")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decided.Status != StatusApproved {
		t.Errorf("status = %q, want %q", decided.Status, StatusApproved)
	}
	if decided.ApprovedBy == nil || *decided.ApprovedBy != "budi" {
		t.Errorf("approved_by = %v, want budi", decided.ApprovedBy)
	}

	// The first transition wins. A second attempt, even with a different
	// outcome, must not touch the row.
	if _, err := repo.Decide(ctx, created.ID, StatusRejected, "sari"); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("second decide err = %v, want ErrAlreadyDecided", err)
	}
	after, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after: %v", err)
	}
	if after.Status != StatusApproved || *after.ApprovedBy != "budi" {
		t.Errorf("row changed by losing decide: %+v", after)
	}

	if _, err := repo.Decide(ctx, created.ID+1000, StatusApproved, "budi"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("decide unknown id err = %v, want ErrNotFound", err)
	}
}

func TestReportListPagination(t *testing.T) {
	repo, ctx := startRepo(t)

	items := []string{"Label printer", "Scanner", "Cash drawer", "Receipt paper", "Barcode reader"}
	for _, item := range items {
		if _, err := repo.Create(ctx, CreateParams{
			Requester: "Andi",
			Item:      item,
			Quantity:  1,
			Branch:    "Sidoarjo",
		}); err != nil {
			t.Fatalf("Create %q: %v", item, err)
		}
	}

	seen := map[int64]bool{}
	for page := 1; page <= 3; page++ {
		reports, total, err := repo.List(ctx, Filters{Page: page, PerPage: 2})
		if err != nil {
			t.Fatalf("List page %d: %v", page, err)
		}
		if total != len(items) {
			t.Errorf("page %d total = %d, want %d", page, total, len(items))
		}
		for _, rep := range reports {
			if seen[rep.ID] {
				t.Errorf("report %d returned on more than one page", rep.ID)
			}
			seen[rep.ID] = true
		}
	}
	if len(seen) != len(items) {
		t.Errorf("pages covered %d reports, want %d", len(seen), len(items))
	}

	// Ordering is newest first within and across pages.
	firstPage, _, err := repo.List(ctx, Filters{Page: 1, PerPage: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i := 1; i < len(firstPage); i++ {
		if firstPage[i].ID > firstPage[i-1].ID {
			t.Errorf("reports out of order: %d before %d", firstPage[i-1].ID, firstPage[i].ID)
		}
	}
}

func TestReportListFilters(t *testing.T) {
	repo, ctx := startRepo(t)

	a, err := repo.Create(ctx, CreateParams{Requester: "Andi", Item: "Label printer", Quantity: 1, Branch: "Surabaya"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := repo.Create(ctx, CreateParams{Requester: "Sari", Item: "Scanner", Quantity: 1, Branch: "Gresik"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Decide(ctx, b.ID, StatusRejected, "budi"); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	reports, total, err := repo.List(ctx, Filters{Query: "printer"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(reports) != 1 || reports[0].ID != a.ID {
		t.Errorf("query filter returned %d/%d, want only report %d", len(reports), total, a.ID)
	}

	// Case-insensitive substring match across requester, item and branch.
	if _, total, err = repo.List(ctx, Filters{Query: "gresik"}); err != nil || total != 1 {
		t.Errorf("branch query total = %d (err %v), want 1", total, err)
	}

	reports, total, err = repo.List(ctx, Filters{Status: StatusRejected})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(reports) != 1 || reports[0].ID != b.ID {
		t.Errorf("status filter returned %d/%d, want only report %d", len(reports), total, b.ID)
	}
}

package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-planner/internal/config"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	cfg := &config.Config{DatabasePath: filepath.Join(t.TempDir(), "test.db")}
	store, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testConn(t *testing.T, store *Store) *Conn {
	t.Helper()
	conn, err := store.Acquire(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	// Open already ran EnsureSchema once; run it again.
	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.EnsureSchema(ctx))

	conn := testConn(t, store)

	events, err := conn.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1, "seed event must be inserted exactly once")
	assert.Equal(t, "Venue Finalisation", events[0].Title)
	assert.Equal(t, "SYSTEM", events[0].CreatedBy)

	categories, err := conn.ListVendorCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, VendorCategories, categories)
}

func TestSeedSkipsNonEmptyTable(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	conn := testConn(t, store)

	_, err := conn.CreateEvent(ctx, Event{Title: "Haldi", Date: "2026-02-01", Time: "10:00"})
	require.NoError(t, err)

	require.NoError(t, store.EnsureSchema(ctx))

	events, err := conn.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2, "non-empty events table must not be re-seeded")
}

func TestEventRoundTrip(t *testing.T) {
	ctx := context.Background()
	conn := testConn(t, testStore(t))

	created, err := conn.CreateEvent(ctx, Event{
		Title:      "Haldi",
		Date:       "2026-02-01",
		Time:       "10:00",
		Notes:      "Morning ceremony",
		AssignedTo: "Samdharsi Kumar",
		Status:     StatusInProgress,
		CreatedBy:  "Vijay",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := conn.GetEventByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, "Haldi", got.Title)
	assert.Equal(t, "2026-02-01", got.Date)
	assert.Equal(t, "10:00", got.Time)
	assert.Equal(t, StatusInProgress, got.Status)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestCreateDefaults(t *testing.T) {
	ctx := context.Background()
	conn := testConn(t, testStore(t))

	e, err := conn.CreateEvent(ctx, Event{Title: "Sangeet", Date: "2026-02-02", Time: "19:00"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, e.Status, "omitted status takes its default")

	g, err := conn.CreateGuest(ctx, Guest{Side: SideBride, Name: "Asha"})
	require.NoError(t, err)
	assert.False(t, g.Visited, "omitted visited defaults to false")
	assert.False(t, g.StayRequired)
	assert.Empty(t, g.RoomNo)
}

func TestEventsOrderedByDateTime(t *testing.T) {
	ctx := context.Background()
	conn := testConn(t, testStore(t))

	_, err := conn.CreateEvent(ctx, Event{Title: "Later", Date: "2026-02-05", Time: "18:00"})
	require.NoError(t, err)
	_, err = conn.CreateEvent(ctx, Event{Title: "Earlier", Date: "2026-01-20", Time: "09:00"})
	require.NoError(t, err)

	events, err := conn.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3) // includes the seed row at 2026-01-25
	assert.Equal(t, "Earlier", events[0].Title)
	assert.Equal(t, "Later", events[2].Title)
}

func TestDeleteIsTerminal(t *testing.T) {
	ctx := context.Background()
	conn := testConn(t, testStore(t))

	e, err := conn.CreateEvent(ctx, Event{Title: "Mehndi", Date: "2026-02-03", Time: "15:00"})
	require.NoError(t, err)

	require.NoError(t, conn.DeleteEvent(ctx, e.ID))

	_, err = conn.GetEventByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	events, err := conn.ListEvents(ctx)
	require.NoError(t, err)
	for _, got := range events {
		assert.NotEqual(t, e.ID, got.ID)
	}

	// A second delete of the same id reports NotFound too.
	assert.ErrorIs(t, conn.DeleteEvent(ctx, e.ID), ErrNotFound)
}

func TestUpdateMissingRecord(t *testing.T) {
	ctx := context.Background()
	conn := testConn(t, testStore(t))

	err := conn.UpdateEvent(ctx, Event{ID: 9999, Title: "Ghost", Date: "2026-01-01", Time: "00:00"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, conn.UpdateGuest(ctx, Guest{ID: 9999, Side: SideGroom, Name: "Ghost"}), ErrNotFound)
}

func TestGuestToggleVisited(t *testing.T) {
	ctx := context.Background()
	conn := testConn(t, testStore(t))

	g, err := conn.CreateGuest(ctx, Guest{Side: SideGroom, Name: "Rahul", Relation: "Friend"})
	require.NoError(t, err)
	require.False(t, g.Visited)

	require.NoError(t, conn.ToggleGuestVisited(ctx, g.ID))
	got, err := conn.GetGuestByID(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, got.Visited)

	require.NoError(t, conn.ToggleGuestVisited(ctx, g.ID))
	got, err = conn.GetGuestByID(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, got.Visited)

	assert.ErrorIs(t, conn.ToggleGuestVisited(ctx, 9999), ErrNotFound)
}

func TestTravelSoftGuestLink(t *testing.T) {
	ctx := context.Background()
	conn := testConn(t, testStore(t))

	g, err := conn.CreateGuest(ctx, Guest{Side: SideBride, Name: "Meera", Relation: "Cousin"})
	require.NoError(t, err)

	tr, err := conn.CreateTravel(ctx, Travel{
		GuestID:        g.ID,
		ArrivalDate:    "2026-02-10",
		ArrivalTime:    "08:30",
		Mode:           "Train",
		RefNo:          "12951",
		PickupRequired: true,
		PickupPerson:   "Tushar Garg",
	})
	require.NoError(t, err)
	assert.Equal(t, "Meera", tr.GuestName)
	assert.Equal(t, StatusPending, tr.Status)

	// Deleting the guest leaves the travel row with a dangling link; the
	// resolved name goes blank but nothing errors.
	require.NoError(t, conn.DeleteGuest(ctx, g.ID))

	records, err := conn.ListTravel(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].GuestName)
	assert.Equal(t, g.ID, records[0].GuestID)
}

func TestPurchaseAmountRoundTrip(t *testing.T) {
	ctx := context.Background()
	conn := testConn(t, testStore(t))

	amount := decimal.RequireFromString("12499.50")
	p, err := conn.CreatePurchase(ctx, Purchase{
		Category: "Jewellery",
		Item:     "Necklace set",
		Amount:   amount,
		Status:   StatusPending,
	})
	require.NoError(t, err)
	assert.True(t, p.Amount.Equal(amount), "stored %s, want %s", p.Amount, amount)

	got, err := conn.GetPurchaseByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(amount))
}

func TestCommercialsTotal(t *testing.T) {
	ctx := context.Background()
	conn := testConn(t, testStore(t))

	_, err := conn.CreateCommercial(ctx, Commercial{
		Category: "Venue", Amount: decimal.NewFromInt(250000), Notes: "Advance paid",
	})
	require.NoError(t, err)
	_, err = conn.CreateCommercial(ctx, Commercial{
		Category: "Catering", Amount: decimal.RequireFromString("125000.25"),
	})
	require.NoError(t, err)

	commercials, err := conn.ListCommercials(ctx)
	require.NoError(t, err)
	total := TotalCommercials(commercials)
	assert.True(t, total.Equal(decimal.RequireFromString("375000.25")), "total %s", total)
}

func TestNoteAndUploadRoundTrip(t *testing.T) {
	ctx := context.Background()
	conn := testConn(t, testStore(t))

	n, err := conn.CreateNote(ctx, Note{
		Category: "Rituals", Title: "Haldi checklist", Content: "Turmeric, flowers", CreatedBy: "Vijay",
	})
	require.NoError(t, err)
	gotNote, err := conn.GetNoteByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n, gotNote)

	u, err := conn.CreateUpload(ctx, Upload{
		Category: "Invites", Title: "Card design", ExternalLink: "https://drive.example/card", UploadedBy: "Samdharsi Kumar",
	})
	require.NoError(t, err)
	gotUpload, err := conn.GetUploadByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, gotUpload)
}

func TestGenericQueryMapping(t *testing.T) {
	ctx := context.Background()
	conn := testConn(t, testStore(t))

	_, err := conn.CreateRoom(ctx, Room{RoomNo: "101", GuestName: "Meera", Checkin: "2026-02-10"})
	require.NoError(t, err)

	rows, err := conn.Query(ctx, `SELECT room_no, guest_name, status FROM rooms WHERE room_no = ?`, "101")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, []string{"room_no", "guest_name", "status"}, rows[0].Columns())
	assert.Equal(t, "101", rows[0].Get("room_no"))
	assert.Equal(t, "Meera", rows[0].Get("guest_name"))
	assert.Equal(t, StatusPending, rows[0].Get("status"))
	assert.Nil(t, rows[0].Get("no_such_column"))
}

func TestExecAffectedRows(t *testing.T) {
	ctx := context.Background()
	conn := testConn(t, testStore(t))

	for _, name := range []string{"A", "B", "C"} {
		_, err := conn.CreateGuest(ctx, Guest{Side: SideBride, Name: name})
		require.NoError(t, err)
	}

	affected, err := conn.Exec(ctx, `UPDATE guests SET relation = ? WHERE side = ?`, "Family", SideBride)
	require.NoError(t, err)
	assert.EqualValues(t, 3, affected)
}

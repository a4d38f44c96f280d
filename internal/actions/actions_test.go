package actions

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"planify-backend/internal/audit"
	"planify-backend/internal/auth"
	"planify-backend/internal/cache"
	"planify-backend/internal/dbtest"
	"planify-backend/internal/models"
	"planify-backend/internal/quota"
	"planify-backend/internal/repo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testImage = "img1|https://thumb|https://full|<a>link</a>|Ada"

type paths struct {
	mu  sync.Mutex
	got []string
}

func (p *paths) Invalidate(_ context.Context, path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, path)
}

func (p *paths) list() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.got...)
}

type billingStub map[string]bool

func (b billingStub) IsUnrestricted(_ context.Context, orgID string) (bool, error) {
	return b[orgID], nil
}

type fixture struct {
	svc   *Service
	cache *paths
	logs  repo.AuditLogRepoInterface
	ctxA  context.Context
	ctxB  context.Context
}

func newFixture(t *testing.T, maxBoards int, pro billingStub) *fixture {
	t.Helper()
	db := dbtest.New(t)
	logs := repo.NewAuditLogRepository(db)
	inv := &paths{}
	svc := &Service{
		Boards:  repo.NewBoardRepository(db),
		Lists:   repo.NewListRepository(db),
		Cards:   repo.NewCardRepository(db),
		Logs:    logs,
		Quota:   quota.NewLedger(repo.NewOrgLimitRepository(db), maxBoards),
		Billing: pro,
		Audit:   audit.NewRecorder(logs),
		Cache:   inv,
	}
	return &fixture{
		svc:   svc,
		cache: inv,
		logs:  logs,
		ctxA:  auth.WithPrincipal(context.Background(), auth.Principal{OrgID: "org_a", UserID: "user_a", UserName: "Ada"}),
		ctxB:  auth.WithPrincipal(context.Background(), auth.Principal{OrgID: "org_b", UserID: "user_b", UserName: "Bob"}),
	}
}

func (f *fixture) board(t *testing.T, title string) *models.Board {
	t.Helper()
	res := f.svc.CreateBoard(f.ctxA, &CreateBoardInput{Title: title, Image: testImage})
	require.True(t, res.OK(), res.Error)
	return res.Data
}

func (f *fixture) list(t *testing.T, boardID uuid.UUID, title string) *models.List {
	t.Helper()
	res := f.svc.CreateList(f.ctxA, &CreateListInput{Title: title, BoardID: boardID.String()})
	require.True(t, res.OK(), res.Error)
	return res.Data
}

func (f *fixture) card(t *testing.T, boardID, listID uuid.UUID, title string) *models.Card {
	t.Helper()
	res := f.svc.CreateCard(f.ctxA, &CreateCardInput{Title: title, BoardID: boardID.String(), ListID: listID.String()})
	require.True(t, res.OK(), res.Error)
	return res.Data
}

func (f *fixture) view(t *testing.T, boardID uuid.UUID) *models.Board {
	t.Helper()
	res := f.svc.BoardView(f.ctxA, &BoardRef{ID: boardID.String()})
	require.True(t, res.OK(), res.Error)
	return res.Data
}

func positions(lists []models.List) map[string]int {
	out := make(map[string]int, len(lists))
	for _, l := range lists {
		out[l.Title] = l.Position
	}
	return out
}

func cardTitles(l models.List) []string {
	out := make([]string, len(l.Cards))
	for i, c := range l.Cards {
		out[i] = fmt.Sprintf("%s@%d", c.Title, c.Position)
	}
	return out
}

func TestUnauthorizedBeforeAnyWork(t *testing.T) {
	f := newFixture(t, 5, nil)

	res := f.svc.CreateBoard(context.Background(), &CreateBoardInput{Title: "Roadmap", Image: testImage})
	assert.Equal(t, KindUnauthorized, res.Kind)
	assert.Equal(t, "Unauthorized", res.Error)

	noUser := auth.WithPrincipal(context.Background(), auth.Principal{OrgID: "org_a"})
	assert.Equal(t, KindUnauthorized, f.svc.ListBoards(noUser).Kind)
	assert.Empty(t, f.cache.list())
}

func TestValidationMessages(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")

	res := f.svc.CreateList(f.ctxA, &CreateListInput{Title: "a", BoardID: b.UUID.String()})
	assert.Equal(t, KindValidation, res.Kind)
	assert.Equal(t, map[string]string{"title": "Title is too short"}, res.FieldErrors)

	res = f.svc.CreateList(f.ctxA, &CreateListInput{BoardID: b.UUID.String()})
	assert.Equal(t, map[string]string{"title": "Title is required"}, res.FieldErrors)

	res = f.svc.CreateList(f.ctxA, &CreateListInput{Title: "Todo", BoardID: "nope"})
	assert.Equal(t, map[string]string{"boardId": "Board id is not a valid id"}, res.FieldErrors)

	upd := f.svc.UpdateBoard(f.ctxA, &UpdateBoardInput{ID: b.UUID.String(), Title: "ab"})
	assert.Equal(t, map[string]string{"title": "Title is too short"}, upd.FieldErrors)

	order := f.svc.UpdateCardOrder(f.ctxA, &UpdateCardOrderInput{
		BoardID: b.UUID.String(),
		Items:   []CardOrderItem{{ID: uuid.NewString(), Position: -1}},
	})
	assert.Equal(t, KindValidation, order.Kind)
	assert.Equal(t, "Position must not be negative", order.FieldErrors["items[0].position"])
	assert.Equal(t, "List id is required", order.FieldErrors["items[0].listId"])

	empty := f.svc.UpdateListOrder(f.ctxA, &UpdateListOrderInput{BoardID: b.UUID.String(), Items: []ListOrderItem{}})
	assert.Equal(t, map[string]string{"items": "Items must not be empty"}, empty.FieldErrors)
}

func TestCreateBoard(t *testing.T) {
	f := newFixture(t, 5, nil)

	b := f.board(t, "Roadmap")
	assert.Equal(t, "org_a", b.OrgID)
	assert.Equal(t, models.BoardImage{ID: "img1", ThumbURL: "https://thumb", FullURL: "https://full", LinkHTML: "<a>link</a>", UserName: "Ada"}, b.Image.Data())
	assert.Equal(t, []string{cache.BoardPath(b.UUID), cache.OrgPath("org_a")}, f.cache.list())

	n, err := f.svc.Quota.CurrentCount(f.ctxA, "org_a")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	logs, err := f.logs.GetEntityLogs(f.ctxA, "org_a", b.UUID, models.EntityBoard, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, `created board "Roadmap"`, audit.Message(logs[0]))
	assert.Equal(t, "user_a", logs[0].UserID)
}

func TestCreateBoardMissingImageParts(t *testing.T) {
	f := newFixture(t, 5, nil)

	res := f.svc.CreateBoard(f.ctxA, &CreateBoardInput{Title: "Roadmap", Image: "img1|thumb||link|Ada"})
	assert.Equal(t, KindValidation, res.Kind)
	assert.Equal(t, "Missing fields. Failed to create board.", res.Error)

	n, err := f.svc.Quota.CurrentCount(f.ctxA, "org_a")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBoardQuota(t *testing.T) {
	f := newFixture(t, 2, nil)
	first := f.board(t, "One")
	f.board(t, "Two")

	res := f.svc.CreateBoard(f.ctxA, &CreateBoardInput{Title: "Three", Image: testImage})
	assert.Equal(t, KindQuotaExceeded, res.Kind)
	assert.Equal(t, quotaExceededMessage, res.Error)

	cp := f.svc.CopyBoard(f.ctxA, &BoardRef{ID: first.UUID.String()})
	assert.Equal(t, KindQuotaExceeded, cp.Kind)

	del := f.svc.DeleteBoard(f.ctxA, &BoardRef{ID: first.UUID.String()})
	require.True(t, del.OK(), del.Error)
	f.board(t, "Three")

	status := f.svc.QuotaStatus(f.ctxA)
	require.True(t, status.OK())
	assert.Equal(t, quota.Status{Count: 2, Max: 2, Remaining: 0}, status.Data)
}

func TestSubscribedTenantSkipsLedger(t *testing.T) {
	f := newFixture(t, 1, billingStub{"org_a": true})
	b := f.board(t, "One")
	f.board(t, "Two")

	n, err := f.svc.Quota.CurrentCount(f.ctxA, "org_a")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.True(t, f.svc.DeleteBoard(f.ctxA, &BoardRef{ID: b.UUID.String()}).OK())
	n, err = f.svc.Quota.CurrentCount(f.ctxA, "org_a")
	require.NoError(t, err)
	assert.Zero(t, n)

	status := f.svc.QuotaStatus(f.ctxA)
	assert.True(t, status.Data.Unlimited)
}

func TestOtherTenantGetsNotFound(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	l := f.list(t, b.UUID, "Todo")
	c := f.card(t, b.UUID, l.UUID, "Write")

	assert.Equal(t, KindNotFound, f.svc.BoardView(f.ctxB, &BoardRef{ID: b.UUID.String()}).Kind)
	assert.Equal(t, KindNotFound, f.svc.UpdateBoard(f.ctxB, &UpdateBoardInput{ID: b.UUID.String(), Title: "Mine"}).Kind)
	assert.Equal(t, "Board not found", f.svc.CreateList(f.ctxB, &CreateListInput{Title: "Todo", BoardID: b.UUID.String()}).Error)
	assert.Equal(t, "List not found", f.svc.CreateCard(f.ctxB, &CreateCardInput{Title: "Hi", BoardID: b.UUID.String(), ListID: l.UUID.String()}).Error)
	assert.Equal(t, KindNotFound, f.svc.GetCard(f.ctxB, &CardLookup{ID: c.UUID.String()}).Kind)
	assert.Equal(t, KindNotFound, f.svc.DeleteCard(f.ctxB, &CardRef{ID: c.UUID.String(), BoardID: b.UUID.String()}).Kind)
	assert.Equal(t, KindNotFound, f.svc.CopyList(f.ctxB, &ListRef{ID: l.UUID.String(), BoardID: b.UUID.String()}).Kind)
}

func TestListLifecycle(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	todo := f.list(t, b.UUID, "Todo")
	doing := f.list(t, b.UUID, "Doing")
	assert.Equal(t, 1, todo.Position)
	assert.Equal(t, 2, doing.Position)

	f.card(t, b.UUID, todo.UUID, "a")
	f.card(t, b.UUID, todo.UUID, "b")

	cp := f.svc.CopyList(f.ctxA, &ListRef{ID: todo.UUID.String(), BoardID: b.UUID.String()})
	require.True(t, cp.OK(), cp.Error)
	assert.Equal(t, "Todo - Copy", cp.Data.Title)
	assert.Equal(t, 3, cp.Data.Position)

	upd := f.svc.UpdateList(f.ctxA, &UpdateListInput{ID: doing.UUID.String(), BoardID: b.UUID.String(), Title: "In progress"})
	require.True(t, upd.OK(), upd.Error)

	del := f.svc.DeleteList(f.ctxA, &ListRef{ID: todo.UUID.String(), BoardID: b.UUID.String()})
	require.True(t, del.OK(), del.Error)

	v := f.view(t, b.UUID)
	assert.Equal(t, map[string]int{"In progress": 2, "Todo - Copy": 3}, positions(v.Lists))
	require.Len(t, v.Lists, 2)
	assert.Equal(t, []string{"a@1", "b@2"}, cardTitles(v.Lists[1]))

	page := f.svc.OrgLogs(f.ctxA, &AuditPageInput{})
	require.True(t, page.OK())
	assert.Equal(t, int64(8), page.Data.Total)
	assert.Equal(t, `deleted list "Todo"`, page.Data.Items[0].Message)
}

func TestUpdateListOrder(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	a := f.list(t, b.UUID, "A")
	c := f.list(t, b.UUID, "C")
	before := len(f.cache.list())

	res := f.svc.UpdateListOrder(f.ctxA, &UpdateListOrderInput{
		BoardID: b.UUID.String(),
		Items:   []ListOrderItem{{ID: c.UUID.String(), Position: 0}, {ID: a.UUID.String(), Position: 1}},
	})
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, map[string]int{"C": 0, "A": 1}, positions(res.Data))
	assert.Equal(t, []string{cache.BoardPath(b.UUID)}, f.cache.list()[before:])

	logs, err := f.logs.GetEntityLogs(f.ctxA, "org_a", a.UUID, models.EntityList, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 1, "reorder is not audited")
}

func TestUpdateListOrderRejectsInconsistentSnapshot(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	a := f.list(t, b.UUID, "A")
	c := f.list(t, b.UUID, "C")

	res := f.svc.UpdateListOrder(f.ctxA, &UpdateListOrderInput{
		BoardID: b.UUID.String(),
		Items:   []ListOrderItem{{ID: a.UUID.String(), Position: 0}, {ID: a.UUID.String(), Position: 1}},
	})
	assert.Equal(t, KindValidation, res.Kind)
	assert.Equal(t, "Items contain a duplicate id", res.FieldErrors["items"])

	res = f.svc.UpdateListOrder(f.ctxA, &UpdateListOrderInput{
		BoardID: b.UUID.String(),
		Items:   []ListOrderItem{{ID: a.UUID.String(), Position: 0}, {ID: c.UUID.String(), Position: 0}},
	})
	assert.Equal(t, "Items contain a duplicate position", res.FieldErrors["items"])
}

func TestUpdateListOrderForeignIDRollsBack(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	a := f.list(t, b.UUID, "A")

	resB := f.svc.CreateBoard(f.ctxB, &CreateBoardInput{Title: "Theirs", Image: testImage})
	require.True(t, resB.OK())
	foreign := f.svc.CreateList(f.ctxB, &CreateListInput{Title: "X", BoardID: resB.Data.UUID.String()})
	require.True(t, foreign.OK())
	before := len(f.cache.list())

	res := f.svc.UpdateListOrder(f.ctxA, &UpdateListOrderInput{
		BoardID: b.UUID.String(),
		Items:   []ListOrderItem{{ID: a.UUID.String(), Position: 7}, {ID: foreign.Data.UUID.String(), Position: 0}},
	})
	assert.Equal(t, KindNotFound, res.Kind)
	assert.Equal(t, before, len(f.cache.list()), "failed commands do not invalidate")
	assert.Equal(t, map[string]int{"A": 1}, positions(f.view(t, b.UUID).Lists))
}

func TestMoveList(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	a := f.list(t, b.UUID, "A")
	f.list(t, b.UUID, "B")
	f.list(t, b.UUID, "C")

	res := f.svc.MoveList(f.ctxA, &MoveListInput{ID: a.UUID.String(), BoardID: b.UUID.String(), ToIndex: 2})
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, map[string]int{"B": 0, "C": 1, "A": 2}, positions(f.view(t, b.UUID).Lists))

	before := len(f.cache.list())
	res = f.svc.MoveList(f.ctxA, &MoveListInput{ID: a.UUID.String(), BoardID: b.UUID.String(), ToIndex: 9})
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, before, len(f.cache.list()), "same-slot drop writes nothing")

	res = f.svc.MoveList(f.ctxA, &MoveListInput{ID: uuid.NewString(), BoardID: b.UUID.String()})
	assert.Equal(t, KindNotFound, res.Kind)
}

func TestMoveCardAcrossLists(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	todo := f.list(t, b.UUID, "Todo")
	done := f.list(t, b.UUID, "Done")
	x := f.card(t, b.UUID, todo.UUID, "x")
	f.card(t, b.UUID, todo.UUID, "y")
	f.card(t, b.UUID, todo.UUID, "z")
	f.card(t, b.UUID, done.UUID, "d")

	res := f.svc.MoveCard(f.ctxA, &MoveCardInput{ID: x.UUID.String(), BoardID: b.UUID.String(), ListID: done.UUID.String(), ToIndex: 1})
	require.True(t, res.OK(), res.Error)
	assert.Len(t, res.Data, 4)

	v := f.view(t, b.UUID)
	assert.Equal(t, []string{"y@0", "z@1"}, cardTitles(v.Lists[0]))
	assert.Equal(t, []string{"d@0", "x@1"}, cardTitles(v.Lists[1]))
}

func TestMoveCardWithinList(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	todo := f.list(t, b.UUID, "Todo")
	f.card(t, b.UUID, todo.UUID, "x")
	f.card(t, b.UUID, todo.UUID, "y")
	z := f.card(t, b.UUID, todo.UUID, "z")

	res := f.svc.MoveCard(f.ctxA, &MoveCardInput{ID: z.UUID.String(), BoardID: b.UUID.String(), ListID: todo.UUID.String(), ToIndex: 0})
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, []string{"z@0", "x@1", "y@2"}, cardTitles(f.view(t, b.UUID).Lists[0]))
}

func TestMoveCardNoops(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	todo := f.list(t, b.UUID, "Todo")
	x := f.card(t, b.UUID, todo.UUID, "x")
	before := len(f.cache.list())

	res := f.svc.MoveCard(f.ctxA, &MoveCardInput{ID: x.UUID.String(), BoardID: b.UUID.String(), ListID: uuid.NewString()})
	require.True(t, res.OK(), res.Error)

	res = f.svc.MoveCard(f.ctxA, &MoveCardInput{ID: x.UUID.String(), BoardID: b.UUID.String(), ListID: todo.UUID.String()})
	require.True(t, res.OK(), res.Error)

	assert.Equal(t, before, len(f.cache.list()))
	assert.Equal(t, []string{"x@1"}, cardTitles(f.view(t, b.UUID).Lists[0]))
}

func TestUpdateCardOrderCrossList(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	todo := f.list(t, b.UUID, "Todo")
	done := f.list(t, b.UUID, "Done")
	x := f.card(t, b.UUID, todo.UUID, "x")
	y := f.card(t, b.UUID, todo.UUID, "y")

	res := f.svc.UpdateCardOrder(f.ctxA, &UpdateCardOrderInput{
		BoardID: b.UUID.String(),
		Items: []CardOrderItem{
			{ID: y.UUID.String(), Position: 0, ListID: todo.UUID.String()},
			{ID: x.UUID.String(), Position: 0, ListID: done.UUID.String()},
		},
	})
	require.True(t, res.OK(), res.Error)

	v := f.view(t, b.UUID)
	assert.Equal(t, []string{"y@0"}, cardTitles(v.Lists[0]))
	assert.Equal(t, []string{"x@0"}, cardTitles(v.Lists[1]))
}

func TestCardDetailsAndActivity(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	todo := f.list(t, b.UUID, "Todo")
	c := f.card(t, b.UUID, todo.UUID, "Write")

	desc := "Long enough"
	for _, title := range []string{"Write docs", "Write more docs", "Write all docs"} {
		title := title
		res := f.svc.UpdateCard(f.ctxA, &UpdateCardInput{ID: c.UUID.String(), BoardID: b.UUID.String(), Title: &title, Description: &desc})
		require.True(t, res.OK(), res.Error)
	}

	short := "no"
	res := f.svc.UpdateCard(f.ctxA, &UpdateCardInput{ID: c.UUID.String(), BoardID: b.UUID.String(), Description: &short})
	assert.Equal(t, map[string]string{"description": "Description is too short"}, res.FieldErrors)

	got := f.svc.GetCard(f.ctxA, &CardLookup{ID: c.UUID.String()})
	require.True(t, got.OK(), got.Error)
	assert.Equal(t, "Write all docs", got.Data.Title)
	assert.Equal(t, "Todo", got.Data.ListTitle)
	require.NotNil(t, got.Data.Description)
	assert.Equal(t, desc, *got.Data.Description)

	logs := f.svc.CardLogs(f.ctxA, &CardLookup{ID: c.UUID.String()})
	require.True(t, logs.OK())
	require.Len(t, logs.Data, 3)
	for _, l := range logs.Data {
		assert.Equal(t, models.ActionUpdate, l.Action)
	}
}

func TestCopyAndDeleteCard(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	todo := f.list(t, b.UUID, "Todo")
	c := f.card(t, b.UUID, todo.UUID, "Write")

	cp := f.svc.CopyCard(f.ctxA, &CardRef{ID: c.UUID.String(), BoardID: b.UUID.String()})
	require.True(t, cp.OK(), cp.Error)
	assert.Equal(t, "Write - Copy", cp.Data.Title)
	assert.Equal(t, 2, cp.Data.Position)

	del := f.svc.DeleteCard(f.ctxA, &CardRef{ID: c.UUID.String(), BoardID: b.UUID.String()})
	require.True(t, del.OK(), del.Error)
	assert.Equal(t, []string{"Write - Copy@2"}, cardTitles(f.view(t, b.UUID).Lists[0]))
}

func TestCopyBoard(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	todo := f.list(t, b.UUID, "Todo")
	f.card(t, b.UUID, todo.UUID, "a")

	cp := f.svc.CopyBoard(f.ctxA, &BoardRef{ID: b.UUID.String()})
	require.True(t, cp.OK(), cp.Error)
	assert.Equal(t, "Roadmap - Copy", cp.Data.Title)

	v := f.view(t, cp.Data.UUID)
	require.Len(t, v.Lists, 1)
	assert.Equal(t, []string{"a@1"}, cardTitles(v.Lists[0]))

	n, err := f.svc.Quota.CurrentCount(f.ctxA, "org_a")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestListBoards(t *testing.T) {
	f := newFixture(t, 5, nil)
	f.board(t, "One")
	f.board(t, "Two")

	res := f.svc.ListBoards(f.ctxA)
	require.True(t, res.OK())
	assert.Len(t, res.Data, 2)

	res = f.svc.ListBoards(f.ctxB)
	require.True(t, res.OK())
	assert.Empty(t, res.Data)
}

func TestUpdateListOrderRejectsSubsetOfBoard(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	f.list(t, b.UUID, "AA")
	cc := f.list(t, b.UUID, "CC")
	before := len(f.cache.list())

	res := f.svc.UpdateListOrder(f.ctxA, &UpdateListOrderInput{
		BoardID: b.UUID.String(),
		Items:   []ListOrderItem{{ID: cc.UUID.String(), Position: 1}},
	})
	assert.Equal(t, KindValidation, res.Kind)
	assert.Equal(t, "Items do not match the current board", res.FieldErrors["items"])
	assert.Equal(t, before, len(f.cache.list()))
	assert.Equal(t, map[string]int{"AA": 1, "CC": 2}, positions(f.view(t, b.UUID).Lists))
}

func TestUpdateCardOrderRejectsSubsetOfList(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	todo := f.list(t, b.UUID, "Todo")
	f.card(t, b.UUID, todo.UUID, "x")
	y := f.card(t, b.UUID, todo.UUID, "y")

	res := f.svc.UpdateCardOrder(f.ctxA, &UpdateCardOrderInput{
		BoardID: b.UUID.String(),
		Items:   []CardOrderItem{{ID: y.UUID.String(), Position: 1, ListID: todo.UUID.String()}},
	})
	assert.Equal(t, KindValidation, res.Kind)
	assert.Equal(t, "Items do not match the current board", res.FieldErrors["items"])
	assert.Equal(t, []string{"x@1", "y@2"}, cardTitles(f.view(t, b.UUID).Lists[0]))
}

func TestUpdateCardOrderCrossListNeedsBothSets(t *testing.T) {
	f := newFixture(t, 5, nil)
	b := f.board(t, "Roadmap")
	todo := f.list(t, b.UUID, "Todo")
	done := f.list(t, b.UUID, "Done")
	x := f.card(t, b.UUID, todo.UUID, "x")
	f.card(t, b.UUID, todo.UUID, "y")

	res := f.svc.UpdateCardOrder(f.ctxA, &UpdateCardOrderInput{
		BoardID: b.UUID.String(),
		Items:   []CardOrderItem{{ID: x.UUID.String(), Position: 0, ListID: done.UUID.String()}},
	})
	assert.Equal(t, KindValidation, res.Kind)

	v := f.view(t, b.UUID)
	assert.Equal(t, []string{"x@1", "y@2"}, cardTitles(v.Lists[0]))
	assert.Empty(t, v.Lists[1].Cards)
}

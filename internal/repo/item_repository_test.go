package repo

import (
	"Crowdfunding/internal/model"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepository_CreateAndRead(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	r := NewItemRepository(db)
	ctx := context.Background()
	mustCreateUser(t, users, "owner")

	n := newItemFor("owner", "gadget")
	n.Summary = "a shiny gadget"
	mustCreateItem(t, r, n)

	got, err := r.Read(ctx, ByName("gadget"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.ItemID, model.IDLength)
	assert.Equal(t, "gadget", got.Name)
	assert.Equal(t, "owner", got.UserName)
	assert.Equal(t, "a shiny gadget", got.Summary)
	assert.WithinDuration(t, n.EndDate, got.EndDate, time.Millisecond)
	assert.Equal(t, int64(100000), got.TargetMoney)
	assert.Equal(t, int64(1000), got.FundingUnit)
	assert.Zero(t, got.CurrentMoney)
	assert.Zero(t, got.ParticipantSize)
	assert.Zero(t, got.FundingGage)
	assert.False(t, got.CreateDate.IsZero())

	byID, err := r.Read(ctx, ByID(got.ItemID))
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "gadget", byID.Name)

	missing, err := r.Read(ctx, ByName("nothing"))
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = r.Read(ctx, Ref{Key: "summary", Value: "x"})
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestItemRepository_CreateUnknownOwner(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)

	code, err := r.Create(context.Background(), newItemFor("ghost", "gadget"))
	assert.NoError(t, err)
	assert.Equal(t, ItemUserNotExists, code)
	assert.Zero(t, countRows(t, db, &model.Item{}, ""))
}

func TestItemRepository_CreateValidation(t *testing.T) {
	db := newTestDB(t)
	mustCreateUser(t, NewUserRepository(db), "owner")
	r := NewItemRepository(db)

	cases := []struct {
		name   string
		mutate func(n *NewItem)
		want   ItemCode
	}{
		{"empty name", func(n *NewItem) { n.Name = "" }, ItemNameNotMatched},
		{"long name", func(n *NewItem) { n.Name = strings.Repeat("x", 129) }, ItemNameNotMatched},
		{"no end date", func(n *NewItem) { n.EndDate = time.Time{} }, ItemEndDateNotMatched},
		{"zero target", func(n *NewItem) { n.TargetMoney = 0 }, ItemTargetMoneyNotMatched},
		{"negative unit", func(n *NewItem) { n.FundingUnit = -5 }, ItemFundingUnitNotMatched},
		{"long summary", func(n *NewItem) { n.Summary = strings.Repeat("s", 2049) }, ItemSummaryNotMatched},
		// первая невалидная по порядку проверки
		{"name before target", func(n *NewItem) { n.Name = ""; n.TargetMoney = 0 }, ItemNameNotMatched},
		{"target before summary", func(n *NewItem) { n.TargetMoney = -1; n.Summary = strings.Repeat("s", 3000) }, ItemTargetMoneyNotMatched},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := newItemFor("owner", "gadget")
			tc.mutate(&n)
			code, err := r.Create(context.Background(), n)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, code)
		})
	}
	assert.Zero(t, countRows(t, db, &model.Item{}, ""))
	assert.Zero(t, countRows(t, db, &model.ItemContents{}, ""))

	// пустое описание и дата в прошлом допустимы
	n := newItemFor("owner", "gadget")
	n.Summary = ""
	n.EndDate = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	mustCreateItem(t, r, n)
}

func TestItemRepository_CreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	mustCreateUser(t, NewUserRepository(db), "owner")
	r := NewItemRepository(db)
	ctx := context.Background()
	mustCreateItem(t, r, newItemFor("owner", "gadget"))

	dup := newItemFor("owner", "gadget")
	dup.TargetMoney = 5
	dup.Summary = "other"
	code, err := r.Create(ctx, dup)
	assert.NoError(t, err)
	assert.Equal(t, ItemAlreadyExists, code)

	// первая кампания не изменилась, лишнего описания нет
	got, err := r.Read(ctx, ByName("gadget"))
	require.NoError(t, err)
	assert.Equal(t, int64(100000), got.TargetMoney)
	assert.Equal(t, "summary of gadget", got.Summary)
	assert.Equal(t, int64(1), countRows(t, db, &model.ItemContents{}, ""))
}

func TestItemRepository_Update(t *testing.T) {
	db := newTestDB(t)
	mustCreateUser(t, NewUserRepository(db), "owner")
	r := NewItemRepository(db)
	ctx := context.Background()
	mustCreateItem(t, r, newItemFor("owner", "gadget"))
	mustCreateItem(t, r, newItemFor("owner", "widget"))

	str := func(s string) *string { return &s }
	i64 := func(v int64) *int64 { return &v }

	t.Run("not exists", func(t *testing.T) {
		code, err := r.Update(ctx, ByName("nothing"), ItemPatch{Name: str("x")})
		assert.NoError(t, err)
		assert.Equal(t, ItemNotExists, code)
	})

	t.Run("empty patch", func(t *testing.T) {
		assert.True(t, ItemPatch{}.Empty())
		assert.False(t, ItemPatch{Summary: str("")}.Empty())

		before, err := r.Read(ctx, ByName("widget"))
		require.NoError(t, err)
		code, err := r.Update(ctx, ByName("widget"), ItemPatch{})
		require.NoError(t, err)
		assert.Equal(t, ItemSucceed, code)
		after, err := r.Read(ctx, ByName("widget"))
		require.NoError(t, err)
		assert.Equal(t, before, after)

		code, err = r.Update(ctx, ByName("nothing"), ItemPatch{})
		assert.NoError(t, err)
		assert.Equal(t, ItemNotExists, code)
	})

	t.Run("omitted summary unchanged", func(t *testing.T) {
		code, err := r.Update(ctx, ByName("gadget"), ItemPatch{CurrentMoney: i64(5000), ParticipantSize: i64(5)})
		require.NoError(t, err)
		assert.Equal(t, ItemSucceed, code)

		got, err := r.Read(ctx, ByName("gadget"))
		require.NoError(t, err)
		assert.Equal(t, "summary of gadget", got.Summary)
		assert.Equal(t, int64(5000), got.CurrentMoney)
		assert.Equal(t, int64(5), got.ParticipantSize)
		assert.InDelta(t, 5.0, got.FundingGage, 1e-9)
	})

	t.Run("empty summary stored", func(t *testing.T) {
		code, err := r.Update(ctx, ByName("gadget"), ItemPatch{Summary: str("")})
		require.NoError(t, err)
		assert.Equal(t, ItemSucceed, code)

		got, err := r.Read(ctx, ByName("gadget"))
		require.NoError(t, err)
		assert.Equal(t, "", got.Summary)
	})

	t.Run("invalid fields", func(t *testing.T) {
		cases := []struct {
			patch ItemPatch
			want  ItemCode
		}{
			{ItemPatch{Name: str("")}, ItemNameNotMatched},
			{ItemPatch{EndDate: &time.Time{}}, ItemEndDateNotMatched},
			{ItemPatch{FundingUnit: i64(0)}, ItemFundingUnitNotMatched},
			{ItemPatch{ParticipantSize: i64(-1)}, ItemParticipantSizeNotMatched},
			{ItemPatch{CurrentMoney: i64(-1)}, ItemCurrentMoneyNotMatched},
			{ItemPatch{Summary: str(strings.Repeat("s", 2049))}, ItemSummaryNotMatched},
			{ItemPatch{FundingUnit: i64(0), CurrentMoney: i64(-1)}, ItemFundingUnitNotMatched},
		}
		for _, tc := range cases {
			code, err := r.Update(ctx, ByName("widget"), tc.patch)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, code)
		}
		got, err := r.Read(ctx, ByName("widget"))
		require.NoError(t, err)
		assert.Equal(t, int64(1000), got.FundingUnit)
		assert.Equal(t, "summary of widget", got.Summary)
	})

	t.Run("rename to taken name", func(t *testing.T) {
		code, err := r.Update(ctx, ByName("widget"), ItemPatch{Name: str("gadget"), Summary: str("changed")})
		assert.NoError(t, err)
		assert.Equal(t, ItemAlreadyExists, code)

		got, err := r.Read(ctx, ByName("widget"))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "summary of widget", got.Summary)
	})

	t.Run("rename and move end date", func(t *testing.T) {
		end := time.Date(2031, 6, 1, 12, 0, 0, 0, time.UTC)
		code, err := r.Update(ctx, ByName("widget"), ItemPatch{Name: str("widget2"), EndDate: &end})
		require.NoError(t, err)
		assert.Equal(t, ItemSucceed, code)

		got, err := r.Read(ctx, ByName("widget2"))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.WithinDuration(t, end, got.EndDate, time.Millisecond)
	})
}

func TestItemRepository_DeleteRemovesContents(t *testing.T) {
	db := newTestDB(t)
	mustCreateUser(t, NewUserRepository(db), "owner")
	r := NewItemRepository(db)
	ctx := context.Background()
	mustCreateItem(t, r, newItemFor("owner", "gadget"))
	mustCreateItem(t, r, newItemFor("owner", "widget"))

	got, err := r.Read(ctx, ByName("gadget"))
	require.NoError(t, err)

	code, err := r.Delete(ctx, ByName("gadget"))
	require.NoError(t, err)
	assert.Equal(t, ItemSucceed, code)
	assert.Zero(t, countRows(t, db, &model.Item{}, "item_id = ?", got.ItemID))
	assert.Zero(t, countRows(t, db, &model.ItemContents{}, "item_id = ?", got.ItemID))
	assert.Equal(t, int64(1), countRows(t, db, &model.ItemContents{}, ""))

	code, err = r.Delete(ctx, ByName("gadget"))
	assert.NoError(t, err)
	assert.Equal(t, ItemNotExists, code)
}

func TestItemRepository_Lists(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	mustCreateUser(t, users, "alice")
	mustCreateUser(t, users, "bob")
	r := NewItemRepository(db)
	ctx := context.Background()

	money := map[string]int64{"hello world": 3000, "say hello": 9000, "goodbye": 1000, "hello_again": 5000}
	for _, name := range []string{"hello world", "say hello", "goodbye", "hello_again"} {
		owner := "alice"
		if name == "goodbye" {
			owner = "bob"
		}
		mustCreateItem(t, r, newItemFor(owner, name))
		cur := money[name]
		code, err := r.Update(ctx, ByName(name), ItemPatch{CurrentMoney: &cur})
		require.NoError(t, err)
		require.Equal(t, ItemSucceed, code)
		// create_date должен различаться
		time.Sleep(5 * time.Millisecond)
	}

	t.Run("search", func(t *testing.T) {
		got, err := r.SearchByName(ctx, "hello")
		require.NoError(t, err)
		names := make([]string, 0, len(got))
		for _, it := range got {
			names = append(names, it.Name)
			assert.Equal(t, "alice", it.UserName)
		}
		assert.ElementsMatch(t, []string{"hello world", "say hello", "hello_again"}, names)

		got, err = r.SearchByName(ctx, "_")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "hello_again", got[0].Name)
	})

	t.Run("by funding money", func(t *testing.T) {
		got, err := r.SortByFundingMoney(ctx)
		require.NoError(t, err)
		require.Len(t, got, 4)
		for i := 1; i < len(got); i++ {
			assert.Greater(t, got[i-1].CurrentMoney, got[i].CurrentMoney)
		}
		assert.Equal(t, "say hello", got[0].Name)
		assert.InDelta(t, 9.0, got[0].Percentage, 1e-9)
		assert.Equal(t, "bob", got[3].UserName)
	})

	t.Run("by create date", func(t *testing.T) {
		got, err := r.SortByCreateDate(ctx)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "hello world", got[0].Name)
		assert.Equal(t, "hello_again", got[3].Name)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].CreateDate.Before(got[i-1].CreateDate))
		}
	})
}

func TestItemRepository_SearchIsCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	mustCreateUser(t, NewUserRepository(db), "alice")
	r := NewItemRepository(db)
	ctx := context.Background()
	for _, name := range []string{"HELLO big", "say hello", "Hello there", "50% off"} {
		mustCreateItem(t, r, newItemFor("alice", name))
	}

	got, err := r.SearchByName(ctx, "hello")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "say hello", got[0].Name)

	got, err = r.SearchByName(ctx, "HELLO")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "HELLO big", got[0].Name)

	got, err = r.SearchByName(ctx, "% o")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "50% off", got[0].Name)

	// пустая подстрока: все кампании
	got, err = r.SearchByName(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestItemRepository_Donate(t *testing.T) {
	db := newTestDB(t)
	mustCreateUser(t, NewUserRepository(db), "owner")
	r := NewItemRepository(db)
	ctx := context.Background()
	mustCreateItem(t, r, newItemFor("owner", "gadget"))

	const n = 20
	var wg sync.WaitGroup
	codes := make(chan ItemCode, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := r.Donate(ctx, ByName("gadget"))
			assert.NoError(t, err)
			codes <- code
		}()
	}
	wg.Wait()
	close(codes)
	for code := range codes {
		assert.Equal(t, ItemSucceed, code)
	}

	got, err := r.Read(ctx, ByName("gadget"))
	require.NoError(t, err)
	assert.Equal(t, int64(1000*n), got.CurrentMoney)
	assert.Equal(t, int64(n), got.ParticipantSize)

	code, err := r.Donate(ctx, ByName("nothing"))
	assert.NoError(t, err)
	assert.Equal(t, ItemNotExists, code)

	_, err = r.Donate(ctx, Ref{Key: "owner", Value: "x"})
	assert.ErrorIs(t, err, ErrUnknownKey)

	// промах не трогает существующие записи
	again, err := r.Read(ctx, ByName("gadget"))
	require.NoError(t, err)
	assert.Equal(t, got.CurrentMoney, again.CurrentMoney)
}

package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerkit/offerkit/internal/offers"
)

func makeGroup(index, itemCount int) offers.OfferGroup {
	group := offers.OfferGroup{
		ID:    int64(index),
		Index: index,
		Title: fmt.Sprintf("Section %d", index),
	}
	for i := 0; i < itemCount; i++ {
		group.Items = append(group.Items, offers.OfferItem{
			ID:            int64(index*1000 + i),
			GroupID:       group.ID,
			Name:          fmt.Sprintf("Item %d.%d", index, i+1),
			PositionIndex: fmt.Sprintf("%d.%d", index, i+1),
		})
	}
	return group
}

func countItems(pages []Page) int {
	n := 0
	for _, page := range pages {
		for _, slice := range page {
			n += len(slice.Items)
		}
	}
	return n
}

func TestPaginateEmptyOffer(t *testing.T) {
	pages := Paginate(nil)
	require.Len(t, pages, 1)
	assert.Empty(t, pages[0])
}

func TestPaginateSingleSmallGroup(t *testing.T) {
	pages := Paginate([]offers.OfferGroup{makeGroup(1, 5)})
	require.Len(t, pages, 1)
	require.Len(t, pages[0], 1)
	assert.Len(t, pages[0][0].Items, 5)
}

func TestPaginateGroupSpillsWithoutReChargingHeader(t *testing.T) {
	// 20 items: header (2) + 16 items fill the 18-slot first page, the
	// remaining 4 continue on page 2 with no second header charge.
	pages := Paginate([]offers.OfferGroup{makeGroup(1, 20)})
	require.Len(t, pages, 2)

	require.Len(t, pages[0], 1)
	assert.Len(t, pages[0][0].Items, 16)

	require.Len(t, pages[1], 1)
	assert.Len(t, pages[1][0].Items, 4)
	assert.Equal(t, pages[0][0].ID, pages[1][0].ID)
}

func TestPaginateLongGroupUsesFullLaterPages(t *testing.T) {
	// 16 + 26 + 8: header charged once, later pages fit all 26 slots.
	pages := Paginate([]offers.OfferGroup{makeGroup(1, 50)})
	require.Len(t, pages, 3)
	assert.Len(t, pages[0][0].Items, 16)
	assert.Len(t, pages[1][0].Items, 26)
	assert.Len(t, pages[2][0].Items, 8)
}

func TestPaginateNoOrphanedHeader(t *testing.T) {
	// First group fills the first page exactly; the second group must open on
	// a fresh page rather than leave a header with no items at the bottom.
	pages := Paginate([]offers.OfferGroup{makeGroup(1, 16), makeGroup(2, 3)})
	require.Len(t, pages, 2)
	require.Len(t, pages[0], 1)
	assert.Equal(t, 1, pages[0][0].Index)
	require.Len(t, pages[1], 1)
	assert.Equal(t, 2, pages[1][0].Index)
	assert.Len(t, pages[1][0].Items, 3)
}

func TestPaginateHeaderNeedsRoomForOneItem(t *testing.T) {
	// 15 items leave one slot free on page 1: not enough for the next
	// group's header plus an item, so the group moves to page 2 whole.
	pages := Paginate([]offers.OfferGroup{makeGroup(1, 15), makeGroup(2, 1)})
	require.Len(t, pages, 2)
	require.Len(t, pages[0], 1)
	require.Len(t, pages[1], 1)
	assert.Equal(t, 2, pages[1][0].Index)
}

func TestPaginateMultipleGroupsShareAPage(t *testing.T) {
	// 2+4 and 2+6 slots: both groups fit on the 18-slot first page.
	pages := Paginate([]offers.OfferGroup{makeGroup(1, 4), makeGroup(2, 6)})
	require.Len(t, pages, 1)
	require.Len(t, pages[0], 2)
	assert.Equal(t, 1, pages[0][0].Index)
	assert.Equal(t, 2, pages[0][1].Index)
}

func TestPaginateEmptyGroupStillGetsHeader(t *testing.T) {
	pages := Paginate([]offers.OfferGroup{makeGroup(1, 0), makeGroup(2, 2)})
	require.Len(t, pages, 1)
	require.Len(t, pages[0], 2)
	assert.Empty(t, pages[0][0].Items)
	assert.Len(t, pages[0][1].Items, 2)
}

func TestPaginateConservesItems(t *testing.T) {
	cases := []struct {
		name   string
		groups []offers.OfferGroup
	}{
		{"one group exact fit", []offers.OfferGroup{makeGroup(1, 16)}},
		{"spill by one", []offers.OfferGroup{makeGroup(1, 17)}},
		{"many small groups", []offers.OfferGroup{makeGroup(1, 3), makeGroup(2, 3), makeGroup(3, 3), makeGroup(4, 3), makeGroup(5, 3)}},
		{"mixed sizes", []offers.OfferGroup{makeGroup(1, 40), makeGroup(2, 1), makeGroup(3, 27)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total := 0
			for _, g := range tc.groups {
				total += len(g.Items)
			}

			pages := Paginate(tc.groups)
			assert.Equal(t, total, countItems(pages))

			// Items stay in order and groups never interleave.
			var seen []string
			for _, page := range pages {
				for _, slice := range page {
					for _, item := range slice.Items {
						seen = append(seen, item.PositionIndex)
					}
				}
			}
			var want []string
			for _, g := range tc.groups {
				for _, item := range g.Items {
					want = append(want, item.PositionIndex)
				}
			}
			assert.Equal(t, want, seen)
		})
	}
}

func TestPaginateCapacityNeverExceeded(t *testing.T) {
	pages := Paginate([]offers.OfferGroup{makeGroup(1, 30), makeGroup(2, 30), makeGroup(3, 5)})

	charged := make(map[int64]bool)
	for i, page := range pages {
		capacity := PageCapacity
		if i == 0 {
			capacity = FirstPageCapacity
		}
		used := 0
		for _, slice := range page {
			if !charged[slice.ID] {
				used += GroupHeaderSlots
				charged[slice.ID] = true
			}
			used += len(slice.Items)
		}
		assert.LessOrEqual(t, used, capacity, "page %d", i+1)
	}
}

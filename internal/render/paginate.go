// Package render lays out a fully priced offer into printable pages and turns
// the result into HTML and PDF documents.
package render

import (
	"github.com/offerkit/offerkit/internal/offers"
)

// Row-slot capacities of the rendered document. The first page carries the
// letterhead and address block, leaving fewer slots than subsequent pages.
const (
	FirstPageCapacity = 18
	PageCapacity      = 26
	GroupHeaderSlots  = 2
)

// GroupSlice is the portion of one group's items appearing on a single page.
// A group spanning pages contributes one slice per page; the header slot cost
// is charged only on the page where the group first appears.
type GroupSlice struct {
	ID    int64              `json:"id"`
	Index int                `json:"index"`
	Title string             `json:"title"`
	Items []offers.OfferItem `json:"items"`
}

// Page is the ordered set of group slices laid out on one page.
type Page []GroupSlice

// Paginate distributes the offer's groups across pages. Groups are processed
// in index order, items in given order; each item costs one slot, a group's
// header costs GroupHeaderSlots on the page where the group first appears.
// A header is never left at the bottom of a page without room for at least
// one of its items. An offer with no groups yields a single empty page.
func Paginate(groups []offers.OfferGroup) []Page {
	var pages []Page
	var current Page
	remaining := FirstPageCapacity

	flush := func() {
		pages = append(pages, current)
		current = nil
		remaining = PageCapacity
	}

	for _, group := range groups {
		placed := 0
		onPage := false
		headerCharged := false
		for {
			headerCost := 0
			if !headerCharged {
				headerCost = GroupHeaderSlots
			}
			available := remaining - headerCost
			left := len(group.Items) - placed

			minNeeded := 0
			if left > 0 {
				minNeeded = 1
			}
			if available < minNeeded {
				flush()
				onPage = false
				continue
			}

			if !onPage {
				current = append(current, GroupSlice{ID: group.ID, Index: group.Index, Title: group.Title})
				onPage = true
			}
			if !headerCharged {
				remaining -= GroupHeaderSlots
				headerCharged = true
			}

			take := available
			if left < take {
				take = left
			}
			if take > 0 {
				slice := &current[len(current)-1]
				slice.Items = append(slice.Items, group.Items[placed:placed+take]...)
				placed += take
				remaining -= take
			}

			if placed < len(group.Items) {
				flush()
				onPage = false
				continue
			}
			break
		}

		if remaining == 0 {
			flush()
		}
	}

	if len(current) > 0 {
		pages = append(pages, current)
	}
	if len(pages) == 0 {
		pages = append(pages, Page{})
	}
	return pages
}

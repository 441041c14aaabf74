package pagination

import (
	"context"
	"fmt"
)

// Page is what a PageFetcher reports about one page of a list endpoint.
type Page struct {
	Items int
	Link  string
}

// PageFetcher fetches a single 1-based page.
type PageFetcher func(ctx context.Context, page int) (Page, error)

// ResolveCount returns the total number of items behind a paginated
// endpoint. Only the first page and, when needed, the last page are fetched:
// total = (lastPage-1)*perPage + items on the last page.
func ResolveCount(ctx context.Context, perPage int, fetch PageFetcher) (int, error) {
	if perPage < 1 {
		return 0, fmt.Errorf("per page must be positive, got %d", perPage)
	}

	first, err := fetch(ctx, 1)
	if err != nil {
		return 0, err
	}
	if first.Items < perPage {
		return first.Items, nil
	}

	links, err := ParseLinkHeader(first.Link)
	if err != nil {
		return 0, err
	}
	lastPage, ok, err := links.Page("last")
	if err != nil {
		return 0, err
	}
	if !ok || lastPage == 1 {
		return first.Items, nil
	}

	last, err := fetch(ctx, lastPage)
	if err != nil {
		return 0, err
	}
	return (lastPage-1)*perPage + last.Items, nil
}

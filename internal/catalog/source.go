package catalog

import "context"

// Source returns one page of records. page is 1-based.
type Source interface {
	FetchPage(ctx context.Context, page int) (*Page, error)
}

// Refresher is implemented by sources that can bypass any cache for a page.
type Refresher interface {
	Refresh(ctx context.Context, page int) (*Page, error)
}

// Refresh fetches page through src's Refresher if it has one, else FetchPage.
func Refresh(ctx context.Context, src Source, page int) (*Page, error) {
	if r, ok := src.(Refresher); ok {
		return r.Refresh(ctx, page)
	}
	return src.FetchPage(ctx, page)
}

package camara

import "fmt"

// FetchError reports a failed request against the Câmara API. Page is zero
// for the directory search and carries the failing page number for the
// expense listing, so callers can tell the user exactly where paging stopped.
type FetchError struct {
	Op   string
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("%s: página %d: %v", e.Op, e.Page, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

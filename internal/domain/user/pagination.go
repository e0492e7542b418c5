package user

// Pagination bounds for list requests.
const (
	DefaultTake = 50
	MaxTake     = 200
)

// Page is one window of the directory listing.
// Total is the record count before slicing; Skip and Take are the
// effective values after clamping.
type Page struct {
	Items []User
	Total int
	Skip  int
	Take  int
}

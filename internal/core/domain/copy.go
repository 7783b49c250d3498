package domain

// MaxTitleLength is the recommended headline length. It is not enforced.
const MaxTitleLength = 90

// Copy is the user-facing text produced for one event.
type Copy struct {
	Title string
	Body  string
	Tags  []string
}

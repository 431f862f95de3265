package viewmodel

// User is the signed-in operator as shown in the page chrome.
type User struct {
	ID       string
	Username string
	Role     string
	Level    int
}

// NavItem is one sidebar entry. Only routes the role may open are listed.
type NavItem struct {
	Label  string
	Href   string
	Page   string
	Active bool
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	User            *User
	Nav             []NavItem
	// Can holds the feature flags granted to the user, keyed by feature id.
	Can map[string]bool
	// Routes holds the route policies granted to the user, keyed by pattern.
	Routes map[string]bool
}

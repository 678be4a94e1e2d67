package web

// App describes one registered sub-application shown on the home page.
// The registry is a static list built at compile time; nothing scans
// for apps at runtime.
type App struct {
	Name        string
	URL         string
	Description string
}

var Apps = []App{
	{Name: "home", URL: "/home", Description: "coding sandbox and web projects"},
	{Name: "notes", URL: "/notes", Description: "store and edit random notes in Markdown text"},
}

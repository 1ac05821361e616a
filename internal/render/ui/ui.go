// Package ui holds the templ components for the dashboard markup. The
// *_templ.go files are generated from the .templ sources with
// `templ generate` and are committed alongside them.
package ui

// Option is one selectable entry in a reference selector.
type Option struct {
	Value    int
	Label    string
	Selected bool
}

// Row is one data row of an entity table. Cells carry pre-rendered,
// already-escaped markup.
type Row struct {
	Key   int
	Cells []string
}

// TableProps drives one entity table, including its placeholder and
// inline-error states.
type TableProps struct {
	Kind         string
	Headers      []string
	Colspan      int
	Empty        bool
	Error        bool
	EmptyMessage string
	Rows         []Row
}

type SelectProps struct {
	ElementID string
	Name      string
	Prompt    string
	Options   []Option
}

type MenuCard struct {
	ID          int
	Name        string
	Description string
	Price       string
	Badges      []string
	Staged      int
}

type CartLine struct {
	ProductID int
	Name      string
	UnitPrice string
	Quantity  int
}

type CartProps struct {
	Lines           []CartLine
	TotalItems      int
	TotalPrice      string
	CheckoutEnabled bool
}

type ChatMessage struct {
	Sender string
	Body   string
}

type ChatProps struct {
	Messages []ChatMessage
	Typing   bool
	Time     string
}

type Notification struct {
	ID      int64
	Class   string
	Message string
}

// FormField is one rendered field of the modal form.
type FormField struct {
	Input    string
	Name     string
	Label    string
	Required bool
	Value    string
	Checked  bool
	Error    string
	Prompt   string
	Options  []Option
}

type FormProps struct {
	Kind   string
	Prefix string
	Title  string
	Fields []FormField
}

type ConfirmProps struct {
	Article  string
	Singular string
	RecordID int
}

type Stat struct {
	Label string
	Value string
}

type NavItem struct {
	ID     string
	Title  string
	Active bool
}

// Section is one content section of the page. Body is pre-rendered markup.
type Section struct {
	ID     string
	Title  string
	Active bool
	Body   string
}

type PageProps struct {
	Title         string
	Nav           []NavItem
	Sections      []Section
	Notifications []Notification
	Chat          string
}

func cls(base, extra string, on bool) string {
	if on {
		return base + " " + extra
	}
	return base
}

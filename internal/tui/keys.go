package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	First       key.Binding
	Last        key.Binding
	Answer      key.Binding
	Prev        key.Binding
	Next        key.Binding
	Fields      key.Binding
	Back        key.Binding
	Submit      key.Binding
	ForceSubmit key.Binding
	Reset       key.Binding
	TakeAgain   key.Binding
	Check       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous item")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next item")),
		First:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first item")),
		Last:        key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last item")),
		Answer:      key.NewBinding(key.WithKeys("0", "1", "2", "3"), key.WithHelp("0-3", "answer")),
		Prev:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "lower")),
		Next:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "higher")),
		Fields:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "your details")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to items")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		ForceSubmit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Reset:       key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		TakeAgain:   key.NewBinding(key.WithKeys("t", "enter"), key.WithHelp("t", "take again")),
		Check:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "system check")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Answer, k.Up, k.Down, k.Submit, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Last},
		{k.Answer, k.Prev, k.Next},
		{k.Fields, k.Back, k.Submit, k.ForceSubmit},
		{k.Reset, k.TakeAgain, k.Check, k.Help, k.Quit},
	}
}

// resultHelp is the key map shown on the result screen.
type resultHelp struct{ keys keyMap }

func (r resultHelp) ShortHelp() []key.Binding {
	return []key.Binding{r.keys.TakeAgain, r.keys.Check, r.keys.Quit}
}

func (r resultHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{r.ShortHelp()}
}

// fieldHelp is shown while a text field has focus.
type fieldHelp struct{ keys keyMap }

func (f fieldHelp) ShortHelp() []key.Binding {
	return []key.Binding{f.keys.Fields, f.keys.Back, f.keys.ForceSubmit, f.keys.Reset}
}

func (f fieldHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{f.ShortHelp()}
}

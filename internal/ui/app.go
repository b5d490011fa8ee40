package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/dastanaron/bookmarks-organizer/internal/models"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	ModeNormal = 1
	ModeSearch = 2
)

// allCategories is the pseudo category listing every bookmark
const allCategories = "All Bookmarks"

// categoryItem is one entry of the category list
type categoryItem struct {
	Name  string
	Count int
}

// App is a read-only browser over an organized collection
type App struct {
	app          *tview.Application
	categoryList *tview.List
	list         *tview.List
	detail       *tview.TextView
	search       *tview.InputField
	pages        *tview.Pages
	status       *tview.TextView
	mode         uint8

	collection       models.Collection
	categoryItems    []categoryItem
	selectedCategory string
	allItems         []models.Bookmark // bookmarks of the selected category
	items            []models.Bookmark // allItems after the search filter
	current          *models.Bookmark
	focusOnCategory  bool
}

// NewApp creates a new application instance
func NewApp(collection models.Collection) *App {
	return &App{
		app:              tview.NewApplication(),
		categoryList:     tview.NewList(),
		list:             tview.NewList(),
		detail:           tview.NewTextView().SetDynamicColors(true).SetWrap(true),
		search:           tview.NewInputField().SetLabel("Search: "),
		pages:            tview.NewPages(),
		status:           tview.NewTextView().SetDynamicColors(true),
		mode:             ModeNormal,
		collection:       collection,
		selectedCategory: allCategories,
	}
}

// Run starts the application
func (a *App) Run() error {
	a.list.SetBorder(true).SetTitle("Bookmarks")
	a.detail.SetBorder(true).SetTitle("Details")
	a.categoryList.SetBorder(true).SetTitle("Categories")

	cols := tview.NewFlex().
		AddItem(a.categoryList, 0, 1, false).
		AddItem(a.list, 0, 3, true).
		AddItem(a.detail, 0, 1, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.search, 1, 0, false).
		AddItem(cols, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.pages.AddPage("main", main, true, true)

	a.fillCategoryList()
	a.loadCategory()

	a.search.SetChangedFunc(a.onSearchChange)
	a.search.SetDoneFunc(a.onSearchDone)
	a.list.SetChangedFunc(a.onSelect)

	a.app.SetRoot(a.pages, true)
	a.app.SetInputCapture(a.globalInput)
	a.updateStatus()

	a.app.SetFocus(a.list)
	return a.app.Run()
}

func (a *App) updateStatus() {
	countText := fmt.Sprintf(" [::b]%d[::r] of %d bookmarks", len(a.items), a.collection.Total())
	statusText := "[::b]Tab[::r] switch  [::b]/[::r] search  [::b]Enter[::r] open  [::b]q[::r] quit" + countText
	if a.focusOnCategory {
		statusText = "[::b]Tab[::r] switch  [::b]Enter[::r] select  [::b]q[::r] quit" + countText
	}
	a.status.SetText(statusText)
}

// buildCategoryItems lists "All Bookmarks" first, then categories by name
func buildCategoryItems(c models.Collection) []categoryItem {
	items := []categoryItem{{Name: allCategories, Count: c.Total()}}
	for _, name := range c.Names() {
		if n := c.Len(name); n > 0 {
			items = append(items, categoryItem{Name: name, Count: n})
		}
	}
	return items
}

func (a *App) fillCategoryList() {
	a.categoryList.Clear()
	a.categoryItems = buildCategoryItems(a.collection)
	for _, item := range a.categoryItems {
		a.categoryList.AddItem(fmt.Sprintf("%s (%d)", item.Name, item.Count), "", 0, nil)
	}
}

// bookmarksFor returns the bookmarks of one category sorted by title. The
// pseudo category returns everything, grouped by category name.
func bookmarksFor(c models.Collection, category string) []models.Bookmark {
	var out []models.Bookmark
	if category == allCategories {
		for _, name := range c.Names() {
			out = append(out, sortedByTitle(c[name])...)
		}
		return out
	}
	return sortedByTitle(c[category])
}

func sortedByTitle(in []models.Bookmark) []models.Bookmark {
	out := make([]models.Bookmark, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Title < out[j].Title
	})
	return out
}

// filterBookmarks keeps bookmarks whose title, URL or source folder contains
// text, ignoring case
func filterBookmarks(in []models.Bookmark, text string) []models.Bookmark {
	if text == "" {
		return in
	}
	textLower := strings.ToLower(text)
	var filtered []models.Bookmark
	for _, b := range in {
		if strings.Contains(strings.ToLower(b.Title), textLower) ||
			strings.Contains(strings.ToLower(b.URL), textLower) ||
			strings.Contains(strings.ToLower(b.Folder), textLower) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func (a *App) loadCategory() {
	a.allItems = bookmarksFor(a.collection, a.selectedCategory)
	a.applyFilter(a.search.GetText())
	a.list.SetTitle(fmt.Sprintf("Bookmarks (%s)", a.selectedCategory))
}

func (a *App) applyFilter(text string) {
	a.items = filterBookmarks(a.allItems, text)
	a.fillList()
}

func (a *App) onCategorySelect(item categoryItem) {
	a.selectedCategory = item.Name
	a.categoryList.SetTitle(fmt.Sprintf("Categories (%s)", item.Name))
	a.loadCategory()
	a.updateStatus()

	a.focusOnCategory = false
	a.app.SetFocus(a.list)
}

func (a *App) fillList() {
	a.list.Clear()
	for i := range a.items {
		index := i
		a.list.AddItem(a.items[i].Title, a.items[i].URL, 0, func() {
			a.onSelect(index, "", "", 0)
		})
	}

	if len(a.items) > 0 {
		a.current = &a.items[0]
	} else {
		a.current = nil
	}
	a.showDetails()
}

// detailText renders one bookmark for the details pane
func detailText(b *models.Bookmark) string {
	if b == nil {
		return ""
	}
	added := "-"
	if b.AddedAt != nil {
		added = b.AddedAt.Format(time.RFC3339)
	}
	icon := "no"
	if b.Icon != "" {
		icon = "yes"
	}
	return fmt.Sprintf(
		"[::b]Title:[::-]\n%s\n\n[::b]URL:[::-]\n%s\n\n[::b]Source folder:[::-]\n%s\n\n[::b]Added:[::-]\n%s\n\n[::b]Icon:[::-]\n%s",
		tview.Escape(b.Title), tview.Escape(b.URL), tview.Escape(b.Folder), added, icon)
}

func (a *App) showDetails() {
	a.detail.SetText(detailText(a.current))
}

func (a *App) setMode(m uint8) {
	a.mode = m
	switch m {
	case ModeSearch:
		a.app.SetFocus(a.search)
	case ModeNormal:
		if a.focusOnCategory {
			a.app.SetFocus(a.categoryList)
		} else {
			a.app.SetFocus(a.list)
		}
	}
}

func (a *App) toggleFocus() {
	a.focusOnCategory = !a.focusOnCategory
	if a.focusOnCategory {
		a.app.SetFocus(a.categoryList)
	} else {
		a.app.SetFocus(a.list)
	}
	a.updateStatus()
}

func (a *App) onSearchChange(text string) {
	a.applyFilter(text)
	a.updateStatus()
}

func (a *App) onSearchDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		a.setMode(ModeNormal)
	case tcell.KeyEscape:
		a.search.SetText("")
		a.setMode(ModeNormal)
	}
}

func (a *App) onSelect(index int, mainText, secondaryText string, shortcut rune) {
	if index >= 0 && index < len(a.items) {
		a.current = &a.items[index]
		a.showDetails()
	}
}

func (a *App) globalInput(event *tcell.EventKey) *tcell.EventKey {
	if a.mode != ModeNormal {
		return event
	}

	if event.Key() == tcell.KeyTab {
		a.toggleFocus()
		return nil
	}

	switch event.Key() {
	case tcell.KeyEnter:
		if a.focusOnCategory {
			idx := a.categoryList.GetCurrentItem()
			if idx >= 0 && idx < len(a.categoryItems) {
				a.onCategorySelect(a.categoryItems[idx])
			}
			return nil
		}
		if a.current != nil && a.current.URL != "" {
			openURL(a.current.URL)
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case '/':
			a.setMode(ModeSearch)
			return nil
		case 'q':
			a.app.Stop()
			return nil
		}
	}
	return event
}

func openURL(url string) {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default:
		cmd = "xdg-open"
	}
	args = append(args, url)
	_ = exec.Command(cmd, args...).Start()
}

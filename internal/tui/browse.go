// Package tui provides the interactive terminal film browser.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/lepinkainen/holocron/internal/films"
	"github.com/lepinkainen/holocron/internal/swapi"
)

const (
	defaultListWidth  = 44
	defaultListHeight = 20
	detailWidth       = 60
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

type filmsLoadedMsg struct {
	films []swapi.Film
	err   error
}

type detailLoadedMsg struct {
	title  string
	detail *films.Detail
	err    error
}

type filmItem struct {
	*films.EnrichedFilm
}

func (i filmItem) Title() string       { return i.EnrichedFilm.Title }
func (i filmItem) FilterValue() string { return i.EnrichedFilm.Title }
func (i filmItem) Description() string { return fmt.Sprintf("Episode: %d", i.EpisodeID) }

type filmDelegate struct {
	styles   itemStyles
	selected func() *films.EnrichedFilm
}

func (d filmDelegate) Height() int                         { return 5 }
func (d filmDelegate) Spacing() int                        { return 0 }
func (d filmDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d filmDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	film, ok := item.(filmItem)
	if !ok {
		return
	}

	title := truncate(film.EnrichedFilm.Title, m.Width()-6)
	if d.selected != nil && d.selected() == film.EnrichedFilm {
		title = d.styles.marker.Render("* ") + d.styles.titleStyle.Render(title)
	} else {
		title = d.styles.titleStyle.Render(title)
	}

	meta := d.styles.metaStyle.Render(fmt.Sprintf("Episode: %d | %s", film.EpisodeID, film.ReleaseDate))

	rating := d.styles.metaStyle.Render("not rated yet")
	if film.HasDetail() {
		rating = d.styles.ratingStyle.Render(formatAverage(film.AverageRating))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, meta, rating)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.cursor
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	ctx     context.Context
	ctrl    *films.Controller
	list    list.Model
	spinner spinner.Model
	width   int
	height  int
}

func newModel(ctx context.Context, ctrl *films.Controller) *model {
	delegate := filmDelegate{styles: newItemStyles(), selected: ctrl.Selected}

	l := list.New(nil, delegate, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &model{
		ctx:     ctx,
		ctrl:    ctrl,
		list:    l,
		spinner: s,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadFilms)
}

func (m *model) loadFilms() tea.Msg {
	list, err := m.ctrl.FetchList(m.ctx)
	return filmsLoadedMsg{films: list, err: err}
}

func (m *model) fetchDetail(title string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.ctrl.FetchDetail(m.ctx, title)
		return detailLoadedMsg{title: title, detail: detail, err: err}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case filmsLoadedMsg:
		if msg.err != nil {
			m.ctrl.FailList(msg.err)
			return m, nil
		}
		m.ctrl.SetFilms(msg.films)
		return m, m.refreshItems("")

	case detailLoadedMsg:
		if msg.err != nil {
			m.ctrl.FailDetail(msg.title, msg.err)
		} else {
			m.ctrl.ApplyDetail(msg.title, msg.detail)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			return m, m.selectCurrent()
		case "e", "1":
			return m, m.sortBy(films.ByEpisode)
		case "y", "2":
			return m, m.sortBy(films.ByReleaseDate)
		case "r", "3":
			return m, m.sortBy(films.ByRating)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		width := clamp(defaultListWidth, msg.Width-detailWidth-4, 30)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) selectCurrent() tea.Cmd {
	item, ok := m.list.SelectedItem().(filmItem)
	if !ok {
		return nil
	}

	title := item.EnrichedFilm.Title
	needsFetch, err := m.ctrl.Select(title)
	if err != nil || !needsFetch {
		return nil
	}
	return tea.Batch(m.fetchDetail(title), m.spinner.Tick)
}

func (m *model) sortBy(key films.SortKey) tea.Cmd {
	if m.ctrl.State() == films.StateLoadingList || m.ctrl.State() == films.StateError {
		return nil
	}

	cursor := ""
	if item, ok := m.list.SelectedItem().(filmItem); ok {
		cursor = item.EnrichedFilm.Title
	}

	m.ctrl.Sort(key)
	return m.refreshItems(cursor)
}

// refreshItems rebuilds the list from the controller, keeping the cursor on
// the film titled cursor when it is still present.
func (m *model) refreshItems(cursor string) tea.Cmd {
	current := m.ctrl.Films()
	items := make([]list.Item, len(current))
	index := 0
	for i, f := range current {
		items[i] = filmItem{EnrichedFilm: f}
		if f.Title == cursor {
			index = i
		}
	}

	cmd := m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(index)
	}
	return cmd
}

func (m *model) View() string {
	switch m.ctrl.State() {
	case films.StateLoadingList:
		return fmt.Sprintf("\n  %s Loading films...\n", m.spinner.View())
	case films.StateError:
		return "\n" + errorStyle.Render(films.ErrLoadFilms) + "\n" +
			helpStyle.Render("q quit") + "\n"
	}

	header := headerStyle.Render("Films")
	left := m.list.View()
	right := panelStyle.Width(detailWidth).Render(m.detailView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	help := helpStyle.Render("Up/Down navigate | Enter select | e episode | y year | r rating | q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

func (m *model) detailView() string {
	selected := m.ctrl.Selected()
	if selected == nil {
		return mutedStyle.Render("Select a movie to see the details")
	}

	if m.ctrl.State() == films.StateDetailLoading {
		return fmt.Sprintf("%s Loading ratings for %s...", m.spinner.View(), selected.Title)
	}

	var lines []string
	lines = append(lines, detailTitleStyle.Render(selected.Title))

	detail := m.ctrl.Detail()
	if detail != nil && detail.Poster != "" && detail.Poster != "N/A" {
		lines = append(lines, labelStyle.Render("Poster:")+" "+truncate(detail.Poster, detailWidth-10))
	}

	lines = append(lines,
		labelStyle.Render("Release date:")+" "+selected.ReleaseDate,
		labelStyle.Render("Director:")+" "+selected.Director,
	)
	if selected.Producer != "" {
		lines = append(lines, labelStyle.Render("Producer:")+" "+truncate(selected.Producer, detailWidth-12))
	}

	if detail != nil {
		lines = append(lines, "")
		for _, r := range detail.Ratings {
			lines = append(lines, labelStyle.Render(r.Source+":")+" "+r.Value)
		}
		lines = append(lines, averageStyle.Render("Average Rating: "+formatAverage(detail.AverageRating)))
	}

	if selected.OpeningCrawl != "" {
		lines = append(lines, "", mutedStyle.Render(truncate(selected.OpeningCrawl, 3*(detailWidth-4))))
	}

	return strings.Join(lines, "\n")
}

// Browse runs the interactive film browser until the user quits.
func Browse(ctx context.Context, ctrl *films.Controller) error {
	finalModel, err := runProgram(newModel(ctx, ctrl))
	if err != nil {
		return err
	}
	if _, ok := finalModel.(*model); !ok {
		return fmt.Errorf("unexpected program result")
	}
	return nil
}

func formatAverage(avg float64) string {
	return fmt.Sprintf("%.1f / 10", avg)
}

// truncate collapses whitespace and cuts value to width terminal cells.
func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}

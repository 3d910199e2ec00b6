// Package tui is the interactive onboarding interview. It follows The Elm
// Architecture via bubbletea: App holds the interview state, Update advances
// it one keypress at a time and View renders the current step.
//
// The flow is: role -> experience -> goals -> tools -> workspace -> confirm.
package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/clawd-onboard/internal/catalog"
	"github.com/kingrea/clawd-onboard/internal/logbook"
	"github.com/kingrea/clawd-onboard/internal/profile"
)

// ErrAborted is returned by Run when the user quits before confirming.
var ErrAborted = errors.New("tui: interview aborted")

// step represents which screen of the interview is showing.
type step int

const (
	stepRole step = iota
	stepExperience
	stepGoals
	stepTools
	stepWorkspace
	stepConfirm
)

var stepTitles = map[step]string{
	stepRole:       "What best describes you?",
	stepExperience: "How familiar are you with AI assistants?",
	stepGoals:      "What do you want help with? (comma separated)",
	stepTools:      "Which tools should the assistant connect to?",
	stepWorkspace:  "Name your workspace",
	stepConfirm:    "Ready to generate",
}

var experienceLevels = []menuItem{
	{title: "beginner", desc: "New to AI assistants"},
	{title: "intermediate", desc: "Used chat assistants day to day"},
	{title: "advanced", desc: "Already automates work with agents"},
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")).MarginBottom(1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
)

// menuItem implements list.Item.
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

type toolOption struct {
	key      string
	selected bool
}

// AppOption customizes App construction.
type AppOption func(*App)

// WithDefaults pre-fills answers, for example from command-line flags.
func WithDefaults(answers profile.Answers) AppOption {
	return func(a *App) {
		a.defaults = answers
	}
}

// WithLogbook shows recent setup history under the interview.
func WithLogbook(book *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = book
	}
}

// App is the interview model.
type App struct {
	step     step
	defaults profile.Answers
	logbook  *logbook.Logbook

	roles      list.Model
	experience list.Model
	goals      textinput.Model
	workspace  textinput.Model
	tools      []toolOption
	toolCursor int

	answers   profile.Answers
	confirmed bool
	aborted   bool
	statusMsg string

	width  int
	height int
}

// NewApp builds the interview for the roles in cat.
func NewApp(cat *catalog.Catalog, opts ...AppOption) *App {
	a := &App{}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	var roleItems []list.Item
	for _, role := range cat.Roles() {
		desc, _ := cat.Describe(role)
		roleItems = append(roleItems, menuItem{title: role, desc: desc})
	}
	a.roles = newMenu("Role", roleItems)
	selectByTitle(&a.roles, profile.NormalizeRole(a.defaults.UserType))

	levels := make([]list.Item, len(experienceLevels))
	for i := range experienceLevels {
		levels[i] = experienceLevels[i]
	}
	a.experience = newMenu("Experience", levels)
	selectByTitle(&a.experience, strings.ToLower(strings.TrimSpace(a.defaults.Experience)))

	a.goals = textinput.New()
	a.goals.Placeholder = "ship the beta, hire a designer"
	a.goals.CharLimit = 400
	a.goals.SetValue(strings.Join(a.defaults.Goals, ", "))

	a.workspace = textinput.New()
	a.workspace.Placeholder = profile.DefaultWorkspaceName
	a.workspace.CharLimit = 64
	a.workspace.SetValue(a.defaults.WorkspaceName)

	chosen := map[string]bool{}
	for _, tool := range a.defaults.Tools {
		chosen[strings.ToLower(strings.TrimSpace(tool))] = true
	}
	for _, key := range profile.KnownIntegrations {
		a.tools = append(a.tools, toolOption{key: key, selected: chosen[key]})
	}
	return a
}

func newMenu(title string, items []list.Item) list.Model {
	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = title
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)
	menu.DisableQuitKeybindings()
	return menu
}

func selectByTitle(menu *list.Model, title string) {
	if title == "" {
		return
	}
	for i, item := range menu.Items() {
		if mi, ok := item.(menuItem); ok && mi.title == title {
			menu.Select(i)
			return
		}
	}
}

// Answers returns the collected answers and whether the user confirmed them.
func (a *App) Answers() (profile.Answers, bool) {
	return a.answers, a.confirmed && !a.aborted
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.roles.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		a.experience.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.aborted = true
			return a, tea.Quit
		case "esc":
			if a.step > stepRole {
				a.step--
				a.statusMsg = ""
				return a, a.focusStep()
			}
			a.aborted = true
			return a, tea.Quit
		case "enter":
			return a.advance()
		}
		if a.step == stepTools {
			a.updateTools(msg)
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.step {
	case stepRole:
		a.roles, cmd = a.roles.Update(msg)
	case stepExperience:
		a.experience, cmd = a.experience.Update(msg)
	case stepGoals:
		a.goals, cmd = a.goals.Update(msg)
	case stepWorkspace:
		a.workspace, cmd = a.workspace.Update(msg)
	}
	return a, cmd
}

func (a *App) updateTools(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		if a.toolCursor > 0 {
			a.toolCursor--
		}
	case "down", "j":
		if a.toolCursor < len(a.tools)-1 {
			a.toolCursor++
		}
	case " ", "x":
		if len(a.tools) > 0 {
			a.tools[a.toolCursor].selected = !a.tools[a.toolCursor].selected
		}
	}
}

func (a *App) advance() (tea.Model, tea.Cmd) {
	switch a.step {
	case stepRole:
		item, ok := a.roles.SelectedItem().(menuItem)
		if !ok {
			a.statusMsg = "No templates available"
			return a, nil
		}
		a.answers.UserType = item.title
	case stepExperience:
		if item, ok := a.experience.SelectedItem().(menuItem); ok {
			a.answers.Experience = item.title
		}
	case stepGoals:
		a.answers.Goals = profile.SplitList(a.goals.Value())
	case stepTools:
		a.answers.Tools = nil
		for _, tool := range a.tools {
			if tool.selected {
				a.answers.Tools = append(a.answers.Tools, tool.key)
			}
		}
	case stepWorkspace:
		a.answers.WorkspaceName = strings.TrimSpace(a.workspace.Value())
		a.answers.WorkspaceDescription = a.defaults.WorkspaceDescription
	case stepConfirm:
		a.confirmed = true
		return a, tea.Quit
	}
	a.step++
	a.statusMsg = ""
	return a, a.focusStep()
}

func (a *App) focusStep() tea.Cmd {
	a.goals.Blur()
	a.workspace.Blur()
	switch a.step {
	case stepGoals:
		return a.goals.Focus()
	case stepWorkspace:
		return a.workspace.Focus()
	}
	return nil
}

// View renders the current step.
func (a *App) View() string {
	sections := []string{
		headerStyle.Render("⬡ CLAWD ONBOARD"),
		titleStyle.Render(fmt.Sprintf("Step %d/%d · %s", int(a.step)+1, int(stepConfirm)+1, stepTitles[a.step])),
		boxStyle.Render(a.renderStep()),
		hintStyle.Render(a.hint()),
	}
	if panel := a.renderLogPanel(); panel != "" {
		sections = append(sections, panel)
	}
	if a.statusMsg != "" {
		sections = append(sections, mutedStyle.Render(a.statusMsg))
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderStep() string {
	switch a.step {
	case stepRole:
		return a.roles.View()
	case stepExperience:
		return a.experience.View()
	case stepGoals:
		return a.goals.View()
	case stepTools:
		var rows []string
		for i, tool := range a.tools {
			cursor := "  "
			if i == a.toolCursor {
				cursor = "> "
			}
			mark := "[ ]"
			if tool.selected {
				mark = "[x]"
			}
			rows = append(rows, fmt.Sprintf("%s%s %s", cursor, mark, tool.key))
		}
		return strings.Join(rows, "\n")
	case stepWorkspace:
		return a.workspace.View()
	default:
		return a.renderSummary()
	}
}

func (a *App) renderSummary() string {
	name := a.answers.WorkspaceName
	if name == "" {
		name = profile.DefaultWorkspaceName
	}
	goals := strings.Join(a.answers.Goals, ", ")
	if goals == "" {
		goals = mutedStyle.Render("none")
	}
	tools := strings.Join(a.answers.Tools, ", ")
	if tools == "" {
		tools = mutedStyle.Render("none")
	}
	lines := []string{
		fmt.Sprintf("Role:        %s", a.answers.UserType),
		fmt.Sprintf("Experience:  %s", a.answers.Experience),
		fmt.Sprintf("Goals:       %s", goals),
		fmt.Sprintf("Tools:       %s", tools),
		fmt.Sprintf("Workspace:   %s", name),
	}
	return strings.Join(lines, "\n")
}

func (a *App) hint() string {
	switch a.step {
	case stepTools:
		return "Space → toggle    Enter → continue    Esc → back"
	case stepConfirm:
		return "Enter → generate workspace    Esc → back    Ctrl+C → quit"
	default:
		return "Enter → continue    Esc → back    Ctrl+C → quit"
	}
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, _ := a.logbook.Tail(5)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	head := titleStyle.Render(fmt.Sprintf("HISTORY · %s", fileName))
	body := mutedStyle.Render(strings.Join(lines, "\n"))
	return boxStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}

// Run starts the interview on the terminal and returns the confirmed answers.
func Run(app *App, opts ...tea.ProgramOption) (profile.Answers, error) {
	final, err := tea.NewProgram(app, opts...).Run()
	if err != nil {
		return profile.Answers{}, fmt.Errorf("tui: %w", err)
	}
	model, ok := final.(*App)
	if !ok {
		return profile.Answers{}, fmt.Errorf("tui: unexpected model %T", final)
	}
	answers, confirmed := model.Answers()
	if !confirmed {
		return profile.Answers{}, ErrAborted
	}
	return answers, nil
}

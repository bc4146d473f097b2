// Package taskform implements the create/edit task form.
package taskform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tbui/taskbox/internal/model"
	"github.com/tbui/taskbox/internal/tasks"
	"github.com/tbui/taskbox/internal/theme"
)

// TaskCreatedMsg is dispatched when a new task is submitted via the form.
type TaskCreatedMsg struct {
	Input tasks.CreateInput
}

// TaskEditedMsg is dispatched when an existing task is edited via the form.
type TaskEditedMsg struct {
	ID    string
	Patch tasks.Patch
}

// FormCancelMsg is dispatched when the user cancels the form.
type FormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    string
	category    string
	dueDate     string
	estimate    string
	progress    string
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	styles   *theme.Styles
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a task form model.
func New(styles *theme.Styles, width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.PriorityMedium, category: model.CategoryDefault},
		styles: styles,
		width:  width,
		height: height,
	}
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// StartCreate initializes the form for creating a new task.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	*m.fb = formBindings{
		priority: model.PriorityMedium,
		category: model.CategoryDefault,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(t model.Task) tea.Cmd {
	m.editMode = true
	m.editID = t.ID
	*m.fb = formBindings{
		title:       t.Title,
		description: t.Description,
		priority:    t.Priority,
		category:    t.Category,
		progress:    strconv.Itoa(t.Progress),
	}
	if t.DueDate != nil {
		m.fb.dueDate = t.DueDate.Format("2006-01-02")
	}
	if t.EstimatedMinutes != nil {
		m.fb.estimate = strconv.Itoa(*t.EstimatedMinutes)
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return FormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.styles.Palette.Text).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

func (m *Model) buildForm() *huh.Form {
	priorityOpts := []huh.Option[string]{
		huh.NewOption("High", model.PriorityHigh),
		huh.NewOption("Medium", model.PriorityMedium),
		huh.NewOption("Low", model.PriorityLow),
	}

	categoryOpts := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		categoryOpts[i] = huh.NewOption(c, c)
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[string]().
			Title("Priority").
			Options(priorityOpts...).
			Value(&m.fb.priority),
		huh.NewSelect[string]().
			Title("Category").
			Options(categoryOpts...).
			Value(&m.fb.category),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("Estimate (minutes)").
			Placeholder("optional").
			Value(&m.fb.estimate).
			Validate(validateOptionalPositiveInt),
	}

	if m.editMode {
		fields = append(fields,
			huh.NewInput().
				Title("Progress (0-100)").
				Value(&m.fb.progress).
				Validate(validateOptionalPercent),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	dueDate := parseOptionalDate(m.fb.dueDate)
	estimate := parseOptionalInt(m.fb.estimate)

	if m.editMode {
		patch := tasks.Patch{
			Title:            &m.fb.title,
			Description:      &m.fb.description,
			Priority:         &m.fb.priority,
			Category:         &m.fb.category,
			DueDate:          dueDate,
			ClearDueDate:     dueDate == nil,
			EstimatedMinutes: estimate,
			ClearEstimate:    estimate == nil,
		}
		if progress := parseOptionalInt(m.fb.progress); progress != nil {
			patch.Progress = progress
		}
		id := m.editID
		return func() tea.Msg { return TaskEditedMsg{ID: id, Patch: patch} }
	}

	input := tasks.CreateInput{
		Title:            m.fb.title,
		Description:      m.fb.description,
		Priority:         m.fb.priority,
		Category:         m.fb.category,
		DueDate:          dueDate,
		EstimatedMinutes: estimate,
	}
	return func() tea.Msg { return TaskCreatedMsg{Input: input} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func parseOptionalDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func parseOptionalInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalPositiveInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateOptionalPercent(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}

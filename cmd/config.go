/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/nakachan-ing/notes-cli/internal/errs"
	"github.com/nakachan-ing/notes-cli/internal/model"
	"github.com/nakachan-ing/notes-cli/internal/store"
	"github.com/spf13/cobra"
)

const saveAndExit = "Save & Exit"

type configModel struct {
	cursor    int
	fields    []string
	config    model.Config
	path      string
	textInput textinput.Model
	editMode  bool
	status    string
	saved     bool
}

func newConfigModel(config model.Config, path string) *configModel {
	return &configModel{
		cursor:    0,
		fields:    generateFieldList(),
		config:    config,
		path:      path,
		textInput: textinput.New(),
		editMode:  false,
	}
}

func generateFieldList() []string {
	return []string{
		"NotesFile", "Editor",
		"Log.File", "Log.Level",
		"Display.PageSize", "Display.MarkdownStyle",
		saveAndExit,
	}
}

func (m *configModel) Init() tea.Cmd {
	return nil
}

func (m *configModel) forceRedraw() tea.Msg {
	return tea.WindowSizeMsg{}
}

func (m *configModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editMode {
			switch msg.String() {
			case "enter":
				m.updateConfig()
				m.editMode = false
				m.textInput.Blur()
				return m, tea.Batch(tea.ClearScreen, m.forceRedraw)
			case "esc":
				m.editMode = false
				m.textInput.Blur()
			default:
				m.textInput, _ = m.textInput.Update(msg)
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.fields)-1 {
				m.cursor++
			}
		case "enter":
			if m.fields[m.cursor] == saveAndExit {
				if err := store.SaveConfig(m.config, m.path); err != nil {
					m.status = "⚠️ " + errs.MessageOf(err)
					return m, nil
				}
				m.saved = true
				return m, tea.Quit
			}
			m.editMode = true
			m.status = ""
			m.textInput.SetValue(m.getFieldValue(m.fields[m.cursor]))
			m.textInput.Focus()
		}
	}

	return m, nil
}

func (m *configModel) View() string {
	var s strings.Builder
	s.WriteString("\033[H\033[2J")
	s.WriteString("📄 Configure notes (" + m.path + ")\n\n")

	for i, field := range m.fields {
		cursor := "  "
		if m.cursor == i {
			cursor = "👉"
		}

		if field == saveAndExit {
			s.WriteString(fmt.Sprintf("%s %s\n", cursor, field))
			continue
		}
		s.WriteString(fmt.Sprintf("%s %s: %s\n", cursor, field, m.getFieldValue(field)))
	}

	if m.status != "" {
		s.WriteString("\n" + m.status + "\n")
	}

	if m.editMode {
		s.WriteString("\n✏️  Editing: " + m.fields[m.cursor] + "\n")
		s.WriteString(m.textInput.View() + "\n")
		s.WriteString("(Enter to apply, ESC to cancel)\n")
	} else {
		s.WriteString("\n⬆️⬇️ to move, Enter to edit, Q to quit without saving\n")
	}

	return s.String()
}

func (m *configModel) getFieldValue(field string) string {
	switch field {
	case "NotesFile":
		return m.config.NotesFile
	case "Editor":
		return m.config.Editor
	case "Log.File":
		return m.config.Log.File
	case "Log.Level":
		return m.config.Log.Level
	case "Display.PageSize":
		return strconv.Itoa(m.config.Display.PageSize)
	case "Display.MarkdownStyle":
		return m.config.Display.MarkdownStyle
	default:
		return "UNKNOWN"
	}
}

// updateConfig applies the edited value to the selected field. Values are
// only validated when saving.
func (m *configModel) updateConfig() {
	newValue := strings.TrimSpace(m.textInput.Value())

	switch m.fields[m.cursor] {
	case "NotesFile":
		m.config.NotesFile = newValue
	case "Editor":
		m.config.Editor = newValue
	case "Log.File":
		m.config.Log.File = newValue
	case "Log.Level":
		m.config.Log.Level = newValue
	case "Display.PageSize":
		newInt, err := strconv.Atoi(newValue)
		if err != nil {
			m.status = fmt.Sprintf("⚠️ page size must be a number, got %q", newValue)
			return
		}
		m.config.Display.PageSize = newInt
	case "Display.MarkdownStyle":
		m.config.Display.MarkdownStyle = newValue
	}
}

// loadEditableConfig returns the current config, or the defaults when the
// config file cannot be loaded, so a broken file can still be repaired.
func loadEditableConfig(cmd *cobra.Command) model.Config {
	config, err := store.LoadConfig(cfgFile)
	if err != nil {
		color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "⚠️ %v\nStarting from the default config.\n", err)
		return model.DefaultConfig()
	}
	return *config
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure config.yaml interactively",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		m := newConfigModel(loadEditableConfig(cmd), path)
		if _, err := tea.NewProgram(m, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())).Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}

		if m.saved {
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Config saved to", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

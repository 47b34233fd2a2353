package model

type Config struct {
	NotesFile string        `yaml:"notes_file" mapstructure:"notes_file" validate:"required"`
	Editor    string        `yaml:"editor" mapstructure:"editor" validate:"required"`
	Log       LogConfig     `yaml:"log" mapstructure:"log"`
	Display   DisplayConfig `yaml:"display" mapstructure:"display"`
}

type LogConfig struct {
	// File is the rotating log file; empty disables logging.
	File  string `yaml:"file" mapstructure:"file"`
	Level string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
}

type DisplayConfig struct {
	PageSize      int    `yaml:"page_size" mapstructure:"page_size" validate:"gte=-1,ne=0"`
	MarkdownStyle string `yaml:"markdown_style" mapstructure:"markdown_style" validate:"oneof=dark light notty ascii"`
}

func DefaultConfig() Config {
	return Config{
		NotesFile: "~/.config/notes-cli/Notes.txt",
		Editor:    "vim",
		Log: LogConfig{
			File:  "~/.config/notes-cli/notes.log",
			Level: "info",
		},
		Display: DisplayConfig{
			PageSize:      20,
			MarkdownStyle: "dark",
		},
	}
}

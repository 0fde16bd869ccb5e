package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todoapp configuration file
# Values can be overridden by TODOAPP_* environment variables or CLI flags

# Session transcripts (JSONL, one file per session)
log_dir = "~/.todoapp/logs"
transcript = true

# Diagnostics written to stderr
log_level = "info"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false

# Widget
console_max_lines = 200
confirm_quit = true
show_tips = true

# Initial task list, validated against the built-in schema
# seed_file = "tasks.json"
# seed_schema = "my-seed.schema.json"

# Key bindings; only the actions listed here change
[keys]
list = ["ctrl+l"]
add = ["ctrl+n"]
delete = ["ctrl+d"]
quit = ["ctrl+q", "ctrl+c"]
toggle = ["space", "x"]
# remove = ["backspace", "delete"]
# clear = ["ctrl+k"]
# up = ["up", "k"]
# down = ["down", "j"]
# help = ["?"]
`
}

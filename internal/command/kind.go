package command

import (
	"strings"

	"github.com/tessro/ytplay/internal/display"
)

// Kind identifies a command family.
type Kind int

const (
	KindUnknown Kind = iota
	KindHelp
	KindVolume
	KindSkip
	KindPlayPause
	KindRepeat
	KindBack
	KindLoop
	KindShuffle
	KindCopyURL
	KindLyrics
	KindInfo
	KindOpen
	KindExit
)

type family struct {
	kind        Kind
	aliases     []string
	description string
}

// families lists every command in help order. The first alias is the
// command's name.
var families = []family{
	{KindHelp, []string{"help", "?"},
		"Opens this help menu and shows whether or not looping and shuffling are enabled."},
	{KindVolume, []string{"volume", "v"},
		"Adjust the volume (0 - 100).\nEntering \"volume\" alone shows the current volume."},
	{KindSkip, []string{"skip", "s", "next", "n", "forward", "f"},
		"Skips song(s).\nFor example: Entering \"skip\" will skip one song,\nentering \"skip 5\" will skip 5 songs."},
	{KindPlayPause, []string{"play", "pause", "p"},
		"Plays/Pauses the current song."},
	{KindRepeat, []string{"repeat", "replay", "r"},
		"Repeats the current song one time."},
	{KindBack, []string{"back", "b"},
		"Skips to the last song played."},
	{KindLoop, []string{"loop", "l"},
		"Enables looping.\nThe current song will keep playing until looping is disabled."},
	{KindShuffle, []string{"shuffle"},
		"Shuffles the playlist without repeating until every song has been played."},
	{KindCopyURL, []string{"copy-url", "copy", "c", "url"},
		"Copies the current song's URL to the clipboard."},
	{KindLyrics, []string{"lyrics", "ly"},
		"Shows the lyrics of the current song."},
	{KindInfo, []string{"info", "i"},
		"Shows information about the current song."},
	{KindOpen, []string{"open", "o"},
		"Opens the current song in your web browser."},
	{KindExit, []string{"exit", "quit", "q"},
		"Closes the program."},
}

var aliases = buildAliases()

func buildAliases() map[string]Kind {
	m := make(map[string]Kind)
	for _, f := range families {
		for _, a := range f.aliases {
			m[a] = f.kind
		}
	}
	return m
}

// Lookup returns the kind for an alias. Matching is case-insensitive.
func Lookup(name string) Kind {
	return aliases[strings.ToLower(name)]
}

// String returns the canonical name of the kind.
func (k Kind) String() string {
	for _, f := range families {
		if f.kind == k {
			return f.aliases[0]
		}
	}
	return "unknown"
}

// HelpEntries returns the command list for the help screen.
func HelpEntries() []display.HelpEntry {
	entries := make([]display.HelpEntry, len(families))
	for i, f := range families {
		entries[i] = display.HelpEntry{Aliases: f.aliases, Description: f.description}
	}
	return entries
}

// Command is one tokenized line of input.
type Command struct {
	Kind  Kind
	Name  string
	Value string
}

// HasValue reports whether the command carried an argument.
func (c Command) HasValue() bool {
	return c.Value != ""
}

// Parse tokenizes a line into a command name and an optional value. It
// returns false for a blank line. Words after the value are ignored.
func Parse(line string) (Command, bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, false
	}
	cmd := Command{Kind: Lookup(fields[0]), Name: fields[0]}
	if len(fields) > 1 {
		cmd.Value = fields[1]
	}
	return cmd, true
}

package telegram

import (
	"strings"
	"unicode/utf8"
)

type command int

const (
	cmdNone command = iota
	cmdPlayer
	cmdBans
	cmdServers
	cmdHelp
)

// prefixed commands are matched case-insensitively and accept a full-width
// equals sign, the way group members tend to type them.
var prefixCommands = []struct {
	prefix string
	cmd    command
}{
	{"cx", cmdPlayer},
	{"ban", cmdBans},
	{"server", cmdServers},
}

var slashCommands = map[string]command{
	"cx":     cmdPlayer,
	"ban":    cmdBans,
	"server": cmdServers,
	"help":   cmdHelp,
	"start":  cmdHelp,
}

// parseCommand splits a chat message into a command and its argument.
// Messages that are not commands yield cmdNone.
func parseCommand(text string) (command, string) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "/") {
		name, arg, _ := strings.Cut(text[1:], " ")
		// "/cx@SomeBot name" in groups
		name, _, _ = strings.Cut(name, "@")
		if cmd, ok := slashCommands[strings.ToLower(name)]; ok {
			return cmd, strings.TrimSpace(arg)
		}
		return cmdNone, ""
	}

	lower := strings.ToLower(text)
	for _, pc := range prefixCommands {
		if !strings.HasPrefix(lower, pc.prefix) {
			continue
		}
		rest := text[len(pc.prefix):]
		for _, eq := range []string{"=", "＝"} {
			if strings.HasPrefix(rest, eq) {
				return pc.cmd, strings.TrimSpace(rest[len(eq):])
			}
		}
	}
	return cmdNone, ""
}

// stripNameSuffix drops a parenthesised suffix such as "Tester（Clan）" or
// "Tester (clan)" from a display name.
func stripNameSuffix(name string) string {
	if i := strings.IndexAny(name, "（("); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// splitMessage cuts text into chunks of at most limit bytes, preferring line
// boundaries and never splitting a UTF-8 sequence.
func splitMessage(text string, limit int) []string {
	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		chunks = append(chunks, text[:cut])
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

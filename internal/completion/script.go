package completion

import (
	"fmt"
	"strings"
)

// BashScript renders a bash completion function for prog from the
// flag and command metadata.
func BashScript(prog string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# bash completion for %s\n", prog)
	fmt.Fprintf(&b, "_%s() {\n", prog)
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")

	b.WriteString("    case \"${prev}\" in\n")
	for _, flag := range GetFlags() {
		if !flag.HasValue {
			continue
		}
		fmt.Fprintf(&b, "        --%s)\n", flag.Name)
		switch {
		case len(flag.Values) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(flag.Values, " "))
		case flag.ValueHint == "DIR":
			b.WriteString("            COMPREPLY=( $(compgen -d -- \"${cur}\") )\n")
		case flag.ValueHint == "FILE" || flag.ValueHint == "PATH":
			b.WriteString("            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
		}
		b.WriteString("            return 0\n")
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n\n")

	flagWords := make([]string, 0, len(GetFlags()))
	for _, flag := range GetFlags() {
		flagWords = append(flagWords, "--"+flag.Name)
	}
	b.WriteString("    if [[ ${cur} == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(flagWords, " "))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")

	commandWords := make([]string, 0, len(GetCommands()))
	for _, cmd := range GetCommands() {
		commandWords = append(commandWords, cmd.Name)
	}
	fmt.Fprintf(&b, "    COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(commandWords, " "))
	b.WriteString("}\n")
	fmt.Fprintf(&b, "complete -F _%s %s\n", prog, prog)

	return b.String()
}

// ZshScript renders a zsh completion function for prog.
func ZshScript(prog string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "#compdef %s\n\n", prog)
	fmt.Fprintf(&b, "_%s() {\n", prog)
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, cmd := range GetCommands() {
		fmt.Fprintf(&b, "        '%s:%s'\n", cmd.Name, cmd.Description)
	}
	b.WriteString("    )\n\n")

	b.WriteString("    _arguments -C \\\n")
	for _, flag := range GetFlags() {
		fmt.Fprintf(&b, "        %s \\\n", zshFlagSpec(flag))
	}
	b.WriteString("        '1:command:->command' \\\n")
	b.WriteString("        '*::arg:->args'\n\n")

	b.WriteString("    case $state in\n")
	b.WriteString("        command)\n")
	b.WriteString("            _describe 'command' commands\n")
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "_%s \"$@\"\n", prog)

	return b.String()
}

// zshFlagSpec renders one _arguments spec for a flag. Descriptions in
// the metadata must stay free of single quotes and brackets.
func zshFlagSpec(flag FlagInfo) string {
	if !flag.HasValue {
		return fmt.Sprintf("'--%s[%s]'", flag.Name, flag.Description)
	}

	hint := strings.ToLower(flag.ValueHint)
	if hint == "" {
		hint = "value"
	}

	spec := fmt.Sprintf("'--%s=[%s]:%s", flag.Name, flag.Description, hint)
	switch {
	case len(flag.Values) > 0:
		spec += fmt.Sprintf(":(%s)", strings.Join(flag.Values, " "))
	case flag.ValueHint == "DIR":
		spec += ":_files -/"
	case flag.ValueHint == "FILE" || flag.ValueHint == "PATH":
		spec += ":_files"
	default:
		spec += ":"
	}
	return spec + "'"
}

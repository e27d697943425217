package host

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ShellInfo describes the shell a PtySession or a shell-integration script
// should target.
type ShellInfo struct {
	Name string // bash, zsh, fish, sh, powershell
	Path string // full path to the shell executable
}

// DetectShell inspects $SHELL, falling back to the parent process and
// finally the platform default. It is a host-level convenience for
// picking a default prompt glyph and profile name — never consulted by
// the core engine itself.
func DetectShell() ShellInfo {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		shellPath = detectParentShell()
	}
	if shellPath == "" {
		if runtime.GOOS == "windows" {
			shellPath = "powershell"
		} else {
			shellPath = "/bin/sh"
		}
	}

	name := strings.TrimSuffix(filepath.Base(shellPath), ".exe")
	switch {
	case strings.Contains(name, "zsh"):
		name = "zsh"
	case strings.Contains(name, "bash"):
		name = "bash"
	case strings.Contains(name, "fish"):
		name = "fish"
	case strings.Contains(name, "pwsh"), strings.Contains(name, "powershell"):
		name = "powershell"
	default:
		name = "sh"
	}
	return ShellInfo{Name: name, Path: shellPath}
}

func detectParentShell() string {
	if runtime.GOOS == "windows" {
		return ""
	}
	out, err := exec.Command("ps", "-p", fmt.Sprintf("%d", os.Getppid()), "-o", "comm=").Output()
	if err != nil {
		return ""
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return ""
	}
	if full, err := exec.LookPath(name); err == nil {
		return full
	}
	return name
}

// shellIntegrationScripts emits OSC 133 semantic-prompt markers so an
// embedder's own shell wrapper (not this engine) can mark prompt/command/
// output regions, e.g. to scroll-back to the start of the last command.
var shellIntegrationScripts = map[string]string{
	"bash": `
__embedcli_precmd() {
    local ret=$?
    printf "\033]133;D;%d\007" "$ret"
    printf "\033]133;A\007"
}
if [[ -n "$PS0" ]]; then
    PS0="\[\033]133;C\007\]$PS0"
fi
PROMPT_COMMAND="__embedcli_precmd; $PROMPT_COMMAND"
`,
	"zsh": `
__embedcli_precmd() {
    local ret=$?
    printf "\033]133;D;%d\007" "$ret"
    printf "\033]133;A\007"
}
__embedcli_preexec() {
    printf "\033]133;C\007"
}
autoload -Uz add-zsh-hook
add-zsh-hook precmd __embedcli_precmd
add-zsh-hook preexec __embedcli_preexec
`,
	"fish": `
function __embedcli_precmd --on-event fish_prompt
    set -l last_status $status
    printf "\033]133;D;%d\007" $last_status
    printf "\033]133;A\007"
end
function __embedcli_preexec --on-event fish_preexec
    printf "\033]133;C\007"
end
`,
}

// ShellIntegrationScript returns the OSC 133 snippet for shell, or an
// error for an unsupported shell name.
func ShellIntegrationScript(shell string) (string, error) {
	script, ok := shellIntegrationScripts[shell]
	if !ok {
		return "", fmt.Errorf("host: unsupported shell %q (supported: bash, zsh, fish)", shell)
	}
	return script, nil
}

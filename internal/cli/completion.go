package cli

import (
	"fmt"
	"io"
	"strings"
)

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - actionIDs: The symmetry action IDs offered for -action.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, actionIDs []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, actionIDs)
	case "zsh":
		return generateZshCompletion(out, actionIDs)
	case "fish":
		return generateFishCompletion(out, actionIDs)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, actionIDs)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, actionIDs []string) error {
	script := `# Bash completion script for galois
# Add this to your ~/.bashrc or ~/.bash_completion

_galois_completions() {
    local cur prev opts actions
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="--help -h --version -V -coeffs -random -seed -precision -p -actions -action -unit -verify -workers -timeout -json -quiet -q -server -port -interactive -i -completion -no-color -log-level"

    actions="%s"

    case "${prev}" in
        -action)
            COMPREPLY=( $(compgen -W "${actions}" -- "${cur}") )
            return 0
            ;;
        -random)
            COMPREPLY=( $(compgen -W "2 3 4" -- "${cur}") )
            return 0
            ;;
        -completion)
            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- "${cur}") )
            return 0
            ;;
        -log-level)
            COMPREPLY=( $(compgen -W "debug info warn error disabled" -- "${cur}") )
            return 0
            ;;
        -port)
            COMPREPLY=( $(compgen -W "8080 3000 5000 9000" -- "${cur}") )
            return 0
            ;;
        -timeout)
            COMPREPLY=( $(compgen -W "10s 30s 1m 5m" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _galois_completions galois
`
	_, err := fmt.Fprintf(out, script, strings.Join(actionIDs, " "))
	return err
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, actionIDs []string) error {
	script := `#compdef galois

# Zsh completion script for galois
# Add this to your ~/.zshrc or place in $fpath

_galois() {
    local -a actions
    actions=(%s)

    _arguments -s \
        '(-h --help)'{-h,--help}'[Show help message]' \
        '(-V --version)'{-V,--version}'[Show version information]' \
        '-coeffs[Equation coefficients, highest power first]:coefficients:' \
        '-random[Degree of a random equation]:degree:(2 3 4)' \
        '-seed[Seed for random equations]:seed:' \
        '(-p -precision)'{-p,-precision}'[Displayed decimals]:decimals:(0 3 6 9 12 15)' \
        '-actions[List the symmetry actions]' \
        '-action[Apply a symmetry action to the roots]:action:($actions)' \
        '-unit[Show the n-th roots of unity]:n:' \
        '-verify[Number of round-trip checks]:count:(100 1000 10000)' \
        '-workers[Concurrent round-trip checks]:workers:' \
        '-timeout[Maximum execution time]:duration:(10s 30s 1m 5m)' \
        '-json[Output in JSON format]' \
        '(-q -quiet)'{-q,-quiet}'[Quiet mode for scripts]' \
        '-server[Start HTTP server mode]' \
        '-port[Server port]:port:(8080 3000 5000 9000)' \
        '(-i -interactive)'{-i,-interactive}'[Start interactive REPL mode]' \
        '-completion[Generate completion script]:shell:(bash zsh fish powershell)' \
        '-no-color[Disable colored output]' \
        '-log-level[Minimum log level]:level:(debug info warn error disabled)'
}

_galois "$@"
`
	_, err := fmt.Fprintf(out, script, strings.Join(actionIDs, " "))
	return err
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, actionIDs []string) error {
	script := `# Fish completion script for galois
# Add this to ~/.config/fish/completions/galois.fish

# Disable file completion by default
complete -c galois -f

# Help and version
complete -c galois -s h -l help -d 'Show help message'
complete -c galois -s V -l version -d 'Show version information'

# Equations
complete -c galois -o coeffs -d 'Equation coefficients, highest power first' -x
complete -c galois -o random -d 'Degree of a random equation' -xa '2 3 4'
complete -c galois -o seed -d 'Seed for random equations' -x
complete -c galois -o precision -o p -d 'Displayed decimals' -x
complete -c galois -o unit -d 'Show the n-th roots of unity' -x

# Symmetries
complete -c galois -o actions -d 'List the symmetry actions'
complete -c galois -o action -d 'Apply a symmetry action to the roots' -xa '%s'

# Verification
complete -c galois -o verify -d 'Number of round-trip checks' -x
complete -c galois -o workers -d 'Concurrent round-trip checks' -x
complete -c galois -o timeout -d 'Maximum execution time' -xa '10s 30s 1m 5m'

# Output options
complete -c galois -o json -d 'Output in JSON format'
complete -c galois -o quiet -o q -d 'Quiet mode for scripts'
complete -c galois -o no-color -d 'Disable colored output'
complete -c galois -o log-level -d 'Minimum log level' -xa 'debug info warn error disabled'

# Server mode
complete -c galois -o server -d 'Start HTTP server mode'
complete -c galois -o port -d 'Server port' -xa '8080 3000 5000 9000'

# Interactive and completion
complete -c galois -o interactive -o i -d 'Start interactive REPL mode'
complete -c galois -o completion -d 'Generate completion script' -xa 'bash zsh fish powershell'
`
	_, err := fmt.Fprintf(out, script, strings.Join(actionIDs, " "))
	return err
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, actionIDs []string) error {
	script := `# PowerShell completion script for galois
# Add this to your $PROFILE

$galoisActions = @(%s)

Register-ArgumentCompleter -CommandName 'galois' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
        @{Name = '-h'; Description = 'Show help message' }
        @{Name = '-V'; Description = 'Show version information' }
        @{Name = '-coeffs'; Description = 'Equation coefficients, highest power first' }
        @{Name = '-random'; Description = 'Degree of a random equation' }
        @{Name = '-seed'; Description = 'Seed for random equations' }
        @{Name = '-precision'; Description = 'Displayed decimals' }
        @{Name = '-actions'; Description = 'List the symmetry actions' }
        @{Name = '-action'; Description = 'Apply a symmetry action to the roots' }
        @{Name = '-unit'; Description = 'Show the n-th roots of unity' }
        @{Name = '-verify'; Description = 'Number of round-trip checks' }
        @{Name = '-workers'; Description = 'Concurrent round-trip checks' }
        @{Name = '-timeout'; Description = 'Maximum execution time' }
        @{Name = '-json'; Description = 'Output in JSON format' }
        @{Name = '-quiet'; Description = 'Quiet mode for scripts' }
        @{Name = '-server'; Description = 'Start HTTP server mode' }
        @{Name = '-port'; Description = 'Server port' }
        @{Name = '-interactive'; Description = 'Start interactive REPL mode' }
        @{Name = '-completion'; Description = 'Generate completion script' }
        @{Name = '-no-color'; Description = 'Disable colored output' }
        @{Name = '-log-level'; Description = 'Minimum log level' }
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
        '-action' {
            $galoisActions | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
        '-random' {
            @('2', '3', '4') | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
        '-completion' {
            @('bash', 'zsh', 'fish', 'powershell') | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
        '-log-level' {
            @('debug', 'info', 'warn', 'error', 'disabled') | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`
	quoted := make([]string, len(actionIDs))
	for i, id := range actionIDs {
		quoted[i] = fmt.Sprintf("'%s'", id)
	}
	_, err := fmt.Fprintf(out, script, strings.Join(quoted, ", "))
	return err
}

package lint

import "github.com/grovetools/hooklint/project"

// FilePlaceholder in Tool.Args expands to the files being linted.
const FilePlaceholder = "{{file}}"

// BinPlaceholder in Tool.Name expands to the base name of the executable
// that was selected.
const BinPlaceholder = "{{bin}}"

// Scope describes how a profile's tools cover the requested files.
type Scope int

const (
	// PerFile tools are given the files on the command line.
	PerFile Scope = iota
	// ProjectFiltered tools analyze the whole project once; their output is
	// filtered down to lines mentioning the requested files.
	ProjectFiltered
	// ProjectOnce tools analyze the whole project once and report unfiltered.
	ProjectOnce
)

func (s Scope) String() string {
	switch s {
	case PerFile:
		return "per-file"
	case ProjectFiltered:
		return "project-filtered"
	case ProjectOnce:
		return "project-once"
	default:
		return "unknown"
	}
}

// Tool is one candidate linter.
type Tool struct {
	// Name is reported in messages. Defaults to the first of Bins.
	Name string
	// Bins are the executables to look for, in order. Defaults to Name.
	Bins []string
	// Args are passed to the executable. FilePlaceholder expands to the files.
	Args []string
	// Lenient is appended to Args in lenient mode.
	Lenient []string
	// NotConfigured markers in the tool's output mean the tool is present but
	// not set up for this project, so the next candidate is tried.
	NotConfigured []string
}

// Toolchain is an ordered list of candidates that applies when the project
// root holds one of its When markers.
type Toolchain struct {
	// When lists marker files in the project root. Empty always applies.
	When []string
	// LocalDirs are searched, relative to the project root, before PATH.
	LocalDirs []string
	// Candidates are tried in order; the first one present is used.
	Candidates []Tool
	// Hint is reported when no candidate is present or configured. It is a
	// format string taking the label.
	Hint string
}

// Profile is the lint setup for one ecosystem.
type Profile struct {
	Ecosystem  project.Ecosystem
	Scope      Scope
	Toolchains []Toolchain
	// NoToolchain is reported when no toolchain applies to the project.
	NoToolchain string
}

var pythonLocalDirs = []string{".venv/bin", "venv/bin", ".env/bin", "env/bin"}

// Profiles holds the lint setup for every supported ecosystem.
var Profiles = map[project.Ecosystem]Profile{
	project.Web: {
		Ecosystem: project.Web,
		Scope:     PerFile,
		Toolchains: []Toolchain{{
			LocalDirs: []string{"node_modules/.bin"},
			Candidates: []Tool{
				{
					Name: "oxlint",
					Args: []string{FilePlaceholder},
					Lenient: []string{
						"--allow", "no-unused-vars",
						"--allow", "@typescript-eslint/no-unused-vars",
						"--allow", "no-undef",
					},
				},
				{
					Name: "biome",
					Args: []string{"lint", FilePlaceholder},
					Lenient: []string{
						"--skip=correctness/noUnusedVariables",
						"--skip=correctness/noUnusedImports",
						"--skip=correctness/noUndeclaredVariables",
					},
				},
				{
					Name: "eslint",
					Args: []string{FilePlaceholder},
					Lenient: []string{
						"--rule", "no-unused-vars: off",
						"--rule", "@typescript-eslint/no-unused-vars: off",
						"--rule", "no-undef: off",
						"--rule", "react/jsx-no-undef: off",
					},
				},
				{
					Name:          "npm run lint",
					Bins:          []string{"npm"},
					Args:          []string{"run", "lint", "--if-present", "--", FilePlaceholder},
					NotConfigured: []string{"Missing script", "npm error"},
				},
			},
			Hint: "no linter found for %s.",
		}},
	},
	project.Rust: {
		Ecosystem: project.Rust,
		Scope:     ProjectFiltered,
		Toolchains: []Toolchain{{
			Candidates: []Tool{{
				Name:    "clippy",
				Bins:    []string{"cargo"},
				Args:    []string{"clippy", "--message-format=short", "--", "-D", "warnings"},
				Lenient: []string{"-A", "unused_variables", "-A", "unused_imports", "-A", "dead_code"},
			}},
			Hint: "no Rust linter found for %s. Install the Rust toolchain with clippy: rustup component add clippy",
		}},
	},
	project.Python: {
		Ecosystem: project.Python,
		Scope:     PerFile,
		Toolchains: []Toolchain{{
			LocalDirs: pythonLocalDirs,
			Candidates: []Tool{
				{
					Name:    "ruff",
					Args:    []string{"check", "--output-format=concise", FilePlaceholder},
					Lenient: []string{"--ignore", "F841,F401,F821"},
				},
				{
					// mypy has no unused-name checks to relax
					Name: "mypy",
					Args: []string{FilePlaceholder},
				},
				{
					Name:    "pylint",
					Args:    []string{"--output-format=text", FilePlaceholder},
					Lenient: []string{"--disable=W0611,W0612,E0602"},
				},
				{
					Name:    "flake8",
					Args:    []string{FilePlaceholder},
					Lenient: []string{"--extend-ignore=F841,F401,F821"},
				},
			},
			Hint: "no Python linter found for %s. Install ruff for best performance: pip install ruff",
		}},
	},
	// PMD and SpotBugs have no command-line rule suppression, so lenient
	// mode has no effect here.
	project.JVM: {
		Ecosystem: project.JVM,
		Scope:     ProjectOnce,
		Toolchains: []Toolchain{
			{
				When: []string{"pom.xml"},
				Candidates: []Tool{
					{
						Name:          "mvn pmd:check",
						Bins:          []string{"mvn"},
						Args:          []string{"pmd:check", "-q"},
						NotConfigured: []string{"Unknown lifecycle phase", "No plugin found for prefix 'pmd'"},
					},
					{
						Name:          "mvn spotbugs:check",
						Bins:          []string{"mvn"},
						Args:          []string{"spotbugs:check", "-q"},
						NotConfigured: []string{"Unknown lifecycle phase", "No plugin found for prefix 'spotbugs'"},
					},
				},
				Hint: "no Java linter configured for %s. Add maven-pmd-plugin or spotbugs-maven-plugin to pom.xml.",
			},
			{
				When:      []string{"build.gradle", "build.gradle.kts"},
				LocalDirs: []string{"."},
				Candidates: []Tool{
					{
						Name:          BinPlaceholder + " pmdMain",
						Bins:          []string{"gradlew", "gradle"},
						Args:          []string{"pmdMain", "-q"},
						NotConfigured: []string{"Task 'pmdMain' not found"},
					},
					{
						Name:          BinPlaceholder + " spotbugsMain",
						Bins:          []string{"gradlew", "gradle"},
						Args:          []string{"spotbugsMain", "-q"},
						NotConfigured: []string{"Task 'spotbugsMain' not found"},
					},
				},
				Hint: "no Java linter configured for %s. Add pmd or spotbugs plugin to build.gradle.",
			},
		},
		NoToolchain: "no Java build tool found for %s. Add pom.xml or build.gradle.",
	},
	project.Go: {
		Ecosystem: project.Go,
		Scope:     PerFile,
		Toolchains: []Toolchain{{
			Candidates: []Tool{
				{
					Name:    "golangci-lint",
					Args:    []string{"run", "--fast", FilePlaceholder},
					Lenient: []string{"--disable=unused"},
				},
				{
					Name: "staticcheck",
					Args: []string{FilePlaceholder},
				},
				{
					Name: "go vet",
					Bins: []string{"go"},
					Args: []string{"vet", FilePlaceholder},
				},
			},
			Hint: "no Go linter found for %s. Install golangci-lint for best results: https://golangci-lint.run",
		}},
	},
}

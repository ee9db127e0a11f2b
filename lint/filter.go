package lint

import (
	"path/filepath"
	"strings"
)

// FilterOutput keeps the lines of a project-wide tool run that mention one
// of files. stderr is scanned before stdout. A line is kept when it contains
// a file's exact path, else its path relative to root, else its bare
// filename. The filename match can pull in findings for a same-named file
// elsewhere in the project.
func FilterOutput(stdout, stderr string, files []string, root string) string {
	combined := stderr + "\n" + stdout

	prefix := root
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var exact, relative, names []string
	for _, f := range files {
		if f == "" {
			continue
		}
		exact = append(exact, f)
		if rel, ok := strings.CutPrefix(f, prefix); ok && rel != "" {
			relative = append(relative, rel)
		}
		names = append(names, filepath.Base(f))
	}

	var kept []string
	for _, line := range strings.Split(combined, "\n") {
		if containsAny(line, exact) || containsAny(line, relative) || containsAny(line, names) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func containsAny(line string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(line, n) {
			return true
		}
	}
	return false
}

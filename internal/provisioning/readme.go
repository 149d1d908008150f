package provisioning

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// ReadmeFile is the project file that receives the logged user.
const ReadmeFile = "README.adoc"

// LoggedUserVariable is replaced with the GitHub login in ReadmeFile.
const LoggedUserVariable = "loggedUser"

var variablePattern = regexp.MustCompile(`\$\$?\{([^{}]+)\}`)

// Substitute replaces every ${name} in s with values[name]. Unknown
// variables are left untouched and $${name} yields a literal ${name}.
func Substitute(s string, values map[string]string) string {
	return variablePattern.ReplaceAllStringFunc(s, func(match string) string {
		if match[1] == '$' {
			return match[1:]
		}
		name := match[2 : len(match)-1]
		if v, ok := values[name]; ok {
			return v
		}
		return match
	})
}

// substituteFile rewrites path with Substitute, keeping its permissions.
// A missing file is not an error and reports false.
func substituteFile(path string, values func() (map[string]string, error)) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	vals, err := values()
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(path, []byte(Substitute(string(content), vals)), info.Mode().Perm())
}

func readmePath(dir string) string {
	return filepath.Join(dir, ReadmeFile)
}

package text

import (
	"bytes"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"

	"github.com/davidmdm/ansi"
)

type DiffFunc func(live, desired File, context int) string

type File struct {
	Name    string
	Content string
}

func Diff(live, desired File, context int) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(live.Content),
		B:        difflib.SplitLines(desired.Content),
		FromFile: live.Name,
		ToFile:   desired.Name,
		Context:  context,
	})
	return diff
}

func DiffColorized(live, desired File, context int) string {
	return colorize(Diff(live, desired, context))
}

var (
	green = ansi.MakeStyle(ansi.FgGreen)
	red   = ansi.MakeStyle(ansi.FgRed)
	cyan  = ansi.MakeStyle(ansi.FgCyan)
)

func colorize(value string) string {
	lines := strings.Split(value, "\n")
	colorized := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case len(line) == 0:
			continue
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "@@"):
			colorized[i] = cyan.Sprint(line)
		case line[0] == '-':
			colorized[i] = red.Sprint(line)
		case line[0] == '+':
			colorized[i] = green.Sprint(line)
		default:
			colorized[i] = line
		}
	}

	return strings.Join(colorized, "\n")
}

// ToYamlFile encodes value as a YAML document. A nil value yields an empty file, which
// diffs as an object that does not exist yet.
func ToYamlFile(name string, value any) (File, error) {
	if value == nil {
		return File{Name: name}, nil
	}

	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	err := encoder.Encode(value)
	return File{Name: name, Content: buffer.String()}, err
}

package latex

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var measure = regexp.MustCompile(`^(-?[0-9]*(?:\.[0-9]+)?) *(%|\\?[a-z]*)$`)

// KeyValue parses key-value option payloads in the format used by commands
// like \includegraphics: key=value, key=value. Keys are lowercased, keys
// without a value map to an empty string.
func KeyValue(raw string) map[string]string {
	kv := map[string]string{}

	for _, part := range strings.Split(raw, ",") {
		n := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(n) == 1 {
			kv[strings.ToLower(n[0])] = ""
			continue
		}

		kv[strings.ToLower(n[0])] = n[1]
	}

	return kv
}

// Options extracts the key-value pairs of a command's first optional
// argument, for example scale and width of \includegraphics[scale=1.5]{..}.
func Options(node *Node) map[string]string {
	if len(node.Optional) == 0 {
		return map[string]string{}
	}

	return KeyValue(String(node.Optional[0]))
}

// Measure parses a measurement value, a number and its unit, for example:
// 5.1cm, 6em, 0.25\textwidth.
func Measure(raw string) (float32, string, error) {
	match := measure.FindStringSubmatch(strings.TrimSpace(raw))
	if len(match) == 0 {
		return 0, "", errors.New("unable to parse measurement")
	}

	number, err := strconv.ParseFloat(match[1], 32)
	if err != nil {
		return 0, "", err
	}

	return float32(number), match[2], nil
}

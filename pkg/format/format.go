package format

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strings"
)

// DefaultPlaces is the precision used when ToPrecision gets zero places.
const DefaultPlaces = 2

// ToPrecision rounds val to the given number of decimal places. Halves round
// toward positive infinity. Negative places round to the left of the decimal
// point, so -1 rounds to tens.
func ToPrecision(val float64, places int) float64 {
	if places == 0 {
		places = DefaultPlaces
	}
	num := math.Pow(10, float64(places))
	return math.Floor(val*num+0.5) / num
}

// simpleKey matches a quoted object key without digits, quotes or parentheses.
var simpleKey = regexp.MustCompile(`"([^()"\d]+)":`)

// StringifySimple encodes v as JSON indented by two spaces, with quotes
// removed from object keys that contain no digits, quotes or parentheses.
func StringifySimple(v any) (string, error) {
	b, err := marshal(v, "  ")
	if err != nil {
		return "", err
	}
	return simpleKey.ReplaceAllString(string(b), "${1}:"), nil
}

var wordStart = regexp.MustCompile(`("[a-z])`)

// ReadableShapes lays out a shapes object compactly, one draw command per
// line.
func ReadableShapes(v any) (string, error) {
	b, err := marshal(v, "")
	if err != nil {
		return "", err
	}
	s := string(b)
	s = strings.Replace(s, "{", "{\n  ", 1)
	s = strings.Replace(s, "]}", "\n  ]\n}", 1)
	s = strings.ReplaceAll(s, ":", ": ")
	s = strings.ReplaceAll(s, ",", ", ")
	s = wordStart.ReplaceAllString(s, "\n    ${1}")
	s = strings.ReplaceAll(s, "],", "],\n  ")
	return s, nil
}

func marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

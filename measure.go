package ss

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const cmInPixel = 37.795276

var measure = regexp.MustCompile("^(-?[0-9]*(?:\\.[0-9]+)?)(%|\\\\?[a-z ]*)$")

// Measure parses measurement value, a number and units, for example: 5.1cm, 6em, 0.25\textwidth
func Measure(raw string) (float32, string, error) {
	match := measure.FindStringSubmatch(raw)
	if len(match) == 0 {
		return 0, "", errors.New("unable to parse measurement")
	}

	number, err := strconv.ParseFloat(match[1], 32)
	if err != nil {
		return 0, "", err
	}

	return float32(number), match[2], nil
}

// MeasurePixels converts measurement to pixels, a number without units is taken as pixels
func MeasurePixels(raw string) (float32, error) {
	n, u, err := Measure(raw)
	if err != nil {
		return 0, err
	}

	if u == "" {
		return n, nil
	}

	return ToPixels(n, u)
}

func ToPixels(value float32, unit string) (float32, error) {
	switch unit {
	case "pt":
		return value * cmInPixel / 28.4495, nil
	case "mm":
		return value * cmInPixel / 10, nil
	case "cm":
		return value * cmInPixel, nil
	case "in":
		return value * cmInPixel * 2.54, nil
	case "ex":
		return value * cmInPixel * 0.15132, nil
	case "em":
		return value * cmInPixel * 0.35146, nil
	case "px":
		return value, nil
	default:
		return 0, fmt.Errorf("measurement unit %#v is not supported", unit)
	}
}

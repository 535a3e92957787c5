package xrandr

import (
	"bufio"
	"context"
	"regexp"
	"strconv"
	"strings"
)

var (
	outputRegex = regexp.MustCompile(`^(\S+) (connected|disconnected)(?: (primary))?(?: ([0-9]+x[0-9]+)\+([0-9]+)\+([0-9]+))?`)
	modeRegex   = regexp.MustCompile(`^\s+([0-9]+x[0-9]+i?)\s+(.*)$`)
)

// Output is one output as reported by an xrandr query.
type Output struct {
	Port      string   `json:"port" yaml:"port"`
	Connected bool     `json:"connected" yaml:"connected"`
	Enabled   bool     `json:"enabled" yaml:"enabled"`
	Primary   bool     `json:"primary" yaml:"primary"`
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	Rate      string   `json:"rate,omitempty" yaml:"rate,omitempty"`
	X         int      `json:"x" yaml:"x"`
	Y         int      `json:"y" yaml:"y"`
	Modes     []string `json:"modes,omitempty" yaml:"modes,omitempty"`
}

// Outputs queries xrandr and returns every output it knows about.
func (c *Client) Outputs(ctx context.Context) ([]Output, error) {
	res := c.exec(ctx)
	if res.Failed() && res.Stdout == "" {
		return nil, c.commandError(nil, res)
	}
	return ParseOutputs(res.Stdout), nil
}

// ParseOutputs parses the output of a bare xrandr query.
func ParseOutputs(data string) []Output {
	var outputs []Output
	var cur *Output

	sc := bufio.NewScanner(strings.NewReader(data))
	for sc.Scan() {
		line := sc.Text()

		if m := outputRegex.FindStringSubmatch(line); m != nil {
			outputs = append(outputs, Output{
				Port:      m[1],
				Connected: m[2] == "connected",
				Primary:   m[3] == "primary",
				Enabled:   m[4] != "",
				Mode:      m[4],
			})
			cur = &outputs[len(outputs)-1]
			if cur.Enabled {
				cur.X, _ = strconv.Atoi(m[5])
				cur.Y, _ = strconv.Atoi(m[6])
			}
			continue
		}

		if cur == nil {
			continue
		}
		m := modeRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		cur.Modes = append(cur.Modes, m[1])
		// The current rate is marked with '*', e.g. "60.00*+  59.94".
		if cur.Enabled && m[1] == cur.Mode && cur.Rate == "" {
			for _, field := range strings.Fields(m[2]) {
				if strings.Contains(field, "*") {
					cur.Rate = strings.TrimRight(field, "*+")
					break
				}
			}
		}
	}
	return outputs
}

// ConnectedPorts returns the ports with a monitor attached, enabled or not.
func ConnectedPorts(outputs []Output) []string {
	ports := make([]string, 0, len(outputs))
	for _, o := range outputs {
		if o.Connected {
			ports = append(ports, o.Port)
		}
	}
	return ports
}

package commands

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Lesliedc339/linux-terminal/pkg/registry"
)

const DefaultDoc = "getting-started"

func NewEcho() registry.Descriptor {
	return registry.Descriptor{
		Name:        "echo",
		Description: "Print the arguments",
		Handler: func(_ context.Context, args []string, _ *registry.ExecContext) (registry.Result, error) {
			return registry.Single(strings.Join(args, " ")), nil
		},
	}
}

// NewCalc evaluates "<num1> <operator> <num2>". Bad input is answered with a
// normal result line, never an error.
func NewCalc() registry.Descriptor {
	return registry.Descriptor{
		Name:        "calc",
		Description: "Simple calculator",
		Handler: func(_ context.Context, args []string, _ *registry.ExecContext) (registry.Result, error) {
			if len(args) < 3 {
				return registry.Single("Usage: calc <num1> <operator> <num2>"), nil
			}
			a, op, b := parseNumber(args[0]), args[1], parseNumber(args[2])

			switch op {
			case "+":
				return registry.Single(formatNumber(a + b)), nil
			case "-":
				return registry.Single(formatNumber(a - b)), nil
			case "*":
				return registry.Single(formatNumber(a * b)), nil
			case "/":
				if b == 0 {
					return registry.Single("Error: Division by zero"), nil
				}
				return registry.Single(formatNumber(a / b)), nil
			default:
				return registry.Single(fmt.Sprintf("Error: Invalid operator '%s'", op)), nil
			}
		},
	}
}

func NewOpenDoc() registry.Descriptor {
	return registry.Descriptor{
		Name:        "open-doc",
		Description: "Open a document",
		Handler: func(_ context.Context, args []string, _ *registry.ExecContext) (registry.Result, error) {
			name := DefaultDoc
			if len(args) > 0 {
				name = args[0]
			}
			return registry.Single(fmt.Sprintf("Opening doc: %s.md", name)), nil
		},
	}
}

// NewHistory lists previously submitted lines, oldest first and numbered.
func NewHistory() registry.Descriptor {
	return registry.Descriptor{
		Name:        "history",
		Description: "List command history",
		Handler: func(_ context.Context, _ []string, ec *registry.ExecContext) (registry.Result, error) {
			lines := make([]string, 0, len(ec.History))
			for i := len(ec.History) - 1; i >= 0; i-- {
				lines = append(lines, fmt.Sprintf("%5d  %s", len(lines)+1, ec.History[i]))
			}
			return registry.Lines(lines...), nil
		},
	}
}

// parseNumber reads the longest leading number of s the way a browser's
// parseFloat does: an optional sign, then Infinity or a decimal literal.
// Anything else is NaN.
func parseNumber(s string) float64 {
	sign, rest := "", s
	if strings.HasPrefix(rest, "+") || strings.HasPrefix(rest, "-") {
		sign, rest = rest[:1], rest[1:]
	}
	if strings.HasPrefix(rest, "Infinity") {
		if sign == "-" {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	end := 0
	for end < len(rest) && isNumberByte(rest, end) {
		end++
	}
	for ; end > 0; end-- {
		if f, err := strconv.ParseFloat(sign+rest[:end], 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

func isNumberByte(s string, i int) bool {
	switch c := s[i]; {
	case c >= '0' && c <= '9', c == '.', c == 'e', c == 'E':
		return true
	case c == '+' || c == '-':
		return i > 0 && (s[i-1] == 'e' || s[i-1] == 'E')
	}
	return false
}

// formatNumber prints f the way a browser does: plain decimals between 1e-6
// and 1e21, exponent notation outside that range, and no negative zero.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(sci, "e")
	n, _ := strconv.Atoi(exp)
	if n >= -6 && n < 21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("%se%+d", mantissa, n)
}

package rule

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpandInline expands an inline expression into the concrete names it
// describes. Top-level commas separate independent expressions; within one
// expression every ${...} segment is either a range "${0..3}" or a list
// "${[a, b]}", and the segments combine as a cartesian product:
//
//	ds_${0..1}.t_order_${0..1} -> ds_0.t_order_0, ds_0.t_order_1, ds_1.t_order_0, ds_1.t_order_1
func ExpandInline(expr string) ([]string, error) {
	var result []string
	for _, part := range splitTopLevel(expr) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		expanded, err := expandOne(part)
		if err != nil {
			return nil, err
		}
		result = append(result, expanded...)
	}
	return result, nil
}

// splitTopLevel splits on commas that are not inside a ${...} segment
func splitTopLevel(expr string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(expr); i++ {
		switch {
		case expr[i] == '$' && i+1 < len(expr) && expr[i+1] == '{':
			depth++
			i++
		case expr[i] == '}' && depth > 0:
			depth--
		case expr[i] == ',' && depth == 0:
			parts = append(parts, expr[start:i])
			start = i + 1
		}
	}
	return append(parts, expr[start:])
}

func expandOne(expr string) ([]string, error) {
	open := strings.Index(expr, "${")
	if open < 0 {
		return []string{expr}, nil
	}
	closeIdx := strings.Index(expr[open:], "}")
	if closeIdx < 0 {
		return nil, fmt.Errorf("unterminated inline segment in %q", expr)
	}
	closeIdx += open

	values, err := segmentValues(expr[open+2 : closeIdx])
	if err != nil {
		return nil, fmt.Errorf("invalid inline segment in %q: %w", expr, err)
	}

	suffixes, err := expandOne(expr[closeIdx+1:])
	if err != nil {
		return nil, err
	}

	prefix := expr[:open]
	out := make([]string, 0, len(values)*len(suffixes))
	for _, v := range values {
		for _, s := range suffixes {
			out = append(out, prefix+v+s)
		}
	}
	return out, nil
}

func segmentValues(body string) ([]string, error) {
	body = strings.TrimSpace(body)

	if strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]") {
		var values []string
		for _, item := range strings.Split(body[1:len(body)-1], ",") {
			item = strings.Trim(strings.TrimSpace(item), `'"`)
			if item == "" {
				continue
			}
			values = append(values, item)
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("empty list")
		}
		return values, nil
	}

	bounds := strings.SplitN(body, "..", 2)
	if len(bounds) != 2 {
		return nil, fmt.Errorf("expected range a..b or list [a, b], got %q", body)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil {
		return nil, fmt.Errorf("range start: %w", err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil {
		return nil, fmt.Errorf("range end: %w", err)
	}
	if hi < lo {
		return nil, fmt.Errorf("range end %d is before start %d", hi, lo)
	}

	values := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		values = append(values, strconv.Itoa(i))
	}
	return values, nil
}

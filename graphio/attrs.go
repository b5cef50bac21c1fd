// SPDX-License-Identifier: MIT
package graphio

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/redistrict/core"
)

// attrString renders an ID or label value. Integral numbers print without
// a fractional part so 12.0 and "12" name the same district.
func attrString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return strconv.FormatInt(i, 10), true
		}
		if f, err := x.Float64(); err == nil && f == math.Trunc(f) {
			return strconv.FormatInt(int64(f), 10), true
		}
		return x.String(), true
	case float64:
		if x == math.Trunc(x) {
			return strconv.FormatInt(int64(x), 10), true
		}
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case nil:
		return "", false
	}

	return fmt.Sprint(v), true
}

func attrFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	}

	return 0, false
}

func attrInt(v any) (int64, bool) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	}
	f, ok := attrFloat(v)
	if !ok {
		return 0, false
	}

	return int64(math.Round(f)), true
}

// unitFrom builds a unit from an attribute map. total_pop is required;
// aland and perim default to zero.
func unitFrom(props map[string]any, o options) (core.Unit, error) {
	id, ok := attrString(props[o.idField])
	if !ok || id == "" {
		return core.Unit{}, fmt.Errorf("%w: %q", ErrMissingField, o.idField)
	}
	pop, ok := attrInt(props[fieldTotalPop])
	if !ok {
		return core.Unit{}, fmt.Errorf("%w: %q on unit %s", ErrMissingField, fieldTotalPop, id)
	}
	u := core.Unit{ID: id, TotalPop: pop}
	u.ALand, _ = attrFloat(props[fieldALand])
	u.Perim, _ = attrFloat(props[fieldPerim])
	u.Label, _ = attrString(props[o.districtField])

	return u, nil
}

// edgeOpts converts optional edge attributes.
func edgeOpts(props map[string]any) []core.EdgeOption {
	var opts []core.EdgeOption
	if sp, ok := attrFloat(props[fieldSharedPerim]); ok {
		opts = append(opts, core.WithSharedPerim(sp))
	}
	if d, ok := attrFloat(props[fieldDistance]); ok {
		opts = append(opts, core.WithDistance(d))
	}

	return opts
}

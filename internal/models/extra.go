package models

import (
	"fmt"
	"strconv"
)

func flatten(extra map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(extra)+6)
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func stringify(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int32:
		return strconv.FormatInt(int64(value), 10)
	case int64:
		return strconv.FormatInt(value, 10)
	case int:
		return strconv.Itoa(value)
	default:
		return fmt.Sprint(value)
	}
}

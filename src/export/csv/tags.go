package csv

import (
	"reflect"
	"strings"
)

func getFields(t reflect.Type) []reflect.StructField {
	var result []reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		result = append(result, t.Field(i))
	}
	return result
}

// parquetTagToKeyValue splits "name=liked, type=BOOLEAN" into its properties.
func parquetTagToKeyValue(tag string) map[string]string {
	result := make(map[string]string)
	for _, entry := range strings.Split(tag, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(entry), "=")
		if !found {
			continue
		}
		result[key] = value
	}
	return result
}

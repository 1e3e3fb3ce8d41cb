package repository

import "encoding/json"

// jsonColumn encodes v for a jsonb column in an Updates map, where gorm skips
// the field serializer.
func jsonColumn(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}

	return string(b)
}

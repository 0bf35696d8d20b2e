package docai

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ToJSON renders a value as JSON, using protojson for proto messages so
// raw engine responses can be dumped for debugging.
func ToJSON(data interface{}) (string, error) {
	switch v := data.(type) {
	case proto.Message:
		jsonData, err := protojson.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(jsonData), nil
	default:
		jsonData, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(jsonData), nil
	}
}

package seeder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.mongodb.org/mongo-driver/bson"

	dserrors "github.com/systmms/dataseeder/internal/errors"
)

// maxExactInt bounds the doubles converted back to int64; above 2^53 a
// double no longer holds every integer
const maxExactInt = 1 << 53

const arraySchema = `{"type": "array", "items": {"type": "object"}}`

// importSchema describes the accepted file shape. Item fields are not
// checked; only the container shape is.
func importSchema(wrapperKey string) string {
	if wrapperKey == "" {
		return arraySchema
	}
	key, _ := json.Marshal(wrapperKey)
	return fmt.Sprintf(`{
		"type": "object",
		"required": [%s],
		"properties": {%s: %s}
	}`, key, key, arraySchema)
}

// ReadImportFile loads the documents to insert from path. With an empty
// wrapperKey the file must be a JSON array of objects; otherwise an object
// holding that array under wrapperKey.
func ReadImportFile(path, wrapperKey string) ([]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dserrors.FileNotFound(path)
		}
		return nil, dserrors.ParseFailed(path, err)
	}
	return ParseImport(path, data, wrapperKey)
}

// ParseImport validates and decodes import data. name is only used in errors.
func ParseImport(name string, data []byte, wrapperKey string) ([]interface{}, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(importSchema(wrapperKey)),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, dserrors.ParseFailed(name, err)
	}
	if !result.Valid() {
		var messages []string
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return nil, dserrors.ParseFailed(name, fmt.Errorf("unexpected shape:\n  - %s", strings.Join(messages, "\n  - ")))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, dserrors.ParseFailed(name, err)
	}

	items, ok := raw.([]interface{})
	if wrapperKey != "" {
		obj, _ := raw.(map[string]interface{})
		items, ok = obj[wrapperKey].([]interface{})
	}
	if !ok {
		return nil, dserrors.ParseFailed(name, errors.New("no item array found"))
	}

	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		docs = append(docs, toBSON(item))
	}
	return docs, nil
}

// toBSON converts decoded JSON into driver types; integral numbers become
// int64 so prices keep their integer type in the store, including ones
// written as 1e3 or 1000.0.
func toBSON(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		doc := make(bson.M, len(val))
		for k, field := range val {
			doc[k] = toBSON(field)
		}
		return doc
	case []interface{}:
		arr := make(bson.A, 0, len(val))
		for _, elem := range val {
			arr = append(arr, toBSON(elem))
		}
		return arr
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		f, _ := val.Float64()
		if f == math.Trunc(f) && math.Abs(f) < maxExactInt {
			return int64(f)
		}
		return f
	default:
		return val
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BindNestedOrFlat binds the request body to obj, accepting both {"<key>": {...}} and a flat {...}.
// When the body is an object carrying key, only that nested value is decoded.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var bodyBytes []byte
	if c.Request.Body != nil {
		bodyBytes, _ = io.ReadAll(c.Request.Body)
	}
	// Restore body for future binding or subsequent reads
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	var nestedMap map[string]json.RawMessage
	if err := json.Unmarshal(bodyBytes, &nestedMap); err == nil {
		if val, ok := nestedMap[key]; ok {
			return json.Unmarshal(val, obj)
		}
	}

	return json.Unmarshal(bodyBytes, obj)
}

// bindBody decodes like BindNestedOrFlat and then enforces the struct's binding tags
func bindBody(c *gin.Context, key string, obj interface{}) error {
	if err := BindNestedOrFlat(c, key, obj); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(obj)
}

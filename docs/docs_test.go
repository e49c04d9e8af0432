package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocCoversRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	want := map[string][]string{
		"/":                     {"get"},
		"/auth/register":        {"post"},
		"/auth/login":           {"post"},
		"/auth/forgot-password": {"post"},
		"/auth/reset-password":  {"post"},
		"/places":               {"get", "post"},
		"/places/{id}":          {"put", "delete"},
	}
	for path, methods := range want {
		ops, ok := doc.Paths[path]
		require.True(t, ok, path)
		for _, m := range methods {
			assert.Contains(t, ops, m, "%s %s", m, path)
		}
	}

	for _, def := range []string{"models.Place", "models.PlaceInput", "models.SystemStats", "helpers.ErrorResponse", "handlers.authResponse"} {
		assert.Contains(t, doc.Definitions, def)
	}
}

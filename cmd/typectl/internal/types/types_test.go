package types

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/redbco/redb-typeregistry/cmd/typectl/internal/config"
	"github.com/redbco/redb-typeregistry/pkg/logger"
	"github.com/redbco/redb-typeregistry/pkg/typeregistry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	log := logger.New("typectl")
	log.SetOutput(&buf)
	return log, &buf
}

func TestListTypes(t *testing.T) {
	reg := typeregistry.New()

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ListTypes(&buf, reg, config.OutputTable))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 24)
		assert.True(t, strings.HasPrefix(lines[0], "ID"))
		assert.Contains(t, buf.String(), "TIMESTAMP WITH LOCAL TIME ZONE")
		assert.Regexp(t, `10\s+ARRAY\s+ARRAY_TYPE\s+complex,collection\s+-`, buf.String())
		assert.Regexp(t, `15\s+DECIMAL\s+DECIMAL_TYPE\s+primitive\s+precision,scale`, buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ListTypes(&buf, reg, config.OutputJSON))

		var out []map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		require.Len(t, out, 23)
		assert.Equal(t, "BOOLEAN", out[0]["name"])
		assert.Equal(t, "complex,collection", out[11]["categories"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ListTypes(&buf, reg, config.OutputYAML))

		var out []map[string]interface{}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
		require.Len(t, out, 23)
		assert.Equal(t, "UNIONTYPE", out[13]["name"])
		assert.Equal(t, []interface{}{"characterMaximumLength"}, out[18]["qualifiers"])
	})

	t.Run("unsupported format", func(t *testing.T) {
		err := ListTypes(&bytes.Buffer{}, reg, "xml")
		assert.ErrorContains(t, err, "unsupported output format")
	})
}

func TestDescribeTypes(t *testing.T) {
	reg := typeregistry.New()
	log, logBuf := newTestLogger()

	t.Run("by id and name", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, DescribeTypes(&buf, reg, log, []string{"3", "uniontype"}, config.OutputJSON))

		var out []struct {
			ID   typeregistry.TypeID `json:"id"`
			Name string              `json:"name"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		require.Len(t, out, 2)
		assert.Empty(t, logBuf.String())
		assert.Equal(t, typeregistry.Int, out[0].ID)
		assert.Equal(t, "UNIONTYPE", out[1].Name)
	})

	t.Run("unknown id still prints the rest", func(t *testing.T) {
		var buf bytes.Buffer
		logBuf.Reset()
		err := DescribeTypes(&buf, reg, log, []string{"100", "ARRAY"}, config.OutputTable)
		require.Error(t, err)
		assert.ErrorIs(t, err, typeregistry.ErrUnknownTypeID)
		assert.Contains(t, err.Error(), `"100"`)
		assert.Contains(t, buf.String(), "ARRAY")
		assert.Contains(t, logBuf.String(), "unknown type arg=100")
		assert.NotContains(t, logBuf.String(), "arg=ARRAY")
	})

	t.Run("nothing resolved", func(t *testing.T) {
		var buf bytes.Buffer
		err := DescribeTypes(&buf, reg, log, []string{"nope"}, config.OutputTable)
		assert.ErrorIs(t, err, typeregistry.ErrUnknownTypeID)
		assert.Empty(t, buf.String())
	})
}

func TestListKeys(t *testing.T) {
	reg := typeregistry.New()

	var buf bytes.Buffer
	require.NoError(t, ListKeys(&buf, reg, config.OutputTable))
	assert.Regexp(t, `CharacterMaximumLength\s+characterMaximumLength`, buf.String())
	assert.Regexp(t, `Precision\s+precision`, buf.String())
	assert.Regexp(t, `Scale\s+scale`, buf.String())

	buf.Reset()
	require.NoError(t, ListKeys(&buf, reg, config.OutputJSON))
	var keys []MetadataKey
	require.NoError(t, json.Unmarshal(buf.Bytes(), &keys))
	assert.Equal(t, []MetadataKey{
		{Kind: "CharacterMaximumLength", Key: "characterMaximumLength"},
		{Kind: "Precision", Key: "precision"},
		{Kind: "Scale", Key: "scale"},
	}, keys)
}

func TestCheck(t *testing.T) {
	log, logBuf := newTestLogger()
	var buf bytes.Buffer
	require.NoError(t, Check(&buf, typeregistry.New(), log))
	assert.Equal(t, "OK: 23 types (18 primitive, 5 complex, 2 collection)\n", buf.String())
	assert.Empty(t, logBuf.String())
}

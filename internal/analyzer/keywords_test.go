package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTableFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keywords.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadKeywordTable(t *testing.T) {
	path := writeTableFile(t, `{"高重要性":{"金管會":1.0,"裁罰":0.9},"市場趨勢":{"利率":0.7}}`)

	table := LoadKeywordTable(path)
	require.Len(t, table, 2)
	assert.Equal(t, 1.0, table["高重要性"]["金管會"])
	assert.Equal(t, 0.7, table["市場趨勢"]["利率"])
}

func TestLoadKeywordTableMissingFile(t *testing.T) {
	table := LoadKeywordTable(filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, defaultKeywordTable, table, "文件缺失应回退内建默认表")

	assert.Equal(t, defaultKeywordTable, LoadKeywordTable(""))
}

func TestLoadKeywordTableCorrupt(t *testing.T) {
	path := writeTableFile(t, `{"高重要性": not-json`)
	assert.Equal(t, defaultKeywordTable, LoadKeywordTable(path), "内容损坏应回退内建默认表")
}

func TestLoadKeywordTableInvalid(t *testing.T) {
	// 权重必须为正
	path := writeTableFile(t, `{"高重要性":{"金管會":-1.0}}`)
	assert.Equal(t, defaultKeywordTable, LoadKeywordTable(path))

	// 类别不能为空
	path = writeTableFile(t, `{"高重要性":{}}`)
	assert.Equal(t, defaultKeywordTable, LoadKeywordTable(path))
}

func TestValidateKeywordTable(t *testing.T) {
	assert.Error(t, validateKeywordTable(KeywordWeightTable{}))
	assert.Error(t, validateKeywordTable(KeywordWeightTable{"": {"kw": 1.0}}))
	assert.Error(t, validateKeywordTable(KeywordWeightTable{"類別": {"": 1.0}}))
	assert.Error(t, validateKeywordTable(KeywordWeightTable{"類別": {"kw": 0}}))
	assert.NoError(t, validateKeywordTable(defaultKeywordTable))
}

func TestCategoryAccessors(t *testing.T) {
	table := KeywordWeightTable{"高重要性": {"金管會": 1.0}}

	assert.Equal(t, map[string]float64{"金管會": 1.0}, table.Category("高重要性"))
	assert.Empty(t, table.Category("不存在"))

	flat := table.CategoryKeywords()
	require.Contains(t, flat, "高重要性")
	assert.Equal(t, []string{"金管會"}, flat["高重要性"])
}

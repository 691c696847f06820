package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSimilarIdentical(t *testing.T) {
	e := NewSimilarityEngine(newTestProcessor(t))
	text := "金管會公布壽險公司裁罰案，要求增提準備金。"

	matches := e.FindSimilar(text, []string{text}, 1)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].Index)
	assert.InDelta(t, 1.0, matches[0].Similarity, 1e-9, "相同文本的余弦相似度应为 1")
}

func TestFindSimilarRanking(t *testing.T) {
	e := NewSimilarityEngine(newTestProcessor(t))
	target := "金管會公布壽險公司裁罰案，要求增提責任準備金。"
	candidates := []string{
		"今日股市大盤震盪，電子類股收黑。",
		"金管會裁罰壽險公司，責任準備金不足須限期改善。",
		"金管會保險局要求壽險業增提準備金因應裁罰。",
	}

	matches := e.FindSimilar(target, candidates, 3)
	require.NotEmpty(t, matches)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Similarity, matches[i].Similarity, "结果应按相似度降序")
	}
	for _, m := range matches {
		assert.Greater(t, m.Similarity, similarityCutoff)
		assert.GreaterOrEqual(t, m.Index, 0)
		assert.Less(t, m.Index, len(candidates))
	}
	assert.NotEqual(t, 0, matches[0].Index, "无关文本不应排第一")
}

func TestFindSimilarEdgeCases(t *testing.T) {
	e := NewSimilarityEngine(newTestProcessor(t))

	assert.Empty(t, e.FindSimilar("", []string{"候選文本"}, 3))
	assert.Empty(t, e.FindSimilar("目標文本", nil, 3))
	assert.Empty(t, e.FindSimilar("目標文本", []string{"候選"}, 0))
}

func TestClusterBasic(t *testing.T) {
	e := NewSimilarityEngine(newTestProcessor(t))
	docs := []string{
		"金管會公布壽險公司裁罰案，準備金不足。",
		"金管會保險局裁罰壽險業，要求增提準備金。",
		"醫療險理賠申請件數上升，保戶關注給付權益。",
		"醫療險實支實付理賠爭議增加。",
	}

	result := e.Cluster(docs, 2)
	require.Len(t, result.Centers, 2)

	assigned := 0
	for clusterID, members := range result.Clusters {
		assert.GreaterOrEqual(t, clusterID, 0)
		assert.Less(t, clusterID, 2)
		assigned += len(members)
		for _, idx := range members {
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, len(docs))
		}
	}
	assert.Equal(t, len(docs), assigned, "每篇文档恰好属于一个簇")
}

func TestClusterDeterministic(t *testing.T) {
	e := NewSimilarityEngine(newTestProcessor(t))
	docs := []string{
		"金管會公布壽險公司裁罰案。",
		"醫療險理賠爭議增加。",
		"投資型保單宣告利率調整。",
	}

	first := e.Cluster(docs, 2)
	second := e.Cluster(docs, 2)
	assert.Equal(t, first.Clusters, second.Clusters, "固定种子下聚类结果应可复现")
	assert.Equal(t, first.Centers, second.Centers)
}

func TestClusterShrinksK(t *testing.T) {
	e := NewSimilarityEngine(newTestProcessor(t))
	docs := []string{"金管會公布裁罰案。", "醫療險理賠爭議。"}

	result := e.Cluster(docs, 10)
	assert.LessOrEqual(t, len(result.Centers), len(docs), "k 应收缩到文档数")

	empty := e.Cluster(nil, 3)
	assert.Empty(t, empty.Clusters)
	assert.Empty(t, empty.Centers)
}

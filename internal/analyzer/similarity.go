package analyzer

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"

	"ins-news-go/internal/model"
)

const (
	// 向量空间的特征上限与相似度判定阈值。
	maxFeatures      = 1000
	similarityCutoff = 0.1

	// 聚类使用固定种子保证可复现。
	clusterSeed      = 42
	maxIterations    = 100
	centroidTopTerms = 10
)

// SimilarityEngine 在候选语料上构建 TF-IDF 向量空间，
// 支持最近邻相似检索与 k-means 主题聚类。
// 两类操作都是 CPU 密集型，调用方需限制语料规模并自带超时。
type SimilarityEngine struct {
	processor *TextProcessor
}

// NewSimilarityEngine 创建 SimilarityEngine。
func NewSimilarityEngine(processor *TextProcessor) *SimilarityEngine {
	return &SimilarityEngine{processor: processor}
}

// vectorSpace 是一批文档共享的 TF-IDF 向量空间，向量均已做 L2 归一化，
// 归一化后两向量的点积即余弦相似度。
type vectorSpace struct {
	terms   []string
	vectors [][]float64
}

// FindSimilar 在 candidates 中检索与 target 最相似的至多 topK 篇，
// 只保留相似度 > 0.1 的结果，按相似度降序，平手保持候选原始顺序。
func (e *SimilarityEngine) FindSimilar(target string, candidates []string, topK int) []model.SimilarArticle {
	if target == "" || len(candidates) == 0 || topK <= 0 {
		return []model.SimilarArticle{}
	}

	docs := append([]string{target}, candidates...)
	space := e.buildSpace(docs)
	if space == nil {
		return []model.SimilarArticle{}
	}

	targetVec := space.vectors[0]
	matches := make([]model.SimilarArticle, 0, len(candidates))
	for i := 1; i < len(space.vectors); i++ {
		sim := floats.Dot(targetVec, space.vectors[i])
		if sim > similarityCutoff {
			matches = append(matches, model.SimilarArticle{Index: i - 1, Similarity: sim})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

// Cluster 对文档做 k-means 聚类，k 超过文档数时收缩为 max(1, n)。
// 返回 簇ID -> 文档下标，以及每个簇质心权重最高的 top 词作为标签。
func (e *SimilarityEngine) Cluster(docs []string, k int) model.ClusterResult {
	empty := model.ClusterResult{Clusters: map[int][]int{}, Centers: [][]string{}}
	if len(docs) == 0 {
		return empty
	}
	if k > len(docs) {
		k = len(docs)
	}
	if k < 1 {
		k = 1
	}

	space := e.buildSpace(docs)
	if space == nil {
		return empty
	}

	rng := rand.New(rand.NewSource(clusterSeed))
	dim := len(space.terms)
	n := len(space.vectors)

	// 随机选 k 个不同文档作为初始质心。
	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), space.vectors[idx]...)
	}

	assignments := make([]int, n)
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, vec := range space.vectors {
			best := 0
			bestSim := math.Inf(-1)
			for c, centroid := range centroids {
				if sim := floats.Dot(vec, centroid); sim > bestSim {
					bestSim = sim
					best = c
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// 重算质心：簇内均值后重新归一化；空簇随机补一个文档。
		for c := range centroids {
			mean := make([]float64, dim)
			count := 0
			for i, a := range assignments {
				if a == c {
					floats.Add(mean, space.vectors[i])
					count++
				}
			}
			if count == 0 {
				copy(mean, space.vectors[rng.Intn(n)])
			} else {
				floats.Scale(1/float64(count), mean)
			}
			if norm := floats.Norm(mean, 2); norm > 0 {
				floats.Scale(1/norm, mean)
			}
			centroids[c] = mean
		}
	}

	clusters := make(map[int][]int, k)
	for i, a := range assignments {
		clusters[a] = append(clusters[a], i)
	}

	centers := make([][]string, k)
	for c, centroid := range centroids {
		centers[c] = topCentroidTerms(space.terms, centroid, centroidTopTerms)
	}

	return model.ClusterResult{Clusters: clusters, Centers: centers}
}

// buildSpace 在一批文档上构建共享 TF-IDF 空间：
// 特征为 unigram + bigram（停用词已在分词阶段剔除），按语料频次取前 1000 个；
// idf 做平滑，向量做 L2 归一化。全空语料返回 nil。
func (e *SimilarityEngine) buildSpace(docs []string) *vectorSpace {
	docTokens := make([][]string, len(docs))
	corpusFreq := map[string]int{}
	docFreq := map[string]int{}

	for i, doc := range docs {
		tokens := e.processor.Segment(doc)
		grams := make([]string, 0, len(tokens)*2)
		grams = append(grams, tokens...)
		for j := 0; j+1 < len(tokens); j++ {
			grams = append(grams, tokens[j]+tokens[j+1])
		}
		docTokens[i] = grams

		seen := map[string]struct{}{}
		for _, g := range grams {
			corpusFreq[g]++
			if _, ok := seen[g]; !ok {
				docFreq[g]++
				seen[g] = struct{}{}
			}
		}
	}
	if len(corpusFreq) == 0 {
		return nil
	}

	// 频次降序选特征，平手按词序，保证确定性。
	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}

	totalDocs := float64(len(docs))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log((1+totalDocs)/(1+float64(docFreq[term]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i, grams := range docTokens {
		vec := make([]float64, len(terms))
		for _, g := range grams {
			if j, ok := index[g]; ok {
				vec[j] += idf[j]
			}
		}
		if norm := floats.Norm(vec, 2); norm > 0 {
			floats.Scale(1/norm, vec)
		}
		vectors[i] = vec
	}

	return &vectorSpace{terms: terms, vectors: vectors}
}

// topCentroidTerms 取质心上权重最高的 topN 个词。
func topCentroidTerms(terms []string, centroid []float64, topN int) []string {
	type termWeight struct {
		term   string
		weight float64
	}
	ranked := make([]termWeight, 0, len(terms))
	for i, term := range terms {
		if centroid[i] > 0 {
			ranked = append(ranked, termWeight{term: term, weight: centroid[i]})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}
		return ranked[i].term < ranked[j].term
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	out := make([]string, len(ranked))
	for i, tw := range ranked {
		out[i] = tw.term
	}
	return out
}

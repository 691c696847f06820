package analyzer

import (
	"sync"
	"testing"
	"time"
)

// 词典加载较慢，全部测试共享同一个分词器实例。
var (
	testTokenizerOnce sync.Once
	testTokenizer     Tokenizer
	testTokenizerErr  error
)

func newTestTokenizer(t *testing.T) Tokenizer {
	t.Helper()
	testTokenizerOnce.Do(func() {
		testTokenizer, testTokenizerErr = NewTokenizer()
	})
	if testTokenizerErr != nil {
		t.Fatalf("初始化分词器失败: %v", testTokenizerErr)
	}
	return testTokenizer
}

func newTestProcessor(t *testing.T) *TextProcessor {
	t.Helper()
	return NewTextProcessor(newTestTokenizer(t))
}

func newTestEngine(t *testing.T) *AnalysisEngine {
	t.Helper()
	cache := NewAnalysisCache(t.TempDir(), 100, time.Hour)
	return NewAnalysisEngine(newTestTokenizer(t), defaultKeywordTable, cache)
}

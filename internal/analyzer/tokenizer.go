package analyzer

import (
	"fmt"

	"github.com/go-ego/gse"
)

// Tokenizer 定义了中文分词能力。引擎其余部分只依赖此接口，
// 具体分词库可替换。
type Tokenizer interface {
	// Cut 把文本切成词序列（含 HMM 新词发现）。
	Cut(text string) []string
	// RegisterDomainTerm 向词典注册一个领域词及其词频提示。
	RegisterDomainTerm(term string, freq float64) error
}

// gseTokenizer 是基于 go-ego/gse 的 Tokenizer 实现。
type gseTokenizer struct {
	seg gse.Segmenter
}

// NewTokenizer 创建一个加载繁体中文词典的分词器，
// 并把内建的保险领域词汇注册进词典。
func NewTokenizer() (Tokenizer, error) {
	t := &gseTokenizer{}
	if err := t.seg.LoadDict("zh_t"); err != nil {
		return nil, fmt.Errorf("加载分词词典失败: %w", err)
	}
	for term, freq := range domainTerms {
		if err := t.seg.AddToken(term, freq); err != nil {
			return nil, fmt.Errorf("注册领域词 %q 失败: %w", term, err)
		}
	}
	return t, nil
}

func (t *gseTokenizer) Cut(text string) []string {
	return t.seg.Cut(text, true)
}

func (t *gseTokenizer) RegisterDomainTerm(term string, freq float64) error {
	return t.seg.AddToken(term, freq)
}

// Segmenter 暴露底层分词器，供 TF-IDF 关键词抽取器复用同一份词典。
func (t *gseTokenizer) Segmenter() gse.Segmenter {
	return t.seg
}
